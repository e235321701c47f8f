package perft

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const shardCount = 256
const shardMask = shardCount - 1

// tableEntry is one cached subtree count.
type tableEntry struct {
	key   uint64 // Full 64-bit position hash for verification
	nodes int64
	depth int8
}

// Table caches subtree node counts keyed by position hash and depth, so a
// position reached through different move orders has its subtree counted
// once. Sharded locking makes it safe to share across workers.
type Table struct {
	entries []tableEntry
	shards  [shardCount]sync.RWMutex
	size    uint64
	mask    uint64

	// Statistics (atomic for thread-safety)
	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTable creates a table with the given size in MB. sizeMB must be at
// least 1.
func NewTable(sizeMB int) *Table {
	// Calculate number of entries
	entrySize := uint64(24) // Size of tableEntry with padding
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &Table{
		entries: make([]tableEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// shardIndex returns the shard index for a given entry index.
func (t *Table) shardIndex(idx uint64) int {
	return int(idx & shardMask)
}

// Probe looks up the subtree count for a position hash at the given depth.
// The full 64-bit key must match; a count stored for another depth is a miss.
func (t *Table) Probe(hash uint64, depth int) (int64, bool) {
	t.probes.Add(1)

	idx := hash & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].RLock()
	entry := t.entries[idx]
	t.shards[shard].RUnlock()

	if entry.key == hash && int(entry.depth) == depth {
		t.hits.Add(1)
		return entry.nodes, true
	}

	return 0, false
}

// Store saves a subtree count. On an index collision the deeper entry wins;
// a deeper subtree was more expensive to count.
func (t *Table) Store(hash uint64, depth int, nodes int64) {
	idx := hash & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].Lock()
	entry := &t.entries[idx]
	if depth >= int(entry.depth) {
		entry.key = hash
		entry.nodes = nodes
		entry.depth = int8(depth)
	}
	t.shards[shard].Unlock()
}

// Clear drops every entry and resets the statistics.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = tableEntry{}
	}
	t.hits.Store(0)
	t.probes.Store(0)
}

// Fill returns the permille (parts per thousand) of the table that is used.
func (t *Table) Fill() int {
	// Sample first 1000 entries
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > t.size {
		sampleSize = int(t.size)
	}

	for i := 0; i < sampleSize; i++ {
		if t.entries[i].depth > 0 {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (t *Table) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (t *Table) Size() uint64 {
	return t.size
}
