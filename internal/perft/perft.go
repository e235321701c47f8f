// Package perft counts the leaf nodes of the legal move tree, the standard
// oracle for move generation correctness. It extends the plain recursive
// walk in the board package with a transposition cache and a root split
// across worker goroutines for deep counts.
package perft

import (
	"sync"

	"github.com/ArchProtogens/lumifox/internal/board"
)

// Leaf move counts are cheaper to regenerate than to cache.
const minCacheDepth = 2

// Count returns the node count at the given depth, equivalent to
// (*board.Position).Perft. A non-nil table caches subtree counts by position
// hash and depth. The position is restored before returning.
func Count(p *board.Position, depth int, t *Table) int64 {
	if t == nil {
		return p.Perft(depth)
	}
	if depth <= 0 {
		return 1
	}
	if depth >= minCacheDepth {
		if nodes, ok := t.Probe(p.Hash, depth); ok {
			return nodes
		}
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += Count(p, depth-1, t)
		p.UnmakeMove(m, undo)
	}

	t.Store(p.Hash, depth, nodes)
	return nodes
}

// Divide returns the node count under each root move keyed by the move's
// UCI string, like (*board.Position).PerftDivide, sharing one cache across
// the root subtrees.
func Divide(p *board.Position, depth int, t *Table) (map[string]int64, int64) {
	results := make(map[string]int64)
	var total int64

	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes := Count(p, depth-1, t)
		p.UnmakeMove(m, undo)

		results[m.String()] = nodes
		total += nodes
	}
	return results, total
}

// CountParallel is Count with the root moves split across a pool of worker
// goroutines. Each worker owns a position copy; a non-nil table is shared by
// all of them. Splitting cannot help at depth 1 or with a single worker, so
// those fall back to the sequential count.
func CountParallel(p *board.Position, depth, workers int, t *Table) int64 {
	if depth <= 1 || workers < 2 {
		return Count(p, depth, t)
	}

	var total int64
	for _, r := range splitRoot(p, depth, workers, t) {
		total += r.nodes
	}
	return total
}

// DivideParallel is Divide with the root moves split across workers.
func DivideParallel(p *board.Position, depth, workers int, t *Table) (map[string]int64, int64) {
	if depth <= 1 || workers < 2 {
		return Divide(p, depth, t)
	}

	results := make(map[string]int64)
	var total int64
	for _, r := range splitRoot(p, depth, workers, t) {
		results[r.move.String()] = r.nodes
		total += r.nodes
	}
	return results, total
}

// rootWorker counts the subtrees under root moves pulled from a shared queue.
type rootWorker struct {
	pos   *board.Position // Per-worker position copy
	depth int
	table *Table // Shared, may be nil
}

// rootResult is one root move's subtree count.
type rootResult struct {
	move  board.Move
	nodes int64
}

func (w *rootWorker) run(jobs <-chan board.Move, results chan<- rootResult) {
	for m := range jobs {
		undo := w.pos.MakeMove(m)
		nodes := Count(w.pos, w.depth-1, w.table)
		w.pos.UnmakeMove(m, undo)
		results <- rootResult{move: m, nodes: nodes}
	}
}

// splitRoot runs the root moves through a worker pool and returns one result
// per move, in completion order. Callers aggregate. depth must be >= 2.
func splitRoot(p *board.Position, depth, workers int, t *Table) []rootResult {
	moves := p.GenerateLegalMoves()
	if workers > moves.Len() {
		workers = moves.Len()
	}

	jobs := make(chan board.Move, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		jobs <- moves.Get(i)
	}
	close(jobs)

	results := make(chan rootResult, moves.Len())
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		w := &rootWorker{pos: p.Copy(), depth: depth, table: t}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(jobs, results)
		}()
	}
	wg.Wait()
	close(results)

	out := make([]rootResult, 0, moves.Len())
	for r := range results {
		out = append(out, r)
	}
	return out
}
