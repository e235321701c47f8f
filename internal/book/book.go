// Package book reads Polyglot format opening books and probes them by
// position hash. Probed moves are resolved against the legal move list, so
// a hit always returns a move that is playable in the given position.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/ArchProtogens/lumifox/internal/board"
)

// bookMove is the raw from/to/promotion triple stored in a Polyglot entry.
// It carries no piece or flag information; that is recovered from the
// position when the book is probed.
type bookMove struct {
	From      board.Square
	To        board.Square
	Promotion board.PieceType
}

// Entry is a single book line for a position.
type Entry struct {
	Move   bookMove
	Weight uint16
}

// Book is an opening book keyed by Polyglot position hash.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{
		entries: make(map[uint64][]Entry),
	}
}

// LoadPolyglot loads a Polyglot format opening book from a file.
func LoadPolyglot(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadPolyglotReader(file)
}

// LoadPolyglotReader loads a Polyglot format book from a reader.
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	book := New()

	// Polyglot entry format:
	// 8 bytes: position key (big-endian)
	// 2 bytes: move (big-endian)
	// 2 bytes: weight (big-endian)
	// 4 bytes: learn data (ignored)
	var entry [16]byte

	for {
		_, err := io.ReadFull(r, entry[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(entry[0:8])
		moveData := binary.BigEndian.Uint16(entry[8:10])
		weight := binary.BigEndian.Uint16(entry[10:12])

		book.entries[key] = append(book.entries[key], Entry{
			Move:   decodePolyglotMove(moveData),
			Weight: weight,
		})
	}

	return book, nil
}

// decodePolyglotMove unpacks a Polyglot move encoding.
// Polyglot move format (bits):
// 0-2: to file, 3-5: to rank
// 6-8: from file, 9-11: from rank
// 12-14: promotion piece (0=none, 1=knight, 2=bishop, 3=rook, 4=queen)
func decodePolyglotMove(data uint16) bookMove {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	// Polyglot encodes castling as king-captures-rook; convert to the
	// king-to-destination form the move generator produces.
	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	promotion := board.NoPieceType
	if promo > 0 && promo <= 4 {
		promoTypes := [5]board.PieceType{board.NoPieceType, board.Knight, board.Bishop, board.Rook, board.Queen}
		promotion = promoTypes[promo]
	}

	return bookMove{From: from, To: to, Promotion: promotion}
}

// Probe looks up a position in the book and returns a legal move using
// weighted random selection. Entries that do not match any legal move are
// skipped.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}

	key := pos.PolyglotHash()
	entries, ok := b.entries[key]
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	// Sort by weight (highest first) for deterministic ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Weight > entries[j].Weight
	})

	legal := pos.GenerateLegalMoves()

	// Weighted random selection
	totalWeight := uint32(0)
	for _, e := range entries {
		totalWeight += uint32(e.Weight)
	}

	if totalWeight > 0 {
		r := rand.Uint32() % totalWeight
		cumulative := uint32(0)
		for _, e := range entries {
			cumulative += uint32(e.Weight)
			if r < cumulative {
				if m := resolve(legal, e.Move); m != board.NoMove {
					return m, true
				}
				break // Fall through to the first resolvable entry
			}
		}
	}

	for _, e := range entries {
		if m := resolve(legal, e.Move); m != board.NoMove {
			return m, true
		}
	}

	return board.NoMove, false
}

// ProbeAll returns all book entries for the position, sorted by weight.
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}

	key := pos.PolyglotHash()
	entries, ok := b.entries[key]
	if !ok {
		return nil
	}

	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})

	return result
}

// resolve matches a raw book move against the legal move list, recovering
// the full move encoding (piece, capture, castling and en passant flags).
func resolve(legal *board.MoveList, bm bookMove) board.Move {
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() == bm.From && m.To() == bm.To && m.Promotion() == bm.Promotion {
			return m
		}
	}
	return board.NoMove
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
