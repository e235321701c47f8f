package board

import (
	"errors"
	"fmt"
)

// MoveFlag tags the special move kinds that need extra handling when a move
// is applied.
type MoveFlag uint8

const (
	FlagNone MoveFlag = iota
	FlagDoublePush
	FlagEnPassant
	FlagKingSideCastle
	FlagQueenSideCastle
)

// Move encodes a chess move in 32 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: moving piece type
// bits 16-19: captured piece type (NoPieceType if none; Pawn for en passant)
// bits 20-23: promotion piece type (NoPieceType if none)
// bits 24-26: move flag
//
// A Move is a pure value: it carries everything needed to describe the
// transition, so IsCapture and undo bookkeeping never probe a position.
// Replaying a Move against a position other than the one it was built for
// is not checked here; ApplyMove rejects it, MakeMove does not.
type Move uint32

// NoMove represents an invalid or null move.
// No constructor produces it: real moves always carry NoPieceType bits in
// the captured and promotion fields.
const NoMove Move = 0

func newMove(from, to Square, pt, captured, promo PieceType, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(pt)<<12 | Move(captured)<<16 |
		Move(promo)<<20 | Move(flag)<<24
}

// NewMove creates a quiet move.
func NewMove(from, to Square, pt PieceType) Move {
	return newMove(from, to, pt, NoPieceType, NoPieceType, FlagNone)
}

// NewCapture creates a capturing move.
func NewCapture(from, to Square, pt, captured PieceType) Move {
	return newMove(from, to, pt, captured, NoPieceType, FlagNone)
}

// NewDoublePush creates a two-square pawn push.
func NewDoublePush(from, to Square) Move {
	return newMove(from, to, Pawn, NoPieceType, NoPieceType, FlagDoublePush)
}

// NewEnPassant creates an en passant capture. The captured pawn sits on the
// rank the capturing pawn came from, not on the destination square.
func NewEnPassant(from, to Square) Move {
	return newMove(from, to, Pawn, Pawn, NoPieceType, FlagEnPassant)
}

// NewCastle creates a castling move from the king's origin and destination.
func NewCastle(from, to Square) Move {
	if to > from {
		return newMove(from, to, King, NoPieceType, NoPieceType, FlagKingSideCastle)
	}
	return newMove(from, to, King, NoPieceType, NoPieceType, FlagQueenSideCastle)
}

// NewPromotion creates a non-capturing promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return newMove(from, to, Pawn, NoPieceType, promo, FlagNone)
}

// NewPromotionCapture creates a capturing promotion move.
func NewPromotionCapture(from, to Square, promo, captured PieceType) Move {
	return newMove(from, to, Pawn, captured, promo, FlagNone)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Piece returns the moving piece type.
func (m Move) Piece() PieceType {
	return PieceType((m >> 12) & 0xF)
}

// Captured returns the captured piece type, or NoPieceType for quiet moves.
// For en passant captures it is Pawn.
func (m Move) Captured() PieceType {
	return PieceType((m >> 16) & 0xF)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	return PieceType((m >> 20) & 0xF)
}

// Flag returns the move flag.
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> 24) & 0x7)
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured() != NoPieceType
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion() != NoPieceType
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsDoublePush returns true if this is a two-square pawn push.
func (m Move) IsDoublePush() bool {
	return m.Flag() == FlagDoublePush
}

// IsCastling returns true if this is a castling move (either side).
func (m Move) IsCastling() bool {
	f := m.Flag()
	return f == FlagKingSideCastle || f == FlagQueenSideCastle
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}

	return s
}

// Move text parse errors.
var (
	ErrMoveTooShort          = errors.New("move text too short")
	ErrInvalidMoveSquare     = errors.New("invalid square in move text")
	ErrInvalidPromotionPiece = errors.New("invalid promotion piece")
	ErrNoPieceAtOrigin       = errors.New("no piece at origin square")
)

// ParseMove parses a UCI format move string against a position. The text
// only names the squares; the position supplies the moving piece, any
// captured piece and the special move kind.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrMoveTooShort, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveSquare, s[0:2])
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveSquare, s[2:4])
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, from)
	}
	pt := piece.Type()

	captured := NoPieceType
	if c := pos.PieceAt(to); c != NoPiece {
		captured = c.Type()
	}

	// Promotion
	if len(s) > 4 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: %c", ErrInvalidPromotionPiece, s[4])
		}
		if captured != NoPieceType {
			return NewPromotionCapture(from, to, promo, captured), nil
		}
		return NewPromotion(from, to, promo), nil
	}

	// Castling
	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastle(from, to), nil
	}

	// En passant
	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassant(from, to), nil
	}

	// Double push
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		return NewDoublePush(from, to), nil
	}

	if captured != NoPieceType {
		return NewCapture(from, to, pt, captured), nil
	}
	return NewMove(from, to, pt), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list's array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores the state needed to undo a move.
type UndoInfo struct {
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	Checkers       Bitboard
	KingSquare     [2]Square      // King positions before the move
	Pieces         [2][6]Bitboard // Full piece bitboards for reliable restoration
	Occupied       [2]Bitboard    // Occupancy bitboards
	AllOccupied    Bitboard       // All pieces
	Valid          bool           // True if the move was actually applied
}
