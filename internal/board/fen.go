package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN parse errors. Every failure from ParseFEN wraps one of these, so
// callers can classify it with errors.Is.
var (
	ErrMalformedFEN            = errors.New("malformed FEN")
	ErrInvalidRankCount        = errors.New("invalid rank count")
	ErrInvalidRankLength       = errors.New("invalid rank length")
	ErrInvalidPieceChar        = errors.New("invalid piece character")
	ErrInvalidSideToMove       = errors.New("invalid side to move")
	ErrInvalidCastling         = errors.New("invalid castling rights")
	ErrInvalidEnPassant        = errors.New("invalid en passant square")
	ErrInvalidEnPassantContext = errors.New("en passant square inconsistent with position")
	ErrInvalidClock            = errors.New("invalid move clock")
)

// ParseFEN parses a FEN string and returns a Position.
// All six fields are required. The en passant field is checked against the
// board: the double-pushed pawn must be present, the target square empty,
// and a pawn of the side to move placed to capture.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: need 6 fields, got %d", ErrMalformedFEN, len(parts))
	}

	pos := &Position{
		EnPassant: NoSquare,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSideToMove, parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3); board checks happen below
	epSquare := NoSquare
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEnPassant, parts[3])
		}
		epSquare = sq
	}

	// Parse half-move clock (field 4)
	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidClock, parts[4])
	}
	pos.HalfMoveClock = hmc

	// Parse full-move number (field 5)
	fmn, err := strconv.Atoi(parts[5])
	if err != nil || fmn < 1 {
		return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidClock, parts[5])
	}
	pos.FullMoveNumber = fmn

	// Update derived state
	pos.updateOccupied()
	pos.findKings()

	// Validate the en passant square against the board
	if epSquare != NoSquare {
		if err := validateEnPassant(pos, epSquare); err != nil {
			return nil, err
		}
		pos.EnPassant = epSquare
	}

	pos.Hash = pos.ComputeHash()
	pos.UpdateCheckers()

	return pos, nil
}

// validateEnPassant checks that an en passant target square is consistent
// with the position it appears in.
func validateEnPassant(pos *Position, sq Square) error {
	us := pos.SideToMove
	them := us.Other()

	// The target rank implies which side just double-pushed
	var pawnSq Square
	switch {
	case sq.Rank() == 5 && us == White:
		pawnSq = sq - 8 // Black pawn that pushed past the target
	case sq.Rank() == 2 && us == Black:
		pawnSq = sq + 8 // White pawn that pushed past the target
	default:
		return fmt.Errorf("%w: %s with %s to move", ErrInvalidEnPassant, sq, us)
	}

	if pos.Pieces[them][Pawn]&SquareBB(pawnSq) == 0 {
		return fmt.Errorf("%w: no pawn on %s", ErrInvalidEnPassantContext, pawnSq)
	}
	if !pos.IsEmpty(sq) {
		return fmt.Errorf("%w: target square %s is occupied", ErrInvalidEnPassantContext, sq)
	}
	if pawnAttacks[them][sq]&pos.Pieces[us][Pawn] == 0 {
		return fmt.Errorf("%w: no pawn can capture on %s", ErrInvalidEnPassantContext, sq)
	}

	return nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidRankCount, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidRankLength, rank+1)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
			} else {
				// Place a piece
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fmt.Errorf("%w: %c", ErrInvalidPieceChar, c)
				}
				sq := NewSquare(file, rank)
				pos.setPiece(piece, sq)
				file++
			}
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidRankLength, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	if len(castling) > 4 {
		return fmt.Errorf("%w: %q", ErrInvalidCastling, castling)
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			pos.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			pos.CastlingRights |= BlackKingSideCastle
		case 'q':
			pos.CastlingRights |= BlackQueenSideCastle
		default:
			return fmt.Errorf("%w: character %c", ErrInvalidCastling, c)
		}
	}

	return nil
}

// FEN returns the FEN representation of the position.
// Output from FEN always parses back to an identical position: the en
// passant field is emitted whenever it is set, and MakeMove only sets it
// when a capturing pawn is in place.
func (p *Position) FEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
// MakeMove maintains the same hash incrementally.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	// Hash pieces
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][pt][sq]
			}
		}
	}

	// Hash side to move
	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	// Hash castling rights
	hash ^= zobristCastling[p.CastlingRights]

	// Hash en passant
	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}
