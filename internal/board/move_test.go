package board

import (
	"errors"
	"testing"
)

func TestMoveEncoding(t *testing.T) {
	tests := []struct {
		name     string
		move     Move
		from, to Square
		pt       PieceType
		captured PieceType
		promo    PieceType
		flag     MoveFlag
	}{
		{"quiet", NewMove(G1, F3, Knight), G1, F3, Knight, NoPieceType, NoPieceType, FlagNone},
		{"capture", NewCapture(E4, D5, Pawn, Pawn), E4, D5, Pawn, Pawn, NoPieceType, FlagNone},
		{"double push", NewDoublePush(E2, E4), E2, E4, Pawn, NoPieceType, NoPieceType, FlagDoublePush},
		{"en passant", NewEnPassant(E5, D6), E5, D6, Pawn, Pawn, NoPieceType, FlagEnPassant},
		{"kingside castle", NewCastle(E1, G1), E1, G1, King, NoPieceType, NoPieceType, FlagKingSideCastle},
		{"queenside castle", NewCastle(E8, C8), E8, C8, King, NoPieceType, NoPieceType, FlagQueenSideCastle},
		{"promotion", NewPromotion(A7, A8, Queen), A7, A8, Pawn, NoPieceType, Queen, FlagNone},
		{"promotion capture", NewPromotionCapture(A7, B8, Knight, Rook), A7, B8, Pawn, Rook, Knight, FlagNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.move
			if m.From() != tc.from {
				t.Errorf("From = %s, want %s", m.From(), tc.from)
			}
			if m.To() != tc.to {
				t.Errorf("To = %s, want %s", m.To(), tc.to)
			}
			if m.Piece() != tc.pt {
				t.Errorf("Piece = %s, want %s", m.Piece(), tc.pt)
			}
			if m.Captured() != tc.captured {
				t.Errorf("Captured = %s, want %s", m.Captured(), tc.captured)
			}
			if m.Promotion() != tc.promo {
				t.Errorf("Promotion = %s, want %s", m.Promotion(), tc.promo)
			}
			if m.Flag() != tc.flag {
				t.Errorf("Flag = %d, want %d", m.Flag(), tc.flag)
			}
		})
	}
}

func TestMovePredicates(t *testing.T) {
	if !NewCapture(E4, D5, Pawn, Pawn).IsCapture() {
		t.Error("capture not reported as capture")
	}
	if NewMove(G1, F3, Knight).IsCapture() {
		t.Error("quiet move reported as capture")
	}
	if !NewEnPassant(E5, D6).IsCapture() {
		t.Error("en passant must count as a capture")
	}
	if !NewEnPassant(E5, D6).IsEnPassant() {
		t.Error("en passant flag lost")
	}
	if !NewDoublePush(E2, E4).IsDoublePush() {
		t.Error("double push flag lost")
	}
	if !NewCastle(E1, G1).IsCastling() || !NewCastle(E1, C1).IsCastling() {
		t.Error("castling flag lost")
	}
	if !NewPromotion(A7, A8, Queen).IsPromotion() {
		t.Error("promotion not reported")
	}
	if NewPromotion(A7, A8, Queen).IsQuiet() {
		t.Error("promotion reported as quiet")
	}
	if !NewMove(G1, F3, Knight).IsQuiet() {
		t.Error("quiet move not reported as quiet")
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{NewMove(G1, F3, Knight), "g1f3"},
		{NewDoublePush(E2, E4), "e2e4"},
		{NewCastle(E1, G1), "e1g1"},
		{NewCastle(E8, C8), "e8c8"},
		{NewPromotion(E7, E8, Queen), "e7e8q"},
		{NewPromotion(E7, E8, Knight), "e7e8n"},
		{NewPromotionCapture(E7, D8, Rook, Bishop), "e7d8r"},
		{NoMove, "0000"},
	}

	for _, tc := range tests {
		if got := tc.move.String(); got != tc.want {
			t.Errorf("Move.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	startpos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	t.Run("quiet", func(t *testing.T) {
		m, err := ParseMove("g1f3", startpos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if m.Piece() != Knight || m.From() != G1 || m.To() != F3 || !m.IsQuiet() {
			t.Errorf("parsed %s as %s piece %s", "g1f3", m, m.Piece())
		}
	})

	t.Run("double push inferred", func(t *testing.T) {
		m, err := ParseMove("e2e4", startpos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if !m.IsDoublePush() {
			t.Errorf("e2e4 should parse as a double push, got flag %d", m.Flag())
		}
	})

	t.Run("single push not flagged", func(t *testing.T) {
		m, err := ParseMove("e2e3", startpos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if m.Flag() != FlagNone {
			t.Errorf("e2e3 should have no flag, got %d", m.Flag())
		}
	})

	t.Run("capture inferred", func(t *testing.T) {
		pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		m, err := ParseMove("e4d5", pos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if !m.IsCapture() || m.Captured() != Pawn {
			t.Errorf("e4d5 should capture a pawn, got %s", m.Captured())
		}
	})

	t.Run("en passant inferred", func(t *testing.T) {
		pos, err := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		m, err := ParseMove("e5d6", pos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if !m.IsEnPassant() || m.Captured() != Pawn {
			t.Errorf("e5d6 should be en passant, got flag %d captured %s", m.Flag(), m.Captured())
		}
	})

	t.Run("castling inferred", func(t *testing.T) {
		pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		m, err := ParseMove("e1g1", pos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if m.Flag() != FlagKingSideCastle {
			t.Errorf("e1g1 should be kingside castling, got flag %d", m.Flag())
		}
		m, err = ParseMove("e1c1", pos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if m.Flag() != FlagQueenSideCastle {
			t.Errorf("e1c1 should be queenside castling, got flag %d", m.Flag())
		}
	})

	t.Run("promotion", func(t *testing.T) {
		pos, err := ParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		m, err := ParseMove("a7a8q", pos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if m.Promotion() != Queen || m.IsCapture() {
			t.Errorf("a7a8q parsed wrong: promo %s capture %v", m.Promotion(), m.IsCapture())
		}

		m, err = ParseMove("a7b8n", pos)
		if err != nil {
			t.Fatalf("ParseMove error: %v", err)
		}
		if m.Promotion() != Knight || m.Captured() != Knight {
			t.Errorf("a7b8n parsed wrong: promo %s captured %s", m.Promotion(), m.Captured())
		}
	})
}

func TestParseMoveErrors(t *testing.T) {
	startpos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrMoveTooShort},
		{"too short", "e2e", ErrMoveTooShort},
		{"bad from square", "z9e4", ErrInvalidMoveSquare},
		{"bad to square", "e2i4", ErrInvalidMoveSquare},
		{"bad promotion letter", "e2e4k", ErrInvalidPromotionPiece},
		{"empty origin", "e4e5", ErrNoPieceAtOrigin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseMove(tc.text, startpos); !errors.Is(err, tc.want) {
				t.Errorf("ParseMove(%q) error = %v, want %v", tc.text, err, tc.want)
			}
		})
	}
}

func TestMoveList(t *testing.T) {
	ml := NewMoveList()
	if ml.Len() != 0 {
		t.Fatalf("new list has %d moves", ml.Len())
	}

	m1 := NewMove(G1, F3, Knight)
	m2 := NewDoublePush(E2, E4)
	ml.Add(m1)
	ml.Add(m2)

	if ml.Len() != 2 {
		t.Errorf("Len = %d, want 2", ml.Len())
	}
	if ml.Get(0) != m1 || ml.Get(1) != m2 {
		t.Error("Get returned wrong moves")
	}
	if !ml.Contains(m1) || !ml.Contains(m2) {
		t.Error("Contains missed an added move")
	}
	if ml.Contains(NewMove(B1, C3, Knight)) {
		t.Error("Contains reported a move that was never added")
	}

	s := ml.Slice()
	if len(s) != 2 || s[0] != m1 || s[1] != m2 {
		t.Error("Slice mismatch")
	}

	ml.Clear()
	if ml.Len() != 0 || ml.Contains(m1) {
		t.Error("Clear did not empty the list")
	}
}
