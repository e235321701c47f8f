package board

import (
	"errors"
	"testing"
)

func TestToSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight development", StartFEN, "g1f3", "Nf3"},
		{
			"pawn capture keeps the origin file",
			"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			"e4d5", "exd5",
		},
		{
			"en passant reads like a pawn capture",
			"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
			"e5d6", "exd6",
		},
		{
			"kingside castling",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"e1g1", "O-O",
		},
		{
			"queenside castling",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"e1c1", "O-O-O",
		},
		{
			"quiet promotion",
			"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			"a7a8q", "a8=Q",
		},
		{
			"promotion capture giving check",
			"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			"a7b8q", "axb8=Q+",
		},
		{
			"file disambiguation",
			"k7/8/8/8/8/8/1N3N2/K7 w - - 0 1",
			"b2d3", "Nbd3",
		},
		{
			"rank disambiguation",
			"7k/8/8/R7/8/8/8/R3K3 w Q - 0 1",
			"a1a3", "R1a3",
		},
		{
			"full square disambiguation",
			"3k4/8/8/8/8/Q7/8/Q1Q4K w - - 0 1",
			"a1b2", "Qa1b2",
		},
		{
			"pinned sibling needs no disambiguation",
			"3r3k/8/8/8/8/8/3N4/3K2N1 w - - 0 1",
			"g1f3", "Nf3",
		},
		{
			"back rank mate",
			"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			"a1a8", "Ra8#",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN error: %v", err)
			}
			m, err := ParseMove(tc.uci, pos)
			if err != nil {
				t.Fatalf("ParseMove(%q) error: %v", tc.uci, err)
			}
			if got := m.ToSAN(pos); got != tc.want {
				t.Errorf("ToSAN(%s) = %q, want %q", tc.uci, got, tc.want)
			}
		})
	}
}

func TestParseSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		san  string
		want string
	}{
		{"pawn push", StartFEN, "e4", "e2e4"},
		{"knight move", StartFEN, "Nf3", "g1f3"},
		{
			"pawn capture",
			"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			"exd5", "e4d5",
		},
		{
			"castling letters",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"O-O", "e1g1",
		},
		{
			"castling digits",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"0-0-0", "e1c1",
		},
		{
			"black castling",
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			"O-O", "e8g8",
		},
		{
			"promotion",
			"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			"a8=Q", "a7a8q",
		},
		{
			"promotion capture with suffix",
			"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			"axb8=N+", "a7b8n",
		},
		{
			"rank disambiguation",
			"7k/8/8/R7/8/8/8/R3K3 w Q - 0 1",
			"R5a3", "a5a3",
		},
		{
			"full square disambiguation",
			"3k4/8/8/8/8/Q7/8/Q1Q4K w - - 0 1",
			"Qa1b2", "a1b2",
		},
		{
			"check suffix tolerated",
			"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			"Ra8#", "a1a8",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN error: %v", err)
			}
			m, err := ParseSAN(tc.san, pos)
			if err != nil {
				t.Fatalf("ParseSAN(%q) error: %v", tc.san, err)
			}
			if got := m.String(); got != tc.want {
				t.Errorf("ParseSAN(%q) = %s, want %s", tc.san, got, tc.want)
			}
		})
	}
}

func TestParseSANErrors(t *testing.T) {
	startpos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	tests := []struct {
		name string
		san  string
	}{
		{"garbage", "xyz"},
		{"empty", ""},
		{"unreachable square", "e5"},
		{"illegal king move", "Kd2"},
		{"castling unavailable", "O-O"},
		{"bad piece letter", "Ze4"},
		{"bare promotion", "="},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSAN(tc.san, startpos); !errors.Is(err, ErrInvalidSAN) {
				t.Errorf("ParseSAN(%q) error = %v, want ErrInvalidSAN", tc.san, err)
			}
		})
	}

	t.Run("bad promotion piece", func(t *testing.T) {
		pos, err := ParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		if _, err := ParseSAN("a8=K", pos); !errors.Is(err, ErrInvalidSAN) {
			t.Errorf("ParseSAN(a8=K) error = %v, want ErrInvalidSAN", err)
		}
	})
}

// Every legal move must survive a SAN round trip in positions that force
// captures, promotions, castling and heavy disambiguation.
func TestSANRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"3k4/8/8/8/8/Q7/8/Q1Q4K w - - 0 1",
		"7k/8/8/R7/8/8/8/R3K3 w Q - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN error: %v", err)
			}

			legal := pos.GenerateLegalMoves()
			for i := 0; i < legal.Len(); i++ {
				m := legal.Get(i)
				san := m.ToSAN(pos)
				parsed, err := ParseSAN(san, pos)
				if err != nil {
					t.Errorf("ParseSAN(%q) for %s failed: %v", san, m, err)
					continue
				}
				if parsed != m {
					t.Errorf("round trip %s -> %q -> %s", m, san, parsed)
				}
			}
		})
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := NewPosition()
	moves := []Move{
		NewDoublePush(E2, E4),
		NewDoublePush(E7, E5),
		NewMove(F1, C4, Bishop),
		NewMove(B8, C6, Knight),
		NewMove(D1, H5, Queen),
		NewMove(G8, F6, Knight),
		NewCapture(H5, F7, Queen, Pawn),
	}

	want := []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"}
	got := MovesToSAN(pos, moves)

	if len(got) != len(want) {
		t.Fatalf("MovesToSAN returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, got[i], want[i])
		}
	}

	// The caller's position is left untouched
	if pos.FEN() != StartFEN {
		t.Errorf("MovesToSAN modified the input position: %s", pos.FEN())
	}
}
