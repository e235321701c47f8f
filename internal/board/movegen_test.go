package board

import "testing"

// movesFrom collects the legal moves starting on a given square.
func movesFrom(pos *Position, from Square) []Move {
	var out []Move
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if m := legal.Get(i); m.From() == from {
			out = append(out, m)
		}
	}
	return out
}

// containsUCI reports whether the list holds a move with the given UCI text.
func containsUCI(ml *MoveList, uci string) bool {
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).String() == uci {
			return true
		}
	}
	return false
}

func TestStartingPositionMoves(t *testing.T) {
	pos := NewPosition()
	legal := pos.GenerateLegalMoves()

	if legal.Len() != 20 {
		t.Fatalf("starting position has %d legal moves, want 20", legal.Len())
	}

	pawnMoves, knightMoves := 0, 0
	for i := 0; i < legal.Len(); i++ {
		switch legal.Get(i).Piece() {
		case Pawn:
			pawnMoves++
		case Knight:
			knightMoves++
		default:
			t.Errorf("unexpected %s move in the starting position", legal.Get(i).Piece())
		}
	}
	if pawnMoves != 16 || knightMoves != 4 {
		t.Errorf("got %d pawn and %d knight moves, want 16 and 4", pawnMoves, knightMoves)
	}
}

func TestPinnedPieceMoves(t *testing.T) {
	t.Run("pinned bishop cannot move", func(t *testing.T) {
		// Bishop on e2 shields the king from the e8 rook; it has no legal
		// destination on the pin ray
		pos, err := ParseFEN("4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		if moves := movesFrom(pos, E2); len(moves) != 0 {
			t.Errorf("pinned bishop has %d moves, want 0: %v", len(moves), moves)
		}
	})

	t.Run("pinned rook slides along the ray", func(t *testing.T) {
		pos, err := ParseFEN("4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		moves := movesFrom(pos, E2)
		if len(moves) != 6 {
			t.Fatalf("pinned rook has %d moves, want 6 (e3-e7 and xe8)", len(moves))
		}
		for _, m := range moves {
			if m.To().File() != 4 {
				t.Errorf("pinned rook left the e-file: %s", m)
			}
		}
	})

	t.Run("pinned knight is frozen", func(t *testing.T) {
		// A knight can never stay on its pin ray
		pos, err := ParseFEN("7k/8/8/8/b7/8/2N5/3K4 w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		if moves := movesFrom(pos, C2); len(moves) != 0 {
			t.Errorf("pinned knight has %d moves, want 0: %v", len(moves), moves)
		}
	})
}

func TestKingCannotMoveIntoAttack(t *testing.T) {
	// The b2 rook covers a2 and b1; only its capture remains
	pos, err := ParseFEN("k7/8/8/8/8/8/1r6/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	legal := pos.GenerateLegalMoves()
	if legal.Len() != 1 {
		t.Fatalf("got %d legal moves, want only Kxb2", legal.Len())
	}
	if got := legal.Get(0).String(); got != "a1b2" {
		t.Errorf("legal move = %s, want a1b2", got)
	}
}

func TestKingCannotRetreatAlongCheckRay(t *testing.T) {
	// Stepping straight back keeps the king on the rook's line; the occupancy
	// for the attack test must exclude the moving king
	pos, err := ParseFEN("7k/8/8/8/4r3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i).To() == E1 {
			t.Fatal("king cannot stay on e1")
		}
	}
	if containsUCI(legal, "e1e2") {
		t.Error("king retreated along the rook's ray to e2")
	}
	for _, want := range []string{"e1d1", "e1f1", "e1d2", "e1f2"} {
		if !containsUCI(legal, want) {
			t.Errorf("missing escape %s", want)
		}
	}
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingside  string
		queenside string
		wantKing  bool
		wantQueen bool
	}{
		{
			"white both available",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"e1g1", "e1c1", true, true,
		},
		{
			"black both available",
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			"e8g8", "e8c8", true, true,
		},
		{
			"through an attacked square",
			"r4rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			"e1g1", "e1c1", false, true,
		},
		{
			"into an attacked square",
			"r5k1/8/8/8/8/8/6r1/R3K2R w KQ - 0 1",
			"e1g1", "e1c1", false, true,
		},
		{
			"while in check",
			"4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			"e1g1", "e1c1", false, false,
		},
		{
			"blocked path",
			"r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1",
			"e1g1", "e1c1", false, false,
		},
		{
			"rights already spent",
			"r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1",
			"e1g1", "e1c1", false, false,
		},
		{
			// Only c1 and d1 must be safe for queenside; an attacked b1 does
			// not matter
			"b1 under attack",
			"r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1",
			"e1g1", "e1c1", true, true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN error: %v", err)
			}
			legal := pos.GenerateLegalMoves()
			if got := containsUCI(legal, tc.kingside); got != tc.wantKing {
				t.Errorf("kingside castle present = %v, want %v", got, tc.wantKing)
			}
			if got := containsUCI(legal, tc.queenside); got != tc.wantQueen {
				t.Errorf("queenside castle present = %v, want %v", got, tc.wantQueen)
			}
		})
	}
}

func TestCastlingMoveCount(t *testing.T) {
	// Classic castling position: 16 rook moves, 5 king steps, 2 castles, and
	// 3 more rook moves along the first rank
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if got := pos.GenerateLegalMoves().Len(); got != 26 {
		t.Errorf("got %d legal moves, want 26", got)
	}
}

func TestPromotionGeneration(t *testing.T) {
	pos, err := ParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	legal := pos.GenerateLegalMoves()
	if legal.Len() != 11 {
		t.Fatalf("got %d legal moves, want 11", legal.Len())
	}

	promos, promoCaptures := 0, 0
	seen := map[PieceType]bool{}
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if !m.IsPromotion() {
			continue
		}
		seen[m.Promotion()] = true
		if m.IsCapture() {
			if m.Captured() != Knight {
				t.Errorf("promotion capture took %s, want knight", m.Captured())
			}
			promoCaptures++
		} else {
			promos++
		}
	}

	if promos != 4 || promoCaptures != 4 {
		t.Errorf("got %d quiet promotions and %d capturing, want 4 and 4", promos, promoCaptures)
	}
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		if !seen[pt] {
			t.Errorf("no promotion to %s generated", pt)
		}
	}
}

func TestPawnMoveGeneration(t *testing.T) {
	t.Run("push blocked", func(t *testing.T) {
		pos, err := ParseFEN("4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		if moves := movesFrom(pos, E2); len(moves) != 0 {
			t.Errorf("blocked pawn has %d moves, want 0: %v", len(moves), moves)
		}
	})

	t.Run("double push blocked at the jump square", func(t *testing.T) {
		pos, err := ParseFEN("4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		moves := movesFrom(pos, E2)
		if len(moves) != 1 || moves[0].String() != "e2e3" {
			t.Errorf("pawn moves = %v, want just e2e3", moves)
		}
	})

	t.Run("pushes and captures", func(t *testing.T) {
		pos, err := ParseFEN("4k3/8/8/8/8/3p1p2/4P3/4K3 w - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		moves := movesFrom(pos, E2)
		if len(moves) != 4 {
			t.Fatalf("pawn has %d moves, want 4: %v", len(moves), moves)
		}
		for _, m := range moves {
			switch m.String() {
			case "e2e3":
				if m.Flag() != FlagNone {
					t.Error("single push carries a flag")
				}
			case "e2e4":
				if !m.IsDoublePush() {
					t.Error("double push not flagged")
				}
			case "e2d3", "e2f3":
				if m.Captured() != Pawn {
					t.Errorf("%s should capture a pawn", m)
				}
			default:
				t.Errorf("unexpected pawn move %s", m)
			}
		}
	})

	t.Run("en passant offered", func(t *testing.T) {
		pos, err := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		legal := pos.GenerateLegalMoves()
		var ep Move
		for i := 0; i < legal.Len(); i++ {
			if legal.Get(i).IsEnPassant() {
				ep = legal.Get(i)
			}
		}
		if ep == NoMove {
			t.Fatal("en passant capture not generated")
		}
		if ep.String() != "e5d6" || ep.Captured() != Pawn {
			t.Errorf("en passant move = %s capturing %s", ep, ep.Captured())
		}
	})

	t.Run("black moves mirror", func(t *testing.T) {
		pos, err := ParseFEN("4k3/4p3/8/8/8/8/8/4K3 b - - 0 1")
		if err != nil {
			t.Fatalf("ParseFEN error: %v", err)
		}
		moves := movesFrom(pos, E7)
		if len(moves) != 2 {
			t.Fatalf("black pawn has %d moves, want 2: %v", len(moves), moves)
		}
		if !containsUCI(pos.GenerateLegalMoves(), "e7e5") {
			t.Error("black double push missing")
		}
	})
}

func TestPseudoLegalIncludesPinnedMoves(t *testing.T) {
	pos, err := ParseFEN("4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	pseudo := pos.GeneratePseudoLegalMoves()
	pinnedMoves := 0
	for i := 0; i < pseudo.Len(); i++ {
		if pseudo.Get(i).From() == E2 {
			pinnedMoves++
		}
	}
	if pinnedMoves == 0 {
		t.Fatal("pseudo-legal list should include the pinned bishop's moves")
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i).From() == E2 {
			t.Fatal("legal list kept a pinned bishop move")
		}
	}
	if legal.Len() >= pseudo.Len() {
		t.Errorf("legal count %d should be below pseudo-legal count %d", legal.Len(), pseudo.Len())
	}
}

func TestCheckEvasions(t *testing.T) {
	// Checked by a rook: block, capture or step aside
	pos, err := ParseFEN("4r2k/8/8/8/8/8/2B5/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if !pos.InCheck() {
		t.Fatal("white should be in check")
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.Piece() == King {
			continue
		}
		// Non-king moves must land on the check ray
		if m.To() != E8 && Between(E8, E1)&SquareBB(m.To()) == 0 {
			t.Errorf("%s neither blocks nor captures the checker", m)
		}
	}

	if !containsUCI(legal, "c2e4") {
		t.Error("blocking bishop move c2e4 missing")
	}
	if containsUCI(legal, "e1e2") {
		t.Error("king stepped onto the check ray")
	}
}

func TestHasLegalMovesAgreesWithGenerator(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"7k/5KQ1/8/8/8/8/8/8 b - - 0 1", // Mated
		"7k/8/6Q1/8/8/8/8/K7 b - - 0 1", // Stalemated
		"4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error: %v", fen, err)
		}
		want := pos.GenerateLegalMoves().Len() > 0
		if got := pos.HasLegalMoves(); got != want {
			t.Errorf("HasLegalMoves() = %v but generator found %d moves in %q",
				got, pos.GenerateLegalMoves().Len(), fen)
		}
	}
}
