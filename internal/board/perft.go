package board

// Perft counts the leaf nodes of the legal move tree at the given depth.
// This is the standard way to verify move generation correctness.
func (p *Position) Perft(depth int) int64 {
	if depth <= 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide returns the node count under each root move, keyed by the
// move's UCI string, together with the total. Used to narrow down which
// root move a perft mismatch hides behind.
func (p *Position) PerftDivide(depth int) (map[string]int64, int64) {
	results := make(map[string]int64)
	var total int64

	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes := p.Perft(depth - 1)
		p.UnmakeMove(m, undo)

		results[m.String()] = nodes
		total += nodes
	}
	return results, total
}
