package board

import "math/bits"

// Directional ray masks for sliding attack generation. For each square,
// rookRays holds the four orthogonal rays and bishopRays the four diagonal
// rays, excluding the square itself and running to the board edge.
var (
	rookRays   [64][4]Bitboard
	bishopRays [64][4]Bitboard
)

// Ray indices. Rays toward higher square indices locate their nearest
// blocker with a forward bit scan, rays toward lower indices with a
// reverse bit scan.
const (
	rayNorth = 0
	raySouth = 1
	rayEast  = 2
	rayWest  = 3

	rayNorthEast = 0
	rayNorthWest = 1
	raySouthEast = 2
	raySouthWest = 3
)

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()

		var n, s, e, w Bitboard
		for rr := r + 1; rr < 8; rr++ {
			n |= SquareBB(NewSquare(f, rr))
		}
		for rr := r - 1; rr >= 0; rr-- {
			s |= SquareBB(NewSquare(f, rr))
		}
		for ff := f + 1; ff < 8; ff++ {
			e |= SquareBB(NewSquare(ff, r))
		}
		for ff := f - 1; ff >= 0; ff-- {
			w |= SquareBB(NewSquare(ff, r))
		}
		rookRays[sq] = [4]Bitboard{n, s, e, w}

		var ne, nw, se, sw Bitboard
		for ff, rr := f+1, r+1; ff < 8 && rr < 8; ff, rr = ff+1, rr+1 {
			ne |= SquareBB(NewSquare(ff, rr))
		}
		for ff, rr := f-1, r+1; ff >= 0 && rr < 8; ff, rr = ff-1, rr+1 {
			nw |= SquareBB(NewSquare(ff, rr))
		}
		for ff, rr := f+1, r-1; ff < 8 && rr >= 0; ff, rr = ff+1, rr-1 {
			se |= SquareBB(NewSquare(ff, rr))
		}
		for ff, rr := f-1, r-1; ff >= 0 && rr >= 0; ff, rr = ff-1, rr-1 {
			sw |= SquareBB(NewSquare(ff, rr))
		}
		bishopRays[sq] = [4]Bitboard{ne, nw, se, sw}
	}
}

// getRookAttacks computes rook attacks from sq under the given occupancy by
// ray decomposition: per direction, intersect the ray with the occupancy,
// scan for the nearest blocker, and mask off the ray beyond it. The blocker
// square itself stays in the attack set.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard

	// North (forward scan)
	ray := rookRays[sq][rayNorth]
	if blockers := ray & occupied; blockers != 0 {
		first := bits.TrailingZeros64(uint64(blockers))
		ray &^= rookRays[first][rayNorth]
	}
	attacks |= ray

	// South (reverse scan)
	ray = rookRays[sq][raySouth]
	if blockers := ray & occupied; blockers != 0 {
		first := 63 - bits.LeadingZeros64(uint64(blockers))
		ray &^= rookRays[first][raySouth]
	}
	attacks |= ray

	// East (forward scan)
	ray = rookRays[sq][rayEast]
	if blockers := ray & occupied; blockers != 0 {
		first := bits.TrailingZeros64(uint64(blockers))
		ray &^= rookRays[first][rayEast]
	}
	attacks |= ray

	// West (reverse scan)
	ray = rookRays[sq][rayWest]
	if blockers := ray & occupied; blockers != 0 {
		first := 63 - bits.LeadingZeros64(uint64(blockers))
		ray &^= rookRays[first][rayWest]
	}
	attacks |= ray

	return attacks
}

// getBishopAttacks computes bishop attacks from sq under the given occupancy.
// Same ray decomposition as getRookAttacks, over the diagonal rays.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard

	// NorthEast (forward scan)
	ray := bishopRays[sq][rayNorthEast]
	if blockers := ray & occupied; blockers != 0 {
		first := bits.TrailingZeros64(uint64(blockers))
		ray &^= bishopRays[first][rayNorthEast]
	}
	attacks |= ray

	// NorthWest (forward scan)
	ray = bishopRays[sq][rayNorthWest]
	if blockers := ray & occupied; blockers != 0 {
		first := bits.TrailingZeros64(uint64(blockers))
		ray &^= bishopRays[first][rayNorthWest]
	}
	attacks |= ray

	// SouthEast (reverse scan)
	ray = bishopRays[sq][raySouthEast]
	if blockers := ray & occupied; blockers != 0 {
		first := 63 - bits.LeadingZeros64(uint64(blockers))
		ray &^= bishopRays[first][raySouthEast]
	}
	attacks |= ray

	// SouthWest (reverse scan)
	ray = bishopRays[sq][raySouthWest]
	if blockers := ray & occupied; blockers != 0 {
		first := 63 - bits.LeadingZeros64(uint64(blockers))
		ray &^= bishopRays[first][raySouthWest]
	}
	attacks |= ray

	return attacks
}
