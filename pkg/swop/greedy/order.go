package greedy

import "sort"

// baseOrder sorts by optimize_order (non-zero values first, ascending),
// falling back to original declaration index (spec §4.4 step 1).
func baseOrder(monsters []MonsterSpec) []MonsterSpec {
	idx := make([]int, len(monsters))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		oa, ob := monsters[idx[a]].OptimizeOrder, monsters[idx[b]].OptimizeOrder
		if (oa == 0) != (ob == 0) {
			return ob == 0
		}
		if oa != ob {
			return oa < ob
		}
		return idx[a] < idx[b]
	})
	out := make([]MonsterSpec, len(monsters))
	for i, id := range idx {
		out[i] = monsters[id]
	}
	return out
}

// applyTurnOrder reorders monsters within each team's occupied positions so
// lower turn_order values come first, letting the earlier-turn monster
// claim the fastest runes first (spec §4.4 step 1).
func applyTurnOrder(order []MonsterSpec) []MonsterSpec {
	positionsByTeam := map[int][]int{}
	for i, m := range order {
		positionsByTeam[m.TeamID] = append(positionsByTeam[m.TeamID], i)
	}
	out := append([]MonsterSpec(nil), order...)
	for _, positions := range positionsByTeam {
		if len(positions) < 2 {
			continue
		}
		members := make([]MonsterSpec, len(positions))
		for i, p := range positions {
			members[i] = order[p]
		}
		sort.SliceStable(members, func(a, b int) bool {
			ta, tb := members[a].TurnOrder, members[b].TurnOrder
			if (ta == 0) != (tb == 0) {
				return tb == 0
			}
			return ta < tb
		})
		for i, p := range positions {
			out[p] = members[i]
		}
	}
	return out
}

// rotate returns a copy of order cyclically shifted left by k positions.
func rotate(order []MonsterSpec, k int) []MonsterSpec {
	n := len(order)
	if n == 0 {
		return order
	}
	k = ((k % n) + n) % n
	out := make([]MonsterSpec, n)
	for i := range order {
		out[i] = order[(i+k)%n]
	}
	return out
}

// reverseOrder returns a reversed copy of order.
func reverseOrder(order []MonsterSpec) []MonsterSpec {
	n := len(order)
	out := make([]MonsterSpec, n)
	for i := range order {
		out[i] = order[n-1-i]
	}
	return out
}

// passOrders derives up to count priority orderings from base by rotation
// and reversal (spec §4.4 step 4): pass 0 is the base order, pass 1 is its
// reversal, and subsequent passes are successive rotations.
func passOrders(base []MonsterSpec, count int) [][]MonsterSpec {
	if count <= 0 {
		count = 1
	}
	orders := [][]MonsterSpec{base}
	if count > 1 {
		orders = append(orders, reverseOrder(base))
	}
	for k := 1; len(orders) < count; k++ {
		orders = append(orders, rotate(base, k))
	}
	return orders[:count]
}

// unitIDs extracts the processing order's unit ids, recorded as
// PassResult.Order and walked by signature() for the "identical
// signature, not strictly better" early-stop check (spec §4.4 step 4).
func unitIDs(order []MonsterSpec) []int64 {
	out := make([]int64, len(order))
	for i, m := range order {
		out[i] = m.Monster.UnitID
	}
	return out
}
