package cavemesh

import "github.com/arl/assertgo"

// Entrance is a maximal connected component of border vertices joining
// two specific zones (spec.md §3, "Entrance").
type Entrance struct {
	Index     int32
	ZoneA     int32 // ZoneA < ZoneB, by convention
	ZoneB     int32
	Members   []int32 // level-0 node indices, all touching a cross-zone edge between ZoneA and ZoneB
	Clearance float32 // min over member clearances

	// Node is the level-1 entrance-centroid node, set once the graph
	// builder has allocated it.
	Node int32
}

// zonePair canonicalizes an unordered pair of zone ids with a < b.
func zonePair(a, b int32) (int32, int32) {
	if a < b {
		return a, b
	}
	return b, a
}

// extractEntrances finds every Entrance between every touching zone pair
// (spec.md §4.5). reg is the fully-linked level-0 registry (IntraZone and
// CrossZone both populated).
//
// Grounded on original_source/nav_mesh/nav_mesh_factory.py's
// NavRoomInterface.calculate_entrances: a stack-based flood fill over the
// union of intra- and cross-zone neighbours, restricted to the candidate
// vertex set for one zone pair at a time. The Go port collects candidate
// sets with a map-of-slices keyed by the canonical zone pair instead of
// Python's per-pair dict-of-sets, matching the teacher's general
// preference for dense slice-backed collections (node.go's IntraZone/
// CrossZone) over set types.
func extractEntrances(reg []*Level0Node) []*Entrance {
	type pairKey struct{ a, b int32 }
	candidates := make(map[pairKey][]int32)
	seen := make(map[pairKey]map[int32]bool)

	for _, n := range reg {
		for _, m := range n.CrossZone {
			if n.Index >= m {
				continue // visit each cross-zone edge once
			}
			other := reg[m]
			a, b := zonePair(n.ZoneID, other.ZoneID)
			key := pairKey{a, b}
			if seen[key] == nil {
				seen[key] = make(map[int32]bool)
			}
			if !seen[key][n.Index] {
				seen[key][n.Index] = true
				candidates[key] = append(candidates[key], n.Index)
			}
			if !seen[key][other.Index] {
				seen[key][other.Index] = true
				candidates[key] = append(candidates[key], other.Index)
			}
		}
	}

	var entrances []*Entrance
	for key, members := range candidates {
		inSet := make(map[int32]bool, len(members))
		for _, m := range members {
			inSet[m] = true
		}
		visited := make(map[int32]bool, len(members))

		for _, seed := range members {
			if visited[seed] {
				continue
			}
			var comp []int32
			stack := []int32{seed}
			visited[seed] = true
			for len(stack) > 0 {
				v := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp = append(comp, v)

				expand := func(neighbors []int32) {
					for _, w := range neighbors {
						if !inSet[w] || visited[w] {
							continue
						}
						visited[w] = true
						stack = append(stack, w)
					}
				}
				expand(reg[v].IntraZone)
				expand(reg[v].CrossZone)
			}

			assertConnected(reg, comp)

			clearance := reg[comp[0]].Clearance
			for _, idx := range comp[1:] {
				if reg[idx].Clearance < clearance {
					clearance = reg[idx].Clearance
				}
			}

			entrances = append(entrances, &Entrance{
				ZoneA:     key.a,
				ZoneB:     key.b,
				Members:   comp,
				Clearance: clearance,
			})
		}
	}

	for i, e := range entrances {
		e.Index = int32(i)
	}
	return entrances
}

// assertConnected verifies (debug builds only) that comp is connected
// under the union of intra- and cross-zone edges restricted to comp
// itself — the invariant spec.md §4.5 requires the caller to check.
func assertConnected(reg []*Level0Node, comp []int32) {
	if len(comp) <= 1 {
		return
	}
	inComp := make(map[int32]bool, len(comp))
	for _, idx := range comp {
		inComp[idx] = true
	}
	visited := make(map[int32]bool, len(comp))
	stack := []int32{comp[0]}
	visited[comp[0]] = true
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, neighbors := range [][]int32{reg[v].IntraZone, reg[v].CrossZone} {
			for _, w := range neighbors {
				if !inComp[w] || visited[w] {
					continue
				}
				visited[w] = true
				stack = append(stack, w)
			}
		}
	}
	assert.True(len(visited) == len(comp), "extractEntrances: produced a disconnected component of size %d (reached %d)", len(comp), len(visited))
}
