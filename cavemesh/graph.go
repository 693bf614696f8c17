package cavemesh

import "github.com/arl/gogeo/f32/d3"

// graph holds everything the build pipeline produces from a raw mesh:
// the level-0 registry, the zones and entrances derived from it, and the
// level-1 registry stitched on top. NavMesh embeds this directly once
// construction succeeds.
type graph struct {
	level0    []*Level0Node
	zones     []*Zone
	entrances []*Entrance
	level1    []*Level1Node
}

// buildGraph runs the Graph Builder (spec.md §4.4) followed by the
// Entrance Extractor (§4.5) and the level-1 stitching described in §3
// ("Graph (level 1)"). verts must be in stable index order
// (verts[i].Index == uint32(i)); heights and zoneIDs are parallel arrays
// over the same index space.
func buildGraph(verts []MeshVertex, heights []float32, zoneIDs []int32, zoneClearance []float32) (*graph, error) {
	n := len(verts)
	reg := make([]*Level0Node, n)
	for i, v := range verts {
		reg[i] = newLevel0Node(int32(i), v.Pos, v.Normal, zoneIDs[i], heights[i])
	}

	// 4.4: classify each mesh edge as intra- or cross-zone. Each
	// undirected edge is visited from its lower-indexed endpoint to
	// avoid inserting it twice.
	for i, v := range verts {
		for _, ju := range v.Neighbors {
			j := int32(ju)
			if int32(i) >= j {
				continue
			}
			if zoneIDs[i] == zoneIDs[j] {
				addIntraNeighbor(reg, int32(i), j)
			} else {
				addCrossNeighbor(reg, int32(i), j)
			}
		}
	}

	nZones := 0
	for _, z := range zoneIDs {
		if int(z)+1 > nZones {
			nZones = int(z) + 1
		}
	}
	zones := make([]*Zone, nZones)
	for i := range zones {
		zones[i] = newZone(int32(i), zoneClearance[i])
	}
	for i, n := range reg {
		z := zones[n.ZoneID]
		z.Members = append(z.Members, int32(i))
	}
	for _, z := range zones {
		if len(z.Members) == 0 {
			continue
		}
		z.centroid = centroidOfNodes(reg, z.Members)
		z.normal = normalOfNodes(reg, z.Members)
		z.hasCentroid = true
	}

	entrances := extractEntrances(reg)

	g := &graph{level0: reg, zones: zones, entrances: entrances}
	g.buildLevel1()
	return g, nil
}

// buildLevel1 allocates one level-1 node per non-empty zone and one per
// entrance, then links every entrance node to the two zone nodes it
// joins. Per spec.md §3's invariant, the resulting graph is bipartite:
// zone nodes only ever neighbour entrance nodes and vice-versa.
func (g *graph) buildLevel1() {
	var nextIdx int32

	for _, z := range g.zones {
		if !z.hasCentroid {
			z.Node = -1
			continue
		}
		node := newLevel1Node(nextIdx, z.centroid, z.normal, z.Clearance, ZoneCentroid)
		node.ZoneID = z.ID
		g.level1 = append(g.level1, node)
		z.Node = nextIdx
		nextIdx++
	}

	for _, e := range g.entrances {
		centroid := centroidOfNodes(g.level0, e.Members)
		normal := normalOfNodes(g.level0, e.Members)
		node := newLevel1Node(nextIdx, centroid, normal, e.Clearance, EntranceCentroid)
		node.EntranceIdx = e.Index
		g.level1 = append(g.level1, node)
		e.Node = nextIdx
		nextIdx++

		zoneANode := g.zones[e.ZoneA].Node
		zoneBNode := g.zones[e.ZoneB].Node
		addLevel1Edge(g.level1, e.Node, zoneANode)
		addLevel1Edge(g.level1, e.Node, zoneBNode)

		g.zones[e.ZoneA].addEntrance(e.ZoneB, e.Index)
		g.zones[e.ZoneB].addEntrance(e.ZoneA, e.Index)
	}
}

// zoneOf is a small convenience used by the driver to go from a level-0
// node to its owning zone.
func (g *graph) zoneOf(level0Idx int32) *Zone {
	return g.zones[g.level0[level0Idx].ZoneID]
}

// centroidPos is a helper for callers that only need a position, not a
// full Level1Node (e.g. heuristics during level-1 search before the
// level-1 node slice is known to be populated for a given zone).
func (g *graph) centroidPos(level1Idx int32) d3.Vec3 {
	return g.level1[level1Idx].Pos
}
