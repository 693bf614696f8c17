package cavemesh

import (
	"github.com/arl/assertgo"
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// Zone is a maximal connected set of level-0 nodes sharing a clearance
// bucket within a bounded surface radius of a seed vertex (spec.md §3).
type Zone struct {
	ID        int32
	Members   []int32 // level-0 node indices
	Clearance float32 // clearance floor: bucket_base(seed_bucket)

	centroid    d3.Vec3
	normal      d3.Vec3
	hasCentroid bool

	// Node is the level-1 zone-centroid node, set once the graph
	// builder has allocated it.
	Node int32

	// entrances maps another zone id to the entrances joining this zone
	// to it.
	entrances map[int32][]int32 // otherZoneID -> entrance indices (into NavMesh.entrances)
}

func newZone(id int32, clearance float32) *Zone {
	return &Zone{
		ID:        id,
		Clearance: clearance,
		entrances: make(map[int32][]int32),
	}
}

func (z *Zone) addEntrance(otherZoneID, entranceIdx int32) {
	z.entrances[otherZoneID] = append(z.entrances[otherZoneID], entranceIdx)
}

// centroidOfNodes computes the mean position of a zone's or entrance's
// member nodes. It does not cache the result; callers store it.
func centroidOfNodes(reg []*Level0Node, members []int32) d3.Vec3 {
	assert.True(len(members) > 0, "centroidOfNodes: empty member list")
	sum := d3.NewVec3()
	for _, idx := range members {
		sum = sum.Add(reg[idx].Pos)
	}
	return sum.Scale(1.0 / float32(len(members)))
}

// normalOfNodes averages (and re-normalizes) the surface normal of a
// zone or entrance's member nodes, giving level-1 nodes a meaningful
// Normal even though they have no vertex of their own.
func normalOfNodes(reg []*Level0Node, members []int32) d3.Vec3 {
	sum := d3.NewVec3()
	for _, idx := range members {
		sum = sum.Add(reg[idx].Normal)
	}
	if sum.Len() <= lenEpsilon {
		return upVec()
	}
	sum.Normalize()
	return sum
}

// bucket quantizes a clearance value per spec.md §4.3:
// bucket(h) = floor(min(h, H_MAX) / S).
func bucket(h, bucketCap, bucketSize float32) int32 {
	capped := math32.Min(h, bucketCap)
	return int32(math32.Floor(capped / bucketSize))
}

// bucketBase returns the clearance floor represented by a bucket index:
// bucket_base(b) = b * S.
func bucketBase(b int32, bucketSize float32) float32 {
	return float32(b) * bucketSize
}

// smoothClearances implements spec.md §4.2's optional smoothing pass:
// each vertex's clearance is replaced by the minimum clearance among
// vertices within radius r (surface-agnostic, via the k-d tree), itself
// included. r <= 0 disables smoothing and returns heights unchanged.
// Repeated application with the same r is not idempotent in general: a
// neighbour's smoothed value already carries minima from up to r beyond
// it, so a second pass can lower a value further.
func smoothClearances(positions []d3.Vec3, heights []float32, r float32) []float32 {
	if r <= 0 {
		return heights
	}
	idx := buildPositionIndex(positions)
	out := make([]float32, len(heights))
	for i, pos := range positions {
		min := heights[i]
		for _, j := range idx.ball(pos, r) {
			if heights[j] < min {
				min = heights[j]
			}
		}
		out[i] = min
	}
	return out
}

// partitionZones runs the connected-components-with-dual-predicate
// algorithm of spec.md §4.3 over the level-0 registry, whose IntraZone/
// CrossZone fields are not yet populated (they depend on the zone ids
// this function is about to compute). It consumes the raw per-vertex
// adjacency from the mesh adapter directly.
//
// Grounded on original_source/nav_mesh/size_clustering.py's
// split_zones_by_height: a seed-then-BFS sweep where the radius check is
// always against the *seed* position, not the current BFS frontier —
// this bounds zone diameter but can produce elongated zones depending on
// traversal order (spec.md §9, Open Questions; preserved as-is, not
// "fixed", since the spec explicitly declines to guess the original
// author's intent).
func partitionZones(positions []d3.Vec3, adjacency [][]uint32, heights []float32, opts BuildOptions) (zoneIDs []int32, zoneClearance []float32) {
	n := len(positions)
	zoneIDs = make([]int32, n)
	for i := range zoneIDs {
		zoneIDs[i] = -1
	}

	radius2 := opts.ZoneRadius * opts.ZoneRadius
	var nextZone int32
	var floors []float32

	visited := make([]bool, n)
	var frontier []int

	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		seedBucket := bucket(heights[seed], opts.BucketCap, opts.BucketSize)
		seedPos := positions[seed]

		frontier = frontier[:0]
		frontier = append(frontier, seed)
		visited[seed] = true

		for len(frontier) > 0 {
			v := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]

			zoneIDs[v] = nextZone

			for _, wU := range adjacency[v] {
				w := int(wU)
				if visited[w] {
					continue
				}
				if bucket(heights[w], opts.BucketCap, opts.BucketSize) != seedBucket {
					continue
				}
				if positions[w].DistSqr(seedPos) > radius2 {
					continue
				}
				visited[w] = true
				frontier = append(frontier, w)
			}
		}

		floors = append(floors, bucketBase(seedBucket, opts.BucketSize))
		nextZone++
	}

	zoneClearance = floors
	return zoneIDs, zoneClearance
}
