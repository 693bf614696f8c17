package cavemesh

import (
	"github.com/arl/assertgo"
	"github.com/arl/gogeo/f32/d3"
)

// Level0Node represents one walkable mesh vertex (spec.md §3, "Node
// (level 0)"). Level0Nodes are owned exclusively by the NavMesh's
// level-0 registry; neighbour relationships are stored as indices into
// that registry, never as pointers, so the graph holds no ownership
// cycles (spec.md §9, "process-wide node registry" rearchitecture).
type Level0Node struct {
	Index     int32
	Pos       d3.Vec3
	Normal    d3.Vec3
	ZoneID    int32
	Clearance float32

	// IntraZone holds indices of neighbours sharing this node's zone id.
	IntraZone []int32
	// CrossZone holds indices of neighbours in a different zone.
	CrossZone []int32

	// dist caches the Euclidean distance to each neighbour, keyed by
	// neighbour index, computed once at edge-insertion time so
	// dist_to_neighbor is O(1) (spec.md §4.4).
	dist map[int32]float32
}

func newLevel0Node(index int32, pos, normal d3.Vec3, zoneID int32, clearance float32) *Level0Node {
	return &Level0Node{
		Index:     index,
		Pos:       pos,
		Normal:    normal,
		ZoneID:    zoneID,
		Clearance: clearance,
		dist:      make(map[int32]float32),
	}
}

// distTo returns the cached Euclidean distance from n to the neighbour
// at index other. other MUST be a neighbour of n.
func (n *Level0Node) distTo(other int32) float32 {
	d, ok := n.dist[other]
	assert.True(ok, "distTo: %d is not a neighbour of %d", other, n.Index)
	return d
}

// addIntraNeighbor links a and b symmetrically as same-zone neighbours.
func addIntraNeighbor(reg []*Level0Node, a, b int32) {
	na, nb := reg[a], reg[b]
	assert.True(a != b, "addIntraNeighbor: self-loop on %d", a)
	d := na.Pos.Dist(nb.Pos)
	if !contains32(na.IntraZone, b) {
		na.IntraZone = append(na.IntraZone, b)
		na.dist[b] = d
	}
	if !contains32(nb.IntraZone, a) {
		nb.IntraZone = append(nb.IntraZone, a)
		nb.dist[a] = d
	}
}

// addCrossNeighbor links a and b symmetrically as cross-zone neighbours.
func addCrossNeighbor(reg []*Level0Node, a, b int32) {
	na, nb := reg[a], reg[b]
	assert.True(a != b, "addCrossNeighbor: self-loop on %d", a)
	d := na.Pos.Dist(nb.Pos)
	if !contains32(na.CrossZone, b) {
		na.CrossZone = append(na.CrossZone, b)
		na.dist[b] = d
	}
	if !contains32(nb.CrossZone, a) {
		nb.CrossZone = append(nb.CrossZone, a)
		nb.dist[a] = d
	}
}

func contains32(s []int32, v int32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Level1Kind tags the two Level1Node variants. Per spec.md §9 ("level
// hierarchy with heterogeneous node variants"), this is a tagged variant
// rather than an inheritance hierarchy: both kinds share the Level1Node
// shape, and kind-specific data (ZoneID vs EntranceIdx) simply goes
// unused on the other variant.
type Level1Kind uint8

const (
	// ZoneCentroid marks a level-1 node standing for a zone's centroid.
	ZoneCentroid Level1Kind = iota
	// EntranceCentroid marks a level-1 node standing for an entrance's
	// centroid.
	EntranceCentroid
)

// Level1Node represents either a zone centroid or an entrance centroid
// (spec.md §3, "Node (level 1)").
type Level1Node struct {
	Index     int32
	Pos       d3.Vec3
	Normal    d3.Vec3 // mean normal of the member nodes it stands for
	Clearance float32
	Kind      Level1Kind

	// ZoneID is valid iff Kind == ZoneCentroid.
	ZoneID int32
	// EntranceIdx indexes into NavMesh.entrances and is valid iff
	// Kind == EntranceCentroid.
	EntranceIdx int32

	// Neighbors holds level-1 indices. A zone node's neighbours are
	// always entrance nodes and vice-versa: the level-1 graph is
	// bipartite (spec.md §3 invariant).
	Neighbors []int32

	dist map[int32]float32
}

func newLevel1Node(index int32, pos, normal d3.Vec3, clearance float32, kind Level1Kind) *Level1Node {
	return &Level1Node{
		Index:     index,
		Pos:       pos,
		Normal:    normal,
		Clearance: clearance,
		Kind:      kind,
		dist:      make(map[int32]float32),
	}
}

func (n *Level1Node) distTo(other int32) float32 {
	d, ok := n.dist[other]
	assert.True(ok, "distTo: %d is not a neighbour of %d", other, n.Index)
	return d
}

// addLevel1Edge links a and b symmetrically. Per spec.md's bipartite
// invariant, one endpoint is always a ZoneCentroid and the other an
// EntranceCentroid; the caller (graph.go) is responsible for only ever
// calling this on such pairs; only the absence of self-loops is
// asserted here.
func addLevel1Edge(reg []*Level1Node, a, b int32) {
	na, nb := reg[a], reg[b]
	assert.True(a != b, "addLevel1Edge: self-loop on %d", a)
	d := na.Pos.Dist(nb.Pos)
	if !contains32(na.Neighbors, b) {
		na.Neighbors = append(na.Neighbors, b)
		na.dist[b] = d
	}
	if !contains32(nb.Neighbors, a) {
		nb.Neighbors = append(nb.Neighbors, a)
		nb.dist[a] = d
	}
}

// PathNode is one element of a returned path: a flattened, read-only
// snapshot of either a Level0Node, a Level1Node, or a synthetic
// end-position node. Synthetic nodes have HasIndex == false and carry no
// graph identity, as required by spec.md §6 ("Synthetic end-position
// nodes are indistinguishable in shape from real nodes except that they
// have no graph identity").
type PathNode struct {
	Pos       d3.Vec3
	Normal    d3.Vec3
	Clearance float32
	Level     int8 // 0 or 1

	HasIndex bool
	Index    int32
}

func pathNodeFromLevel0(n *Level0Node) PathNode {
	return PathNode{
		Pos:       n.Pos,
		Normal:    n.Normal,
		Clearance: n.Clearance,
		Level:     0,
		HasIndex:  true,
		Index:     n.Index,
	}
}

func pathNodeFromLevel1(n *Level1Node) PathNode {
	return PathNode{
		Pos:       n.Pos,
		Normal:    n.Normal,
		Clearance: n.Clearance,
		Level:     1,
		HasIndex:  true,
		Index:     n.Index,
	}
}

func syntheticPathNode(pos, normal d3.Vec3) PathNode {
	return PathNode{
		Pos:    pos,
		Normal: normal,
		Level:  0,
	}
}
