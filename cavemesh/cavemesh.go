package cavemesh

import "github.com/arl/gogeo/f32/d3"

// NodeRef identifies a level-0 node returned by FindClosestNode or
// supplied by a caller that already knows a vertex index (spec.md §6).
type NodeRef struct {
	Index int32
}

// HighLevelPath is a sequence of level-1 nodes (zone and entrance
// centroids, alternating); it is empty when start and end share a zone.
type HighLevelPath []PathNode

// LowLevelPath is a sequence of level-0 nodes plus, optionally, one
// trailing synthetic node produced by end-position refinement (§4.8).
type LowLevelPath []PathNode

// NavMesh is the query-time facade over a built hierarchical navigation
// graph: the level-0/level-1 registries, the zone/entrance decomposition
// and the spatial index, wired together the way detour.NavMesh wires its
// tile/poly registries to detour.NavMeshQuery (see detour/mesh.go,
// detour/query.go).
type NavMesh struct {
	g     *graph
	index *spatialIndex
	pool0 *searchPool
	pool1 *searchPool
}

// New runs the full build pipeline (spec.md §4.1-§4.9) over adapter and
// clearances and returns a query-ready NavMesh.
func New(adapter MeshAdapter, clearances ClearanceProvider, opts BuildOptions) (*NavMesh, error) {
	opts = opts.withDefaults()

	verts, err := adapter.Vertices()
	if err != nil {
		return nil, err
	}
	for i, v := range verts {
		if v.Index != uint32(i) {
			return nil, invalidInput("mesh adapter returned vertex %d out of stable order (got index %d)", i, v.Index)
		}
	}

	heights, err := clearances.Heights()
	if err != nil {
		return nil, err
	}
	if len(heights) != len(verts) {
		return nil, invalidInput("clearance count %d does not match vertex count %d", len(heights), len(verts))
	}
	for _, h := range heights {
		if h < 0 {
			return nil, invalidInput("negative clearance value %v", h)
		}
	}

	positions := make([]d3.Vec3, len(verts))
	for i, v := range verts {
		positions[i] = v.Pos
	}
	heights = smoothClearances(positions, heights, opts.SmoothRadius)

	zoneIDs, zoneClearance := partitionZones(positions, vertexAdjacency(verts), heights, opts)

	g, err := buildGraph(verts, heights, zoneIDs, zoneClearance)
	if err != nil {
		return nil, err
	}

	return &NavMesh{
		g:     g,
		index: buildSpatialIndex(g.level0),
		pool0: newSearchPool(len(g.level0)),
		pool1: newSearchPool(len(g.level1)),
	}, nil
}

func vertexAdjacency(verts []MeshVertex) [][]uint32 {
	adj := make([][]uint32, len(verts))
	for i, v := range verts {
		adj[i] = v.Neighbors
	}
	return adj
}

// Stats summarizes the size of a built navmesh, for the `cavemesh info`
// CLI command.
type Stats struct {
	Level0Nodes int
	Zones       int
	Entrances   int
	Level1Nodes int
}

// Stats returns summary counts for m.
func (m *NavMesh) Stats() Stats {
	return Stats{
		Level0Nodes: len(m.g.level0),
		Zones:       len(m.g.zones),
		Entrances:   len(m.g.entrances),
		Level1Nodes: len(m.g.level1),
	}
}

// FindClosestNode implements find_closest_node (spec.md §6): the nearest
// level-0 vertex to pos under the spatial index.
func (m *NavMesh) FindClosestNode(pos d3.Vec3) (NodeRef, error) {
	idx, ok := m.index.nearest(pos)
	if !ok {
		return NodeRef{}, unreachable("empty navmesh")
	}
	return NodeRef{Index: idx}, nil
}

// QueryOptions configures a path query's A* options (spec.md §4.6's
// option table, minus final_target_node, which the driver does not set).
type QueryOptions struct {
	Avoid      []NodeRef
	MinHeight  float32
	InitialDir d3.Vec3
	// EndPos, if HasEndPos, triggers end-position refinement (§4.8) on
	// the final low-level segment.
	EndPos    d3.Vec3
	HasEndPos bool

	// ReturnDebugInfo, per spec.md §4.6, asks each underlying A* call to
	// snapshot its open/closed sets; retrieve them via
	// PathIterator.DebugInfo after each Next.
	ReturnDebugInfo bool
}

func (o QueryOptions) toSearchOptions() searchOptions {
	avoid := make(map[int32]bool, len(o.Avoid))
	for _, r := range o.Avoid {
		avoid[r.Index] = true
	}
	return searchOptions{
		Avoid:           avoid,
		MinHeight:       o.MinHeight,
		InitialDir:      o.InitialDir,
		ReturnDebugInfo: o.ReturnDebugInfo,
	}
}

// FindFullPath implements the batch surface of find_full_path (spec.md
// §4.7): it drains the stepwise driver and concatenates its segments.
func (m *NavMesh) FindFullPath(start, end NodeRef, opts QueryOptions) (HighLevelPath, LowLevelPath, error) {
	it := newPathIterator(m, start, end, opts)

	var high HighLevelPath
	var low LowLevelPath
	for it.Next() {
		h, l := it.Segment()
		high = append(high, h...)
		low = append(low, l...)
	}
	if it.Err() != nil {
		return nil, nil, it.Err()
	}
	return high, low, nil
}

// FindPathSections implements the stepwise surface of find_path_sections
// (spec.md §4.7/§6): callers drive the returned iterator one zone
// segment at a time.
func (m *NavMesh) FindPathSections(start, end NodeRef, opts QueryOptions) *PathIterator {
	return newPathIterator(m, start, end, opts)
}

// FindRandomPath implements find_random_path (spec.md §6): uniform
// random start and end vertices, for test harnesses that want
// reasonably-shaped but not hand-authored paths. It is not itself a
// source of determinism; callers that need reproducibility should pick
// start/end themselves and call FindFullPath.
func (m *NavMesh) FindRandomPath(randIndex func(n int) int, opts QueryOptions) (HighLevelPath, LowLevelPath, error) {
	n := len(m.g.level0)
	if n == 0 {
		return nil, nil, unreachable("empty navmesh")
	}
	start := NodeRef{Index: int32(randIndex(n))}
	end := NodeRef{Index: int32(randIndex(n))}
	return m.FindFullPath(start, end, opts)
}
