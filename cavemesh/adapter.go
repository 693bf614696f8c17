package cavemesh

import "github.com/arl/gogeo/f32/d3"

// MeshVertex is one vertex as exposed by a MeshAdapter: a stable index, a
// 3D position, a (possibly zero) surface normal, and the indices of the
// other vertices linked to it by an edge. See spec.md §4.1.
type MeshVertex struct {
	Index     uint32
	Pos       d3.Vec3
	Normal    d3.Vec3
	Neighbors []uint32
}

// MeshAdapter is the external contract that turns an input surface mesh
// into the (position, normal, per-vertex edges) triple the build
// pipeline consumes. Implementations MUST be idempotent: calling
// Vertices twice must yield identical data (spec.md §4.1). Mesh
// authoring, import and visualisation live entirely on the
// implementation's side of this interface; the core never looks past
// it.
type MeshAdapter interface {
	// Vertices returns every vertex of the mesh, in stable index order
	// (Vertices()[i].Index == uint32(i)).
	Vertices() ([]MeshVertex, error)
}

// ClearanceProvider yields a per-vertex scalar "max clearance": an upper
// bound on agent height that may pass over that vertex. A value of 0
// means "impassable". How that scalar is measured (e.g. ray-casting
// against an enclosing shell) is deliberately out of scope (spec.md §1);
// the core only consumes the resulting array.
type ClearanceProvider interface {
	// Heights returns one clearance value per vertex, in the same index
	// order as the corresponding MeshAdapter's Vertices.
	Heights() ([]float32, error)
}

// ConstantClearance is the simplest possible ClearanceProvider: every
// vertex gets the same clearance. Useful for tests and for CLI users who
// have no real clearance data yet.
type ConstantClearance struct {
	N     int
	Value float32
}

// Heights implements ClearanceProvider.
func (c ConstantClearance) Heights() ([]float32, error) {
	h := make([]float32, c.N)
	for i := range h {
		h[i] = c.Value
	}
	return h, nil
}

// SliceClearance adapts a plain []float32 (e.g. parsed from a file) into
// a ClearanceProvider.
type SliceClearance []float32

// Heights implements ClearanceProvider.
func (s SliceClearance) Heights() ([]float32, error) {
	return []float32(s), nil
}
