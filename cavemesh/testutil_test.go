package cavemesh

import "github.com/arl/gogeo/f32/d3"

// sliceMeshAdapter is a MeshAdapter over verts built directly in test
// code, mirroring the plain in-memory fixtures the teacher's own
// detour tests construct by hand (see path_test.go's literal polygon
// tables) rather than loading real geometry from disk.
type sliceMeshAdapter struct {
	verts []MeshVertex
}

func (s sliceMeshAdapter) Vertices() ([]MeshVertex, error) {
	return s.verts, nil
}

// chainAdapter builds a straight line of n vertices at x = 0..n-1 on
// y=z=0, each linked to its immediate neighbours.
func chainAdapter(n int) sliceMeshAdapter {
	verts := make([]MeshVertex, n)
	for i := 0; i < n; i++ {
		var neighbors []uint32
		if i > 0 {
			neighbors = append(neighbors, uint32(i-1))
		}
		if i < n-1 {
			neighbors = append(neighbors, uint32(i+1))
		}
		verts[i] = MeshVertex{
			Index:     uint32(i),
			Pos:       d3.NewVec3XYZ(float32(i), 0, 0),
			Normal:    d3.NewVec3XYZ(0, 0, 1),
			Neighbors: neighbors,
		}
	}
	return sliceMeshAdapter{verts: verts}
}

// gridAdapter builds an n x n grid of vertices on z=0, 4-connected.
func gridAdapter(n int) sliceMeshAdapter {
	idx := func(x, y int) uint32 { return uint32(y*n + x) }
	verts := make([]MeshVertex, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			var neighbors []uint32
			if x > 0 {
				neighbors = append(neighbors, idx(x-1, y))
			}
			if x < n-1 {
				neighbors = append(neighbors, idx(x+1, y))
			}
			if y > 0 {
				neighbors = append(neighbors, idx(x, y-1))
			}
			if y < n-1 {
				neighbors = append(neighbors, idx(x, y+1))
			}
			verts[idx(x, y)] = MeshVertex{
				Index:     idx(x, y),
				Pos:       d3.NewVec3XYZ(float32(x), float32(y), 0),
				Normal:    d3.NewVec3XYZ(0, 0, 1),
				Neighbors: neighbors,
			}
		}
	}
	return sliceMeshAdapter{verts: verts}
}

// noSmoothOptions returns BuildOptions with smoothing disabled, so test
// fixtures' hand-picked clearance values survive unmodified.
func noSmoothOptions() BuildOptions {
	o := DefaultBuildOptions()
	o.SmoothRadius = 0
	return o
}
