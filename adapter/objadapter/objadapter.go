// Package objadapter implements cavemesh.MeshAdapter by loading a
// Wavefront OBJ file through github.com/arl/gobj, the same parser the
// teacher's recast/meshloaderobj.go wraps as MeshLoaderObj.Load.
package objadapter

import (
	"sort"

	"github.com/arl/gobj"
	"github.com/arl/gogeo/f32/d3"

	"github.com/arl/go-cavemesh/cavemesh"
)

// Adapter loads vertex positions, per-vertex normals (averaged from
// adjacent face normals) and per-vertex edges from an OBJ file. Reading
// the same file twice (two Load calls, or one Adapter with Vertices
// called twice) yields identical data, satisfying the MeshAdapter
// idempotence requirement, since Load simply re-parses the file.
type Adapter struct {
	path  string
	scale float32
}

// New returns an Adapter for the OBJ file at path. scale multiplies
// every parsed position, mirroring MeshLoaderObj's m_scale field; pass 1
// for no scaling.
func New(path string, scale float32) *Adapter {
	return &Adapter{path: path, scale: scale}
}

// Vertices implements cavemesh.MeshAdapter.
func (a *Adapter) Vertices() ([]cavemesh.MeshVertex, error) {
	obj, err := gobj.Load(a.path)
	if err != nil {
		return nil, err
	}

	verts := obj.Verts()
	n := len(verts)
	out := make([]cavemesh.MeshVertex, n)
	for i, v := range verts {
		out[i] = cavemesh.MeshVertex{
			Index: uint32(i),
			Pos:   d3.NewVec3XYZ(float32(v.X())*a.scale, float32(v.Y())*a.scale, float32(v.Z())*a.scale),
		}
	}

	// gobj resolves face vertex references into copies of the Vertex
	// value rather than indices (see gobj's parseFace); recover the
	// index of each polygon vertex by value, exactly as it was produced
	// by the same parse, so no floating-point tolerance is needed.
	index := make(map[gobj.Vertex]int, n)
	for i, v := range verts {
		index[v] = i
	}

	neighborSets := make([]map[int]bool, n)
	normalSums := make([]d3.Vec3, n)
	for i := range normalSums {
		normalSums[i] = d3.NewVec3()
	}

	addEdge := func(a, b int) {
		if neighborSets[a] == nil {
			neighborSets[a] = make(map[int]bool)
		}
		neighborSets[a][b] = true
	}

	for _, p := range obj.Polys() {
		if len(p) < 3 {
			continue
		}
		ia := index[p[0]]
		faceNormal := triNormal(out[ia].Pos, vertPos(out, index, p[1]), vertPos(out, index, p[2]))

		// fan triangulation from vertex 0, matching
		// recast/meshloaderobj.go's Load.
		for i := 2; i < len(p); i++ {
			ib := index[p[i-1]]
			ic := index[p[i]]

			addEdge(ia, ib)
			addEdge(ib, ia)
			addEdge(ib, ic)
			addEdge(ic, ib)
			addEdge(ic, ia)
			addEdge(ia, ic)

			normalSums[ia] = normalSums[ia].Add(faceNormal)
			normalSums[ib] = normalSums[ib].Add(faceNormal)
			normalSums[ic] = normalSums[ic].Add(faceNormal)
		}
	}

	for i := range out {
		for j := range neighborSets[i] {
			out[i].Neighbors = append(out[i].Neighbors, uint32(j))
		}
		// map iteration order is random; sort so repeated reads agree.
		nb := out[i].Neighbors
		sort.Slice(nb, func(x, y int) bool { return nb[x] < nb[y] })
		if normalSums[i].Len() > 1e-6 {
			normalSums[i].Normalize()
			out[i].Normal = normalSums[i]
		} else {
			out[i].Normal = d3.NewVec3XYZ(0, 0, 1)
		}
	}

	return out, nil
}

func vertPos(out []cavemesh.MeshVertex, index map[gobj.Vertex]int, v gobj.Vertex) d3.Vec3 {
	return out[index[v]].Pos
}

// triNormal computes the unit normal of the triangle (a, b, c), matching
// the cross-product normal calculation in recast/meshloaderobj.go's Load
// (there done per-triangle against the raw float buffer; here against
// d3.Vec3 positions since the rest of the adapter already works in that
// type).
func triNormal(a, b, c d3.Vec3) d3.Vec3 {
	e0 := b.Sub(a)
	e1 := c.Sub(a)
	n := e0.Cross(e1)
	if n.Len() > 1e-6 {
		n.Normalize()
	}
	return n
}
