package cavemesh

import "github.com/arl/gogeo/f32/d3"

// refineEndPosition implements spec.md §4.8: when the caller supplied a
// precise 3D end position rather than a vertex id, the raw low-level
// path is post-processed so the returned path ends exactly there instead
// of at the nearest vertex.
//
// Grounded on original_source/nav_mesh.py's PathSectionFinder, whose
// final section does the same penultimate-distance check before
// appending the caller's literal end position.
func refineEndPosition(path []PathNode, end d3.Vec3) []PathNode {
	if len(path) >= 2 {
		last := path[len(path)-1]
		penultimate := path[len(path)-2]
		if penultimate.Pos.Dist(end) < penultimate.Pos.Dist(last.Pos) {
			path = path[:len(path)-1]
		}
	}

	normal := upVec()
	if len(path) > 0 {
		normal = path[len(path)-1].Normal
	}

	return append(path, syntheticPathNode(end, normal))
}
