package cavemesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
	"github.com/stretchr/testify/assert"
)

// Scenario 2 (spec.md §8): two zones, one entrance.
func TestFindFullPathTwoZonesOneEntrance(t *testing.T) {
	adapter, heights := twoChainFixture()

	nm, err := New(adapter, SliceClearance(heights), noSmoothOptions())
	assert.NoError(t, err)
	assert.Len(t, nm.g.zones, 2)
	assert.Len(t, nm.g.entrances, 1)

	high, low, err := nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 9}, QueryOptions{})
	assert.NoError(t, err)
	assert.Len(t, high, 3, "zone, entrance, zone")
	assert.Equal(t, int8(1), high[0].Level)
	assert.Equal(t, int8(1), high[1].Level)
	assert.Equal(t, int8(1), high[2].Level)

	assert.Len(t, low, 10)
	// the cross-zone edge (index 4 -> index 5) must appear consecutively.
	foundCrossing := false
	for i := 1; i < len(low); i++ {
		if low[i-1].Index == 4 && low[i].Index == 5 {
			foundCrossing = true
		}
	}
	assert.True(t, foundCrossing)
}

func twoChainFixture() (sliceMeshAdapter, []float32) {
	const n = 10
	verts := make([]MeshVertex, n)
	heights := make([]float32, n)
	for i := 0; i < n; i++ {
		var neighbors []uint32
		if i > 0 && i != 5 {
			neighbors = append(neighbors, uint32(i-1))
		}
		if i < n-1 && i != 4 {
			neighbors = append(neighbors, uint32(i+1))
		}
		verts[i] = MeshVertex{
			Index:     uint32(i),
			Pos:       d3.NewVec3XYZ(float32(i), 0, 0),
			Normal:    d3.NewVec3XYZ(0, 0, 1),
			Neighbors: neighbors,
		}
		if i < 5 {
			heights[i] = 2.0 // bucket(2.0) == 4
		} else {
			heights[i] = 6.0 // bucket(6.0) == 12, different zone
		}
	}
	// the single cross-zone edge joining the two chains.
	verts[4].Neighbors = append(verts[4].Neighbors, 5)
	verts[5].Neighbors = append(verts[5].Neighbors, 4)
	return sliceMeshAdapter{verts: verts}, heights
}

// Scenario 3 (spec.md §8): clearance filter.
func TestFindFullPathClearanceFilter(t *testing.T) {
	adapter := chainAdapter(5)
	heights := []float32{2, 2, 0.5, 2, 2}

	nm, err := New(adapter, SliceClearance(heights), noSmoothOptions())
	assert.NoError(t, err)

	_, _, err = nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 4}, QueryOptions{MinHeight: 1.0})
	assert.Error(t, err, "the cut vertex must be excluded, leaving no path")

	// with a bypass around the low-clearance vertex, the path succeeds.
	bypassed := chainAdapter(5)
	bypassed.verts[1].Neighbors = append(bypassed.verts[1].Neighbors, 3)
	bypassed.verts[3].Neighbors = append(bypassed.verts[3].Neighbors, 1)

	nm2, err := New(bypassed, SliceClearance(heights), noSmoothOptions())
	assert.NoError(t, err)

	_, low, err := nm2.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 4}, QueryOptions{MinHeight: 1.0})
	assert.NoError(t, err)
	for _, n := range low {
		assert.NotEqual(t, int32(2), n.Index, "must bypass the low-clearance vertex")
	}
}

// Scenario 4 (spec.md §8): avoid-set.
func TestFindFullPathAvoidSet(t *testing.T) {
	adapter := gridAdapter(3)
	clearances := ConstantClearance{N: 9, Value: 2.0}

	nm, err := New(adapter, clearances, noSmoothOptions())
	assert.NoError(t, err)

	center := NodeRef{Index: 4} // (1,1)
	_, low, err := nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 8}, QueryOptions{Avoid: []NodeRef{center}})
	assert.NoError(t, err)
	for _, n := range low {
		assert.NotEqual(t, center.Index, n.Index)
	}
}

// Scenario 6 (spec.md §8): end-position refinement. The synthetic end
// node replaces the overshooting last vertex of the raw level-0 path.
func TestFindFullPathEndPositionRefinement(t *testing.T) {
	adapter := chainAdapter(3) // v0=(0,0,0), v1=(1,0,0), v2=(2,0,0)
	nm, err := New(adapter, ConstantClearance{N: 3, Value: 2.0}, noSmoothOptions())
	assert.NoError(t, err)

	endPos := d3.NewVec3XYZ(1.6, 0, 0)
	_, low, err := nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 2}, QueryOptions{
		EndPos:    endPos,
		HasEndPos: true,
	})
	assert.NoError(t, err)
	assert.Len(t, low, 3)

	assert.True(t, low[0].HasIndex)
	assert.Equal(t, int32(0), low[0].Index)
	assert.True(t, low[1].HasIndex)
	assert.Equal(t, int32(1), low[1].Index)

	assert.False(t, low[2].HasIndex, "the trailing node is synthetic, not the dropped v2")
	assert.InDelta(t, endPos[0], low[2].Pos[0], 1e-4)
	assert.InDelta(t, endPos[1], low[2].Pos[1], 1e-4)
	assert.InDelta(t, endPos[2], low[2].Pos[2], 1e-4)
}

func TestFindFullPathSameStartAndEnd(t *testing.T) {
	adapter := chainAdapter(3)
	nm, err := New(adapter, ConstantClearance{N: 3, Value: 2.0}, noSmoothOptions())
	assert.NoError(t, err)

	high, low, err := nm.FindFullPath(NodeRef{Index: 1}, NodeRef{Index: 1}, QueryOptions{})
	assert.NoError(t, err)
	assert.Empty(t, high)
	assert.Len(t, low, 1, "start == end is a legal, non-empty-but-trivial path")
}

func TestFindFullPathIdempotent(t *testing.T) {
	adapter := gridAdapter(3)
	nm, err := New(adapter, ConstantClearance{N: 9, Value: 2.0}, noSmoothOptions())
	assert.NoError(t, err)

	_, low1, err1 := nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 8}, QueryOptions{})
	_, low2, err2 := nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 8}, QueryOptions{})
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, low1, low2)
}

func TestFindFullPathHierarchicalConsistency(t *testing.T) {
	adapter, heights := twoChainFixture()
	nm, err := New(adapter, SliceClearance(heights), noSmoothOptions())
	assert.NoError(t, err)

	_, batchLow, err := nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 9}, QueryOptions{})
	assert.NoError(t, err)

	it := nm.FindPathSections(NodeRef{Index: 0}, NodeRef{Index: 9}, QueryOptions{})
	var stepwiseLow LowLevelPath
	for it.Next() {
		_, low := it.Segment()
		stepwiseLow = append(stepwiseLow, low...)
	}
	assert.NoError(t, it.Err())
	assert.Equal(t, batchLow, stepwiseLow)
}
