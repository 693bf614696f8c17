// +build debug

package cavemesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDebugInvariants exists to give the assertgo-backed invariant
// checks scattered through zone.go, entrance.go and node.go (no
// self-loops, neighbour-only distance lookups, entrance connectivity,
// non-empty centroid inputs) at least one real execution, since assert.True is a build-tag
// no-op everywhere else (see vendor/.../assertgo/noassert.go). Run with:
//
//	go test -tags debug ./...
//
// A failed invariant panics rather than returning an error, so this
// test's only job is to exercise enough construction and query paths
// for every assert.True call site to run; it would abort the test
// binary on violation rather than reporting a normal failure.
func TestDebugInvariants(t *testing.T) {
	// A two-zone, one-entrance graph exercises buildGraph's intra/cross
	// classification (self-loop checks), extractEntrances' connectivity
	// assertion, and buildLevel1's centroid computation in one pass.
	adapter, heights := twoChainFixture()
	nm, err := New(adapter, SliceClearance(heights), noSmoothOptions())
	assert.NoError(t, err)

	// A full hierarchical query walks distTo on both levels (level-0
	// inside each zone, level-1 across the entrance), exercising every
	// "is this actually a neighbour" assertion along the way.
	_, _, err = nm.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 9}, QueryOptions{})
	assert.NoError(t, err)

	// A single-zone grid covers addIntraNeighbor's self-loop checks over
	// a denser adjacency than the two-chain fixture's straight lines.
	grid := gridAdapter(3)
	nm2, err := New(grid, ConstantClearance{N: 9, Value: 2.0}, noSmoothOptions())
	assert.NoError(t, err)
	_, _, err = nm2.FindFullPath(NodeRef{Index: 0}, NodeRef{Index: 8}, QueryOptions{})
	assert.NoError(t, err)
}
