package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulateConvexQuad(t *testing.T) {
	quad := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	verts, indices, err := TriangulateOuter(quad, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, quad, verts)
	require.Len(t, indices, 6) // two triangles
	assert.Zero(t, len(indices)%3)
	for _, idx := range indices {
		assert.Less(t, idx, len(verts))
		assert.GreaterOrEqual(t, idx, 0)
	}
}

func TestTriangulateHexagonProducesFourTriangles(t *testing.T) {
	hexagon := []Vec2{
		{2, 0}, {4, 0}, {6, 3}, {4, 6}, {2, 6}, {0, 3},
	}
	_, indices, err := TriangulateOuter(hexagon, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 4*3, len(indices))
}

func TestTriangulateBridgesHoleAndRejectsItsTriangles(t *testing.T) {
	outer := square(0, 0, 10, 10)
	hole := square(3, 3, 7, 7)
	verts, indices, err := TriangulateOuter(outer, [][]Vec2{hole}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, indices)
	assert.Zero(t, len(indices)%3)
	// The combined vertex buffer carries both the outer and hole corners,
	// since accepted "frame" triangles reference both.
	assert.Len(t, verts, len(outer)+len(hole))
	for i := 0; i < len(indices); i += 3 {
		a, b, c := verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]]
		cen := Vec2{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
		assert.False(t, pointInPolygon(cen, hole))
	}
}

func TestTriangulateColinearRingYieldsNoTriangles(t *testing.T) {
	// All three points colinear: no positive-area ear ever exists, so the
	// least-significant-vertex fallback shrinks the ring below three
	// vertices without ever emitting a triangle.
	line := []Vec2{{0, 0}, {1, 0}, {2, 0}}
	_, indices, err := TriangulateOuter(line, nil, 3)
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestTriangulateFewerThanThreePointsYieldsNoTriangles(t *testing.T) {
	_, indices, err := TriangulateOuter([]Vec2{{0, 0}, {1, 1}}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, indices)
}
