package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) []Vec2 {
	return []Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestClassifySingleOuterRing(t *testing.T) {
	rings := [][]Vec2{square(0, 0, 10, 10)}
	infos, err := Classify(rings, 0)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, -1, infos[0].Parent)
	assert.Equal(t, 0, infos[0].Depth)
	assert.False(t, infos[0].IsHole)
}

func TestClassifyOuterWithHole(t *testing.T) {
	outer := square(0, 0, 10, 10)
	hole := square(3, 3, 7, 7)
	infos, err := Classify([][]Vec2{outer, hole}, 0)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, -1, infos[0].Parent)
	assert.False(t, infos[0].IsHole)

	assert.Equal(t, 0, infos[1].Parent)
	assert.True(t, infos[1].IsHole)
	assert.Equal(t, 1, infos[1].Depth)
}

func TestClassifyNestedIslandInsideHole(t *testing.T) {
	outer := square(0, 0, 20, 20)
	hole := square(4, 4, 16, 16)
	island := square(7, 7, 13, 13)
	infos, err := Classify([][]Vec2{outer, hole, island}, 0)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, -1, infos[0].Parent)
	assert.False(t, infos[0].IsHole)

	assert.Equal(t, 0, infos[1].Parent)
	assert.True(t, infos[1].IsHole)

	assert.Equal(t, 1, infos[2].Parent)
	assert.Equal(t, 2, infos[2].Depth)
	assert.False(t, infos[2].IsHole)
}
