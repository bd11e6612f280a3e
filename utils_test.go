package btsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinarySearchInt(t *testing.T) {
	list := []int{1, 2, 3, 5, 6, 9}

	pos, found := binarySearchInt(list, 5)
	assert.True(t, found)
	assert.Equal(t, 3, pos)

	pos, found = binarySearchInt(list, 4)
	assert.False(t, found)
	assert.Equal(t, 3, pos)

	pos, found = binarySearchInt(list, 100)
	assert.False(t, found)
	assert.Equal(t, 6, pos)
}

func TestRandomDistinctSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	out := make([]int, 20)
	require.NoError(t, randomDistinctSorted(rng, 0, 50, 20, out))

	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1], out[i])
	}
	assert.GreaterOrEqual(t, out[0], 0)
	assert.LessOrEqual(t, out[len(out)-1], 50)

	assert.Error(t, randomDistinctSorted(rng, 0, 10, 20, out))
}

func TestCheckSolutionValidity(t *testing.T) {
	base := scenarioProblem()

	valid, _ := CheckSolutionValidity([]int{0, 1, 3, 2}, base, 6)
	assert.True(t, valid)

	valid, comment := CheckSolutionValidity([]int{0, 1, 3, 2}, base, 9)
	assert.False(t, valid)
	assert.NotEmpty(t, comment)

	valid, _ = CheckSolutionValidity([]int{0, 1, 1, 2}, base, 6)
	assert.False(t, valid)

	valid, _ = CheckSolutionValidity([]int{0, 1, 2}, base, 6)
	assert.False(t, valid)
}

func TestSanitizeJsonArrayLineBreaks(t *testing.T) {
	in := "{\n\t\"edge_weights\": [\n\t\t[\n\t\t\t0,\n\t\t\t1\n\t\t],\n\t\t[\n\t\t\t1,\n\t\t\t0\n\t\t]\n\t]\n}"
	out := SanitizeJsonArrayLineBreaks(in)
	assert.Contains(t, out, "[0,1]")
	assert.Contains(t, out, "[1,0]")
}
