package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeysIsSorted(t *testing.T) {
	m := map[string]int{"V7": 1, "I": 2, "ii": 3, "IV": 4}

	assert.Equal(t, []string{"I", "IV", "V7", "ii"}, GetKeys(m))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Clamp(-3, 0, 127))
	assert.Equal(127, Clamp(200, 0, 127))
	assert.Equal(0.5, Clamp(0.5, 0.0, 1.0))
}

func TestReverseDoesNotAlias(t *testing.T) {
	in := []int{1, 2, 3}
	out := Reverse(in)

	assert := assert.New(t)
	assert.Equal([]int{3, 2, 1}, out)
	assert.Equal([]int{1, 2, 3}, in)
	assert.Equal(2, Min(2, 5))
}
