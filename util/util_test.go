package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivAndMod(t *testing.T) {
	cases := []struct {
		a, b, div, mod int
	}{
		{7, 12, 0, 7},
		{12, 12, 1, 0},
		{-1, 12, -1, 11},
		{-12, 12, -1, 0},
		{-13, 12, -2, 11},
		{57, 12, 4, 9},
	}

	assert := assert.New(t)
	for _, c := range cases {
		assert.Equal(c.div, FloorDiv(c.a, c.b), "FloorDiv(%d, %d)", c.a, c.b)
		assert.Equal(c.mod, Mod(c.a, c.b), "Mod(%d, %d)", c.a, c.b)
		assert.Equal(c.a, c.div*c.b+c.mod)
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, Dedupe([]int{3, 1, 3, 2, 1}))
	assert.Nil(t, Dedupe([]string{}))
}

func TestGetKeysSorted(t *testing.T) {
	m := map[string]int{"b": 1, "c": 2, "a": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetKeysSorted(m))
}
