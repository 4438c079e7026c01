package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	var w Wishlist

	assert.True(t, w.Toggle(3))
	assert.True(t, w.Toggle(1))
	assert.True(t, w.Contains(3))
	assert.False(t, w.Toggle(3))
	assert.False(t, w.Contains(3))
	assert.True(t, w.Toggle(3))
	assert.Equal(t, []int{1, 3}, w.IDs)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []int{4, 2}, Normalize([]int{4, 0, 2, 4, -1}))
	assert.Empty(t, Normalize(nil))
}
