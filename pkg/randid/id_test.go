package randid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	for _, n := range []int{0, 1, 8, 32} {
		id := Generate(n)
		assert.Len(t, id, n)
		assert.Empty(t, strings.Trim(id, chars), "only alphanumeric characters")
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		assert.Len(t, id, DefaultLength)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
