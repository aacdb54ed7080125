package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver(t *testing.T) {
	t.Run("empty request list means nothing can be missing", func(t *testing.T) {
		r := NewResolver(nil)
		r.MarkSeen("anything")

		assert.Empty(t, r.Missing())
	})

	t.Run("unmatched IDs remain missing", func(t *testing.T) {
		r := NewResolver([]string{"a", "b", "c"})
		r.MarkSeen("b")

		assert.Equal(t, []string{"a", "c"}, r.Missing())
	})

	t.Run("marking an ID twice is harmless", func(t *testing.T) {
		r := NewResolver([]string{"a"})
		r.MarkSeen("a")
		r.MarkSeen("a")

		assert.Empty(t, r.Missing())
	})

	t.Run("duplicate requests are reported once", func(t *testing.T) {
		r := NewResolver([]string{"a", "a"})

		assert.Equal(t, []string{"a"}, r.Missing())
	})
}
