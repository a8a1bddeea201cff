package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	t.Run("removes duplicates and blanks", func(t *testing.T) {
		got := DedupeAndTrim([]string{"  composer ", "lyricist", "composer", "", "  "})
		assert.Equal(t, []string{"composer", "lyricist"}, got)
	})

	t.Run("preserves first-seen order", func(t *testing.T) {
		got := DedupeAndTrim([]string{"b", "a", "b", "c", "a"})
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, DedupeAndTrim(nil))
		assert.Empty(t, DedupeAndTrim([]string{}))
	})

	t.Run("trimmed values collapse", func(t *testing.T) {
		got := DedupeAndTrim([]string{" producer", "producer "})
		assert.Equal(t, []string{"producer"}, got)
	})
}
