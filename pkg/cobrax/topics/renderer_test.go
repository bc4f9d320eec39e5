package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title", r.Render("# Title", ".md"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 60}

	t.Run("non markdown passes through", func(t *testing.T) {
		assert.Equal(t, "plain *text*", r.Render("plain *text*", ".txt"))
	})

	t.Run("markdown is rendered", func(t *testing.T) {
		in := "# Title\n\nSome **bold** words."
		out := r.Render(in, ".md")
		assert.NotEqual(t, in, out)
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "bold")
	})
}
