package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererTables(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTML("| Ticket | Status |\n|---|---|\n| PM: M-001 | Open |\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>PM: M-001</td>")
}

func TestRendererStripsScripts(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTML("Belt slipped <script>alert(1)</script> again")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Belt slipped")
}
