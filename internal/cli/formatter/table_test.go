package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_PadsColumns(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"long", "x"}, {"s"}}))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	assert.Equal(t, []string{
		"A     BB",
		"────  ──",
		"long  x",
		"s     ",
	}, lines)
}

func TestRenderTable_AlignRight(t *testing.T) {
	got := stripANSI(RenderTable([]string{"NAME", "N"}, [][]string{{"a", "7"}, {"b", "12"}}, AlignRight(1)))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	assert.Equal(t, " N", lines[0][len(lines[0])-2:])
	assert.Equal(t, "a      7", lines[2])
	assert.Equal(t, "b     12", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
