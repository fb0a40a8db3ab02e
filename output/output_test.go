package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFixed16Framing(t *testing.T) {
	b := NewBuffer()
	b.SetResponseHeader(ResponseHeaderFixed16)
	b.WriteString("web;3\n")

	response := string(b.Finish())
	require.Len(t, response, 16+6)
	assert.Equal(t, "200           6\n", response[:16])
	assert.Equal(t, "web;3\n", response[16:])
}

func TestBufferOffFraming(t *testing.T) {
	b := NewBuffer()
	b.WriteString("payload")
	assert.Equal(t, "payload", string(b.Finish()))
}

func TestBufferErrorReplacesPayload(t *testing.T) {
	b := NewBuffer()
	b.WriteString("partial rows")
	b.SetError(CodeBadRequest, "while processing header '%s': boom", "Filter")
	b.SetResponseHeader(ResponseHeaderFixed16)

	response := string(b.Finish())
	assert.True(t, strings.HasPrefix(response, "400 "))
	assert.Contains(t, response, "while processing header 'Filter': boom\n")
	assert.NotContains(t, response, "partial rows")
}

func TestBufferFirstErrorWins(t *testing.T) {
	b := NewBuffer()
	b.SetError(CodeBadRequest, "first")
	b.SetError(CodeNotFound, "second")
	assert.Equal(t, CodeBadRequest, b.Code())
	assert.Equal(t, "first", b.ErrorMessage())
}

func TestRendererBrokenCSV(t *testing.T) {
	r := Renderer{Format: FormatBrokenCSV, Separators: DefaultCSVSeparators()}
	var sb strings.Builder
	err := r.Render(&sb, []string{"name", "members"}, true, [][]any{
		{"web", []string{"h1|http", "h1|https"}},
		{"db", []string{}},
	})
	require.NoError(t, err)
	assert.Equal(t, "name;members\nweb;h1|http,h1|https\ndb;\n", sb.String())
}

func TestRendererCustomSeparators(t *testing.T) {
	r := Renderer{Format: FormatBrokenCSV, Separators: CSVSeparators{
		Dataset: "\n", Field: "\t", List: " ", HostService: "!",
	}}
	var sb strings.Builder
	err := r.Render(&sb, nil, false, [][]any{{"a", int64(1)}})
	require.NoError(t, err)
	assert.Equal(t, "a\t1\n", sb.String())
}

func TestRendererCSVQuotes(t *testing.T) {
	r := Renderer{Format: FormatCSV, Separators: DefaultCSVSeparators()}
	var sb strings.Builder
	err := r.Render(&sb, nil, false, [][]any{{"with,comma", int64(2)}})
	require.NoError(t, err)
	assert.Equal(t, "\"with,comma\",2\n", sb.String())
}

func TestRendererJSON(t *testing.T) {
	r := Renderer{Format: FormatJSON, Separators: DefaultCSVSeparators()}
	var sb strings.Builder
	err := r.Render(&sb, []string{"name", "count"}, true, [][]any{
		{"web", int64(3)},
		{"db", float64(1.5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "[[\"name\",\"count\"],[\"web\",3],[\"db\",1.5]]\n", sb.String())
}

func TestRendererJSONNilList(t *testing.T) {
	r := Renderer{Format: FormatJSON, Separators: DefaultCSVSeparators()}
	var sb strings.Builder
	err := r.Render(&sb, nil, false, [][]any{{[]string(nil)}})
	require.NoError(t, err)
	assert.Equal(t, "[[[]]]\n", sb.String())
}

func TestFloatRendering(t *testing.T) {
	r := Renderer{Format: FormatBrokenCSV, Separators: DefaultCSVSeparators()}
	var sb strings.Builder
	err := r.Render(&sb, nil, false, [][]any{{float64(6), float64(0.375)}})
	require.NoError(t, err)
	assert.Equal(t, "6;0.375\n", sb.String())
}
