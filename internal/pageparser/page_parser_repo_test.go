package pageparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestParser() *ParserRepo {
	return NewParserRepo(zap.NewNop().Sugar())
}

func TestParseExtractsTitleAndText(t *testing.T) {
	parsed, err := newTestParser().Parse("<html><title>Example</title><body><p>Example Domain</p></body></html>")
	require.NoError(t, err)

	assert.Equal(t, "Example", parsed.Title)
	assert.Equal(t, "Example Domain", parsed.Text)
}

func TestParseSkipsScriptAndCollapsesWhitespace(t *testing.T) {
	parsed, err := newTestParser().Parse("<script>alert(1)</script><p>Hello  World</p>")
	require.NoError(t, err)

	assert.Equal(t, "Hello World", parsed.Text)
}

func TestParseSkipsStyleAndNoscript(t *testing.T) {
	parsed, err := newTestParser().Parse("<body><style>p { color: red }</style><noscript>enable js</noscript><p>visible</p></body>")
	require.NoError(t, err)

	assert.Equal(t, "visible", parsed.Text)
}

func TestParsePreservesDocumentOrder(t *testing.T) {
	parsed, err := newTestParser().Parse("<body><p>one</p><div><span>two</span></div><p>three</p></body>")
	require.NoError(t, err)

	assert.Equal(t, "one two three", parsed.Text)
}

func TestParseMissingTitle(t *testing.T) {
	parsed, err := newTestParser().Parse("<body><p>no title here</p></body>")
	require.NoError(t, err)

	assert.Empty(t, parsed.Title)
	assert.Equal(t, "no title here", parsed.Text)
}

func TestParseMetaDescription(t *testing.T) {
	parsed, err := newTestParser().Parse(`<html><head><meta name="description" content="A test page"></head><body>x</body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "A test page", parsed.MetaDescription)
}

func TestParseTitleTextExcludedFromBodyText(t *testing.T) {
	parsed, err := newTestParser().Parse("<html><head><title>Head Title</title></head><body><p>body only</p></body></html>")
	require.NoError(t, err)

	assert.Equal(t, "Head Title", parsed.Title)
	assert.Equal(t, "body only", parsed.Text)
}

func TestParseEmptyDocument(t *testing.T) {
	parsed, err := newTestParser().Parse("")
	require.NoError(t, err)

	assert.Empty(t, parsed.Title)
	assert.Empty(t, parsed.Text)
}
