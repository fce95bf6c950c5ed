package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBaseURL(t *testing.T) {
	base, err := GetBaseURL("https://example.com/some/path?q=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", base)
}

func TestGetBaseURLKeepsPort(t *testing.T) {
	base, err := GetBaseURL("http://localhost:8085/api/fetch")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8085", base)
}
