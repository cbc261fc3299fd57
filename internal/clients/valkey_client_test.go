package clients

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentKey(t *testing.T) {
	a := DocumentKey("url", "https://example.com/a")
	b := DocumentKey("url", "https://example.com/b")

	assert.True(t, strings.HasPrefix(a, VALKEY_DOCUMENT_KEY_PREFIX+"url:"))
	assert.Len(t, a, len(VALKEY_DOCUMENT_KEY_PREFIX)+len("url:")+64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, DocumentKey("url", "https://example.com/a"))
}

func TestDocumentKeySeparatesKinds(t *testing.T) {
	source := "https://video.example.com/watch?v=1"
	assert.NotEqual(t, DocumentKey("url", source), DocumentKey("video", source))
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("read: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE")))
}
