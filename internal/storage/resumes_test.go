package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	before := time.Now().UnixMilli()
	key := ObjectKey("john doe resume.pdf")
	after := time.Now().UnixMilli()

	prefix, name, found := strings.Cut(key, "-")
	require.True(t, found)
	assert.Equal(t, "john_doe_resume.pdf", name)

	var millis int64
	_, err := fmt.Sscanf(prefix, "%d", &millis)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, after)
}

func TestObjectKey_TabsAndNewlines(t *testing.T) {
	key := ObjectKey("a\tb\nc.pdf")
	assert.True(t, strings.HasSuffix(key, "a_b_c.pdf"))
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"public url", "https://cdn.example.com/resumes/1693526400000-cv.pdf", "1693526400000-cv.pdf"},
		{"bare key", "1693526400000-cv.pdf", "1693526400000-cv.pdf"},
		{"deep path", "https://s3.example.com/bucket/resumes/key.pdf", "key.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyFromURL(tt.url))
		})
	}
}

func TestStoreURL_TrimsTrailingSlash(t *testing.T) {
	s := &Store{publicBaseURL: strings.TrimRight("https://cdn.example.com/resumes/", "/")}
	assert.Equal(t, "https://cdn.example.com/resumes/key.pdf", s.URL("key.pdf"))
}
