package netx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureOf(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"aws", "http://h/b/k?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Signature=abc123", "abc123"},
		{"gcs", "https://storage.googleapis.com/b/k?X-Goog-Signature=def456&X-Goog-Expires=900", "def456"},
		{"v2 style", "https://h/b/k?Signature=ghi", "ghi"},
		{"aws wins", "https://h/b/k?Signature=old&X-Amz-Signature=new", "new"},
		{"none", "https://h/b/k?foo=bar", ""},
		{"unparsable", "://", ""},
		{"bad host", "http://[::1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SignatureOf(tt.url))
		})
	}
}
