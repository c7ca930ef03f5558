package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantBase   string
		wantPath   string
		wantParams [][2]string
	}{
		{
			name:     "origin only",
			raw:      "https://api.example.com",
			wantBase: "https://api.example.com",
		},
		{
			name:     "bare slash path is normalized away",
			raw:      "https://api.example.com/",
			wantBase: "https://api.example.com",
			wantPath: "",
		},
		{
			name:     "path and port",
			raw:      "http://localhost:8080/health",
			wantBase: "http://localhost:8080",
			wantPath: "/health",
		},
		{
			name:       "query parameters keep their order",
			raw:        "https://e.com/p?b=2&a=1&b=3",
			wantBase:   "https://e.com",
			wantPath:   "/p",
			wantParams: [][2]string{{"b", "2"}, {"a", "1"}, {"b", "3"}},
		},
		{
			name:       "percent-encoded parameters are decoded",
			raw:        "https://e.com/p?q=a%20b",
			wantBase:   "https://e.com",
			wantPath:   "/p",
			wantParams: [][2]string{{"q", "a b"}},
		},
		{
			name:     "fragment stays attached to the path",
			raw:      "https://e.com/p#section",
			wantBase: "https://e.com",
			wantPath: "/p#section",
		},
		{
			name:     "malformed input becomes an opaque base URL",
			raw:      "not a url",
			wantBase: "not a url",
		},
		{
			name:     "relative path becomes an opaque base URL",
			raw:      "/users/1",
			wantBase: "/users/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Split(tt.raw)
			assert.Equal(t, tt.wantBase, parsed.BaseURL)
			assert.Equal(t, tt.wantPath, parsed.Path)

			require.Len(t, parsed.Parameters, len(tt.wantParams))
			for i, want := range tt.wantParams {
				assert.Equal(t, want[0], parsed.Parameters[i].Key)
				assert.Equal(t, want[1], parsed.Parameters[i].Value)
				assert.NotEmpty(t, parsed.Parameters[i].ID)
			}
		})
	}
}

func TestSplitNeverReturnsNilParameters(t *testing.T) {
	assert.NotNil(t, Split("not a url").Parameters)
	assert.NotNil(t, Split("https://e.com").Parameters)
}

func TestLooksLikeFullURL(t *testing.T) {
	assert.True(t, LooksLikeFullURL("https://api.example.com/users"))
	assert.True(t, LooksLikeFullURL("http://localhost:8080"))

	assert.False(t, LooksLikeFullURL("api.example.com"))
	assert.False(t, LooksLikeFullURL("/users/1"))
	assert.False(t, LooksLikeFullURL("ftp://files.example.com"))
	assert.False(t, LooksLikeFullURL("https://"))
	assert.False(t, LooksLikeFullURL(""))
}
