package curl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

func TestBuildGETMaterializesQuery(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL:    "https://e.com",
		Path:       "/p",
		Method:     "GET",
		Parameters: []model.KeyValue{model.NewKeyValue("q", "1")},
		BodyType:   model.BodyTypeNone,
	}

	out := Build(req, req.URL())

	assert.True(t, strings.HasPrefix(out, "curl"))
	assert.NotContains(t, out, "-X")
	assert.True(t, strings.HasSuffix(out, `"https://e.com/p?q=1"`))
}

func TestBuildAuthTokenOverridesUserHeader(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL:   "https://e.com",
		Method:    "GET",
		AuthToken: "tok",
		Headers:   []model.KeyValue{model.NewKeyValue("Authorization", "Basic xyz")},
	}

	out := Build(req, req.URL())

	assert.Equal(t, 1, strings.Count(out, "Authorization"))
	assert.Contains(t, out, `-H "Authorization: Bearer tok"`)
	assert.NotContains(t, out, "Basic xyz")
}

func TestBuildNoBodyWithoutDataOrParameters(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL:    "https://e.com",
		Method:     "POST",
		BodyType:   model.BodyTypeNone,
		Parameters: []model.KeyValue{{ID: "1"}}, // empty row, filtered at the boundary
	}

	out := Build(req, req.URL())

	assert.NotContains(t, out, "--data")
	assert.Contains(t, out, "-X POST")
}

func TestBuildSynthesizesJSONBodyFromParameters(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL:    "https://e.com",
		Method:     "POST",
		BodyType:   model.BodyTypeNone,
		Parameters: []model.KeyValue{model.NewKeyValue("name", "John")},
	}

	out := Build(req, req.URL())

	assert.Contains(t, out, `--data '{"name":"John"}'`)
	assert.Contains(t, out, `-H "Content-Type: application/json"`)
}

func TestBuildInjectsContentTypeFromBodyType(t *testing.T) {
	tests := []struct {
		bodyType model.BodyType
		want     string
	}{
		{model.BodyTypeJSON, "application/json"},
		{model.BodyTypeXML, "application/xml"},
		{model.BodyTypeForm, "application/x-www-form-urlencoded"},
		{model.BodyTypeRaw, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(string(tt.bodyType), func(t *testing.T) {
			req := model.StructuredRequest{
				BaseURL:     "https://e.com",
				Method:      "POST",
				BodyType:    tt.bodyType,
				BodyContent: "x",
			}
			out := Build(req, req.URL())
			assert.Contains(t, out, `-H "Content-Type: `+tt.want+`"`)
		})
	}
}

func TestBuildRespectsUserContentType(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL:     "https://e.com",
		Method:      "POST",
		Headers:     []model.KeyValue{model.NewKeyValue("content-type", "application/vnd.api+json")},
		BodyType:    model.BodyTypeJSON,
		BodyContent: `{}`,
	}

	out := Build(req, req.URL())

	assert.Contains(t, out, "application/vnd.api+json")
	assert.Equal(t, 1, strings.Count(out, "ontent-"), "only the user header should survive")
}

func TestBuildEscapesSingleQuotesInBody(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL:     "https://e.com",
		Method:      "POST",
		BodyType:    model.BodyTypeRaw,
		BodyContent: "it's",
	}

	out := Build(req, req.URL())

	assert.Contains(t, out, `--data 'it'\''s'`)
}

func TestBuildJoinsTokensWithContinuations(t *testing.T) {
	req := model.StructuredRequest{
		BaseURL: "https://e.com",
		Method:  "POST",
	}

	out := Build(req, req.URL())

	lines := strings.Split(out, " \\\n  ")
	require.Len(t, lines, 3)
	assert.Equal(t, "curl", lines[0])
	assert.Equal(t, "-X POST", lines[1])
	assert.Equal(t, `"https://e.com"`, lines[2])
}

func TestRequestURLFallsBackOnUnparsableURL(t *testing.T) {
	req := model.StructuredRequest{
		Method:     "GET",
		Parameters: []model.KeyValue{model.NewKeyValue("a b", "c&d")},
	}

	// A control character makes url.Parse fail
	out := RequestURL(req, "https://e.com/\x7f")

	assert.Contains(t, out, "?a+b=c%26d")
}
