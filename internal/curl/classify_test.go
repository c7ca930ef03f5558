package curl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantType    model.BodyType
		wantContent string
	}{
		{
			name:        "empty body",
			body:        "",
			contentType: "application/json",
			wantType:    model.BodyTypeNone,
			wantContent: "",
		},
		{
			name:        "explicit json is reindented",
			body:        `{"a":1}`,
			contentType: "application/json",
			wantType:    model.BodyTypeJSON,
			wantContent: "{\n  \"a\": 1\n}",
		},
		{
			name:        "explicit json with charset parameter",
			body:        `[1,2]`,
			contentType: "application/json; charset=utf-8",
			wantType:    model.BodyTypeJSON,
			wantContent: "[\n  1,\n  2\n]",
		},
		{
			name:        "explicit json that does not parse stays verbatim",
			body:        `{broken`,
			contentType: "application/json",
			wantType:    model.BodyTypeJSON,
			wantContent: `{broken`,
		},
		{
			name:        "sniffed json without explicit type",
			body:        `{"a":1}`,
			contentType: "",
			wantType:    model.BodyTypeJSON,
			wantContent: "{\n  \"a\": 1\n}",
		},
		{
			name:        "explicit xml",
			body:        "not xml at all",
			contentType: "application/xml",
			wantType:    model.BodyTypeXML,
			wantContent: "not xml at all",
		},
		{
			name:        "sniffed xml",
			body:        "<a>1</a>",
			contentType: "",
			wantType:    model.BodyTypeXML,
			wantContent: "<a>1</a>",
		},
		{
			name:        "form urlencoded",
			body:        "a=1&b=2",
			contentType: "application/x-www-form-urlencoded",
			wantType:    model.BodyTypeForm,
			wantContent: "a=1&b=2",
		},
		{
			name:        "plain text falls through to raw",
			body:        "plain text",
			contentType: "",
			wantType:    model.BodyTypeRaw,
			wantContent: "plain text",
		},
		{
			name:        "unknown explicit type is raw even if body is json",
			body:        `{"a":1}`,
			contentType: "text/csv",
			wantType:    model.BodyTypeRaw,
			wantContent: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyType, content := Classify(tt.body, tt.contentType)
			assert.Equal(t, tt.wantType, bodyType)
			assert.Equal(t, tt.wantContent, content)
		})
	}
}

// "null" is both valid JSON and plausible plain text; sniffing favors JSON.
func TestClassifyAmbiguousNull(t *testing.T) {
	bodyType, content := Classify("null", "")
	assert.Equal(t, model.BodyTypeJSON, bodyType)
	assert.Equal(t, "null", content)
}
