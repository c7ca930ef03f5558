package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireMethodDefaultsToGET(t *testing.T) {
	req := StructuredRequest{}
	assert.Equal(t, "GET", req.WireMethod())

	req.Method = "post"
	assert.Equal(t, "POST", req.WireMethod())
}

func TestSupportsBody(t *testing.T) {
	assert.False(t, (&StructuredRequest{Method: "GET"}).SupportsBody())
	assert.False(t, (&StructuredRequest{Method: "HEAD"}).SupportsBody())
	assert.False(t, (&StructuredRequest{}).SupportsBody())
	assert.True(t, (&StructuredRequest{Method: "POST"}).SupportsBody())
	assert.True(t, (&StructuredRequest{Method: "DELETE"}).SupportsBody())
}

func TestWireHeadersDropsEmptyRows(t *testing.T) {
	req := StructuredRequest{
		Method: "GET",
		Headers: []KeyValue{
			{ID: "1"}, // the empty editor row
			NewKeyValue("X-Test", "1"),
			{ID: "2", Value: "orphan value"},
		},
	}

	headers := req.WireHeaders()
	require.Len(t, headers, 1)
	assert.Equal(t, "X-Test", headers[0].Key)
}

func TestWireHeadersAuthTokenWins(t *testing.T) {
	req := StructuredRequest{
		Method:    "GET",
		AuthToken: "tok",
		Headers: []KeyValue{
			NewKeyValue("authorization", "Basic one"),
			NewKeyValue("Authorization", "Basic two"),
		},
	}

	headers := req.WireHeaders()
	require.Len(t, headers, 1)
	assert.Equal(t, "Authorization", headers[0].Key)
	assert.Equal(t, "Bearer tok", headers[0].Value)
}

func TestWireHeadersAuthTokenAppendedWhenAbsent(t *testing.T) {
	req := StructuredRequest{
		Method:    "GET",
		AuthToken: "tok",
		Headers:   []KeyValue{NewKeyValue("X-Test", "1")},
	}

	headers := req.WireHeaders()
	require.Len(t, headers, 2)
	assert.Equal(t, "X-Test", headers[0].Key)
	assert.Equal(t, "Authorization", headers[1].Key)
}

func TestWireHeadersContentTypeInjection(t *testing.T) {
	tests := []struct {
		name     string
		req      StructuredRequest
		wantType string
	}{
		{
			name:     "json body on POST",
			req:      StructuredRequest{Method: "POST", BodyType: BodyTypeJSON},
			wantType: "application/json",
		},
		{
			name:     "raw body maps to text/plain",
			req:      StructuredRequest{Method: "PUT", BodyType: BodyTypeRaw},
			wantType: "text/plain",
		},
		{
			name: "parameters about to become a JSON body",
			req: StructuredRequest{
				Method:     "POST",
				BodyType:   BodyTypeNone,
				Parameters: []KeyValue{NewKeyValue("a", "1")},
			},
			wantType: "application/json",
		},
		{
			name:     "no injection on GET",
			req:      StructuredRequest{Method: "GET", BodyType: BodyTypeJSON},
			wantType: "",
		},
		{
			name:     "no injection on HEAD",
			req:      StructuredRequest{Method: "HEAD", BodyType: BodyTypeJSON},
			wantType: "",
		},
		{
			name:     "no injection without body or parameters",
			req:      StructuredRequest{Method: "POST", BodyType: BodyTypeNone},
			wantType: "",
		},
		{
			name: "user content-type wins regardless of case",
			req: StructuredRequest{
				Method:   "POST",
				BodyType: BodyTypeJSON,
				Headers:  []KeyValue{NewKeyValue("content-type", "application/hal+json")},
			},
			wantType: "application/hal+json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			count := 0
			for _, h := range tt.req.WireHeaders() {
				if h.Key == "Content-Type" || h.Key == "content-type" {
					got = h.Value
					count++
				}
			}
			assert.Equal(t, tt.wantType, got)
			assert.LessOrEqual(t, count, 1)
		})
	}
}

func TestWireBody(t *testing.T) {
	t.Run("body content passes through for a selected type", func(t *testing.T) {
		req := StructuredRequest{Method: "POST", BodyType: BodyTypeXML, BodyContent: "<a/>"}
		assert.Equal(t, "<a/>", req.WireBody())
	})

	t.Run("parameters synthesize a JSON object", func(t *testing.T) {
		req := StructuredRequest{
			Method:     "POST",
			BodyType:   BodyTypeNone,
			Parameters: []KeyValue{NewKeyValue("a", "1"), NewKeyValue("b", "2")},
		}
		assert.JSONEq(t, `{"a":"1","b":"2"}`, req.WireBody())
	})

	t.Run("no synthesis for GET", func(t *testing.T) {
		req := StructuredRequest{
			Method:     "GET",
			BodyType:   BodyTypeNone,
			Parameters: []KeyValue{NewKeyValue("a", "1")},
		}
		assert.Empty(t, req.WireBody())
	})

	t.Run("empty rows never produce a body", func(t *testing.T) {
		req := StructuredRequest{
			Method:     "POST",
			BodyType:   BodyTypeNone,
			Parameters: []KeyValue{{ID: "1"}},
		}
		assert.Empty(t, req.WireBody())
	})
}

func TestNewKeyValueAssignsUniqueIDs(t *testing.T) {
	a := NewKeyValue("k", "v")
	b := NewKeyValue("k", "v")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBodyTypeContentType(t *testing.T) {
	assert.Equal(t, "application/json", BodyTypeJSON.ContentType())
	assert.Equal(t, "application/xml", BodyTypeXML.ContentType())
	assert.Equal(t, "application/x-www-form-urlencoded", BodyTypeForm.ContentType())
	assert.Equal(t, "text/plain", BodyTypeRaw.ContentType())
	assert.Empty(t, BodyTypeNone.ContentType())
}
