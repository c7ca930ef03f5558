package model

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// BodyType tells how BodyContent should be interpreted and encoded.
type BodyType string

const (
	BodyTypeJSON BodyType = "json"
	BodyTypeXML  BodyType = "xml"
	BodyTypeForm BodyType = "form-data"
	BodyTypeRaw  BodyType = "raw"
	BodyTypeNone BodyType = "none"
)

// ContentType returns the Content-Type header value implied by the body type.
// BodyTypeNone implies no header.
func (b BodyType) ContentType() string {
	switch b {
	case BodyTypeJSON:
		return "application/json"
	case BodyTypeXML:
		return "application/xml"
	case BodyTypeForm:
		return "application/x-www-form-urlencoded"
	case BodyTypeRaw:
		return "text/plain"
	default:
		return ""
	}
}

// KeyValue is one editable header or parameter row. The ID only identifies the
// row while editing; it carries no wire meaning.
type KeyValue struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewKeyValue creates a row with a fresh ID
func NewKeyValue(key, value string) KeyValue {
	return KeyValue{ID: uuid.New().String()[:8], Key: key, Value: value}
}

// StructuredRequest is the canonical in-memory form of an HTTP request.
// Parameters double as query parameters for GET and as fallback JSON body
// fields for body-bearing methods when no body type is selected.
type StructuredRequest struct {
	BaseURL     string     `json:"baseUrl"`
	Path        string     `json:"path"`
	Method      string     `json:"method"`
	AuthToken   string     `json:"authToken"`
	Parameters  []KeyValue `json:"parameters"`
	Headers     []KeyValue `json:"headers"`
	BodyType    BodyType   `json:"bodyType"`
	BodyContent string     `json:"bodyContent"`
}

// URL joins the base URL and path without normalizing either part.
func (r *StructuredRequest) URL() string {
	return r.BaseURL + r.Path
}

// WireMethod returns the upper-cased method, defaulting to GET.
func (r *StructuredRequest) WireMethod() string {
	method := strings.ToUpper(strings.TrimSpace(r.Method))
	if method == "" {
		return "GET"
	}
	return method
}

// SupportsBody reports whether the method carries a request body.
func (r *StructuredRequest) SupportsBody() bool {
	method := r.WireMethod()
	return method != "GET" && method != "HEAD"
}

// ActiveParameters returns the parameter rows that carry data. Empty rows only
// exist to keep an editable list and are dropped at the wire boundary.
func (r *StructuredRequest) ActiveParameters() []KeyValue {
	var params []KeyValue
	for _, p := range r.Parameters {
		if p.Key != "" {
			params = append(params, p)
		}
	}
	return params
}

// WireHeaders converts the editable header rows into the headers that go on
// the wire: rows without a key are dropped, a bearer token replaces any
// user-supplied Authorization header, and for body-bearing methods a
// Content-Type implied by the body type is added unless one is already set.
func (r *StructuredRequest) WireHeaders() []KeyValue {
	headers := make([]KeyValue, 0, len(r.Headers)+2)
	for _, h := range r.Headers {
		if h.Key == "" {
			continue
		}
		headers = append(headers, h)
	}

	if r.AuthToken != "" {
		headers = setHeader(headers, "Authorization", "Bearer "+r.AuthToken)
	}

	if r.SupportsBody() && !hasHeader(headers, "Content-Type") {
		if ct := r.impliedContentType(); ct != "" {
			headers = append(headers, KeyValue{Key: "Content-Type", Value: ct})
		}
	}

	return headers
}

// WireBody returns the payload to send. When no body type is selected the
// parameter rows double as JSON body fields for body-bearing methods.
func (r *StructuredRequest) WireBody() string {
	if r.wireBodyType() != BodyTypeNone {
		return r.BodyContent
	}

	if !r.SupportsBody() {
		return ""
	}
	params := r.ActiveParameters()
	if len(params) == 0 {
		return ""
	}

	fields := make(map[string]string, len(params))
	for _, p := range params {
		fields[p.Key] = p.Value
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(data)
}

func (r *StructuredRequest) wireBodyType() BodyType {
	if r.BodyType == "" {
		return BodyTypeNone
	}
	return r.BodyType
}

func (r *StructuredRequest) impliedContentType() string {
	if r.wireBodyType() == BodyTypeNone {
		// Parameter rows about to become a synthesized JSON body.
		if len(r.ActiveParameters()) > 0 {
			return "application/json"
		}
		return ""
	}
	return r.wireBodyType().ContentType()
}

// setHeader replaces the first header matching key in place and drops any
// further duplicates, so exactly one instance remains.
func setHeader(headers []KeyValue, key, value string) []KeyValue {
	out := headers[:0]
	replaced := false
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			if replaced {
				continue
			}
			h.Key, h.Value = key, value
			replaced = true
		}
		out = append(out, h)
	}
	if !replaced {
		out = append(out, KeyValue{Key: key, Value: value})
	}
	return out
}

func hasHeader(headers []KeyValue, key string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			return true
		}
	}
	return false
}
