package curl

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

// Classify infers how a request body should be edited, from the explicit
// Content-Type header when one was given and by sniffing the content
// otherwise. An empty contentType means no header was present. The sniff order
// favors JSON: "null" is valid JSON and classifies as such even though it
// reads like plain text.
func Classify(body, contentType string) (model.BodyType, string) {
	if body == "" {
		return model.BodyTypeNone, ""
	}

	switch {
	case strings.Contains(contentType, "application/json"),
		contentType == "" && json.Valid([]byte(body)):
		return model.BodyTypeJSON, indentJSON(body)
	case strings.Contains(contentType, "application/xml"),
		contentType == "" && looksLikeXML(body):
		return model.BodyTypeXML, body
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return model.BodyTypeForm, body
	default:
		return model.BodyTypeRaw, body
	}
}

// indentJSON reformats with two-space indentation, returning the body verbatim
// when it does not parse.
func indentJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

func looksLikeXML(body string) bool {
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">")
}
