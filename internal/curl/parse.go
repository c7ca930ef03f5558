package curl

import (
	"strings"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
	"github.com/konarsubhojit/rest-api-send-requests/internal/urlutil"
)

// Parse decodes a curl command into a structured request plus the full URL it
// targets. It is total over arbitrary input: unknown flags, malformed quoting
// and unparsable URLs all degrade instead of failing, so a user's mangled
// paste never crashes an import.
func Parse(command string) (model.StructuredRequest, string) {
	in := interpret(Tokenize(normalizeContinuations(command)))
	return FromWire(in.method, in.url, in.headers, in.body), in.url
}

// FromWire lifts a wire-level request back into its editable form: the URL is
// split into origin, path and parameter rows, a bearer Authorization header
// becomes the auth token, and the Content-Type header is consumed by body
// classification (the export direction re-injects both).
func FromWire(method, fullURL string, headers []model.KeyValue, body string) model.StructuredRequest {
	kept := make([]model.KeyValue, 0, len(headers))
	authToken := ""
	contentType := ""
	for _, h := range headers {
		switch {
		case strings.EqualFold(h.Key, "Authorization") && strings.HasPrefix(h.Value, "Bearer "):
			authToken = strings.TrimPrefix(h.Value, "Bearer ")
		case strings.EqualFold(h.Key, "Content-Type"):
			contentType = h.Value
		default:
			kept = append(kept, h)
		}
	}

	parsed := urlutil.Split(fullURL)
	bodyType, bodyContent := Classify(body, contentType)

	return model.StructuredRequest{
		BaseURL:     parsed.BaseURL,
		Path:        parsed.Path,
		Method:      method,
		AuthToken:   authToken,
		Parameters:  parsed.Parameters,
		Headers:     kept,
		BodyType:    bodyType,
		BodyContent: bodyContent,
	}
}

// normalizeContinuations collapses backslash-newline sequences so a pasted
// multi-line command tokenizes as a single one.
func normalizeContinuations(command string) string {
	command = strings.ReplaceAll(command, "\\\r\n", " ")
	return strings.ReplaceAll(command, "\\\n", " ")
}
