package curl

import (
	"net/url"
	"strings"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

// Build renders a structured request as a multi-line, shell-pasteable curl
// command. The output always starts with "curl" and always ends with exactly
// one double-quoted URL token.
func Build(req model.StructuredRequest, fullURL string) string {
	tokens := []string{"curl"}

	method := req.WireMethod()
	if method != "GET" {
		tokens = append(tokens, "-X "+method)
	}

	for _, h := range req.WireHeaders() {
		tokens = append(tokens, `-H "`+escapeDoubleQuotes(h.Key+": "+h.Value)+`"`)
	}

	if body := req.WireBody(); body != "" {
		tokens = append(tokens, "--data '"+escapeSingleQuotes(body)+"'")
	}

	tokens = append(tokens, `"`+escapeDoubleQuotes(RequestURL(req, fullURL))+`"`)

	return strings.Join(tokens, " \\\n  ")
}

// RequestURL returns the URL a request targets. For GET requests the parameter
// rows are materialized into the query string; other methods send them as body
// fields instead.
func RequestURL(req model.StructuredRequest, fullURL string) string {
	if req.WireMethod() != "GET" {
		return fullURL
	}
	return appendQuery(fullURL, req.ActiveParameters())
}

// appendQuery merges parameter rows into the URL query string, last value
// winning for duplicate keys. When the URL does not parse, percent-encoded
// pairs are concatenated by hand so the command still comes out usable.
func appendQuery(fullURL string, params []model.KeyValue) string {
	if len(params) == 0 {
		return fullURL
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		sep := "?"
		if strings.Contains(fullURL, "?") {
			sep = "&"
		}
		var b strings.Builder
		b.WriteString(fullURL)
		for _, p := range params {
			b.WriteString(sep)
			b.WriteString(url.QueryEscape(p.Key))
			b.WriteString("=")
			b.WriteString(url.QueryEscape(p.Value))
			sep = "&"
		}
		return b.String()
	}

	query := u.Query()
	for _, p := range params {
		query.Set(p.Key, p.Value)
	}
	u.RawQuery = query.Encode()
	return u.String()
}

func escapeDoubleQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// escapeSingleQuotes uses the close-escape-reopen idiom, the only way to get a
// literal single quote into a single-quoted POSIX shell string.
func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
