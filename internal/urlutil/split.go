// Package urlutil decomposes full URLs into the pieces the request editor
// works with: origin, path and ordered query parameters.
package urlutil

import (
	"net/url"
	"strings"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

// ParsedURL is a transient decomposition of a full URL.
type ParsedURL struct {
	BaseURL    string
	Path       string
	Parameters []model.KeyValue
}

// Split decomposes a URL into origin, path and query parameters. Anything that
// does not parse as an absolute URL is treated as an opaque base URL with an
// empty path, so the caller always gets something usable back.
func Split(raw string) ParsedURL {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ParsedURL{BaseURL: raw, Parameters: []model.KeyValue{}}
	}

	path := u.Path
	if path == "/" {
		path = ""
	}
	if u.Fragment != "" {
		path += "#" + u.Fragment
	}

	return ParsedURL{
		BaseURL:    u.Scheme + "://" + u.Host,
		Path:       path,
		Parameters: parseQuery(u.RawQuery),
	}
}

// parseQuery keeps parameters in the order they appear, which url.Values
// throws away.
func parseQuery(rawQuery string) []model.KeyValue {
	params := []model.KeyValue{}
	if rawQuery == "" {
		return params
	}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		params = append(params, model.NewKeyValue(key, value))
	}
	return params
}

// LooksLikeFullURL reports whether input is an absolute http(s) URL. Bare
// paths and alias shorthands parse fine with url.Parse, so the prefix check
// does the real work.
func LooksLikeFullURL(input string) bool {
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return false
	}
	u, err := url.Parse(input)
	return err == nil && u.Host != ""
}
