// Package curl translates between structured requests and curl command
// strings, in both directions.
package curl

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line into shell-style tokens. Quote characters are
// kept in the emitted tokens so later stages can detect and strip matching
// wrappers. Any input produces some token sequence: an unterminated quote
// simply consumes the rest of the input as one token. Backslash escapes are
// not processed; line continuations must be collapsed by the caller first.
func Tokenize(command string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	var quoteChar rune

	for _, r := range command {
		switch {
		case r == '"' || r == '\'':
			if !inQuotes {
				inQuotes = true
				quoteChar = r
			} else if r == quoteChar {
				inQuotes = false
			}
			current.WriteRune(r)
		case unicode.IsSpace(r) && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// unquote strips one pair of matching wrapper quotes, if present.
func unquote(token string) string {
	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if first == last && (first == '"' || first == '\'') {
			return token[1 : len(token)-1]
		}
	}
	return token
}
