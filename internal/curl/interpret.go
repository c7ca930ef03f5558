package curl

import (
	"strings"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

// interpreted is the provisional request accumulated while walking tokens.
type interpreted struct {
	method  string
	url     string
	headers []model.KeyValue
	body    string
}

// dataFlags are the curl flags whose argument becomes the request body. The
// last one seen wins.
var dataFlags = map[string]bool{
	"-d":               true,
	"--data":           true,
	"--data-raw":       true,
	"--data-binary":    true,
	"--data-urlencode": true,
}

// interpret walks shell tokens and recognizes the subset of curl flags this
// tool understands. Unrecognized flags are skipped for forward compatibility,
// and a flag appearing as the last token leaves its field at the default.
func interpret(tokens []string) interpreted {
	result := interpreted{method: "GET", headers: []model.KeyValue{}}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if i == 0 && token == "curl" {
			continue
		}

		switch {
		case token == "-X" || token == "--request":
			if i+1 < len(tokens) {
				i++
				result.method = strings.ToUpper(unquote(tokens[i]))
			}
		case token == "-H" || token == "--header":
			if i+1 < len(tokens) {
				i++
				key, value, ok := strings.Cut(unquote(tokens[i]), ":")
				if ok {
					result.headers = putHeader(result.headers, strings.TrimSpace(key), strings.TrimSpace(value))
				}
			}
		case dataFlags[token]:
			if i+1 < len(tokens) {
				i++
				result.body = unquote(tokens[i])
			}
		case !strings.HasPrefix(token, "-"):
			// Bare token: the request URL. Last one wins.
			result.url = unquote(token)
		}
	}

	return result
}

// putHeader applies map semantics to the ordered rows: a repeated key keeps
// its original position but takes the latest value.
func putHeader(headers []model.KeyValue, key, value string) []model.KeyValue {
	for i := range headers {
		if headers[i].Key == key {
			headers[i].Value = value
			return headers
		}
	}
	return append(headers, model.NewKeyValue(key, value))
}
