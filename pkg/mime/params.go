package mime

import (
	"mime"
	"strings"
)

// ParsedValue is one comma-separated element of a header value, split into
// its leading token and parameters
type ParsedValue struct {
	// Value is the lower-cased leading token, such as a media type
	Value  string
	Params map[string]string
}

// ParsedHeader splits the values of the named header on commas outside
// quoted strings and parses each element as "value; key=param; ..."
func (e *Entity) ParsedHeader(name string) []ParsedValue {
	var parsed []ParsedValue
	for _, v := range e.header.Get(name) {
		for _, elem := range splitList(v) {
			if elem == "" {
				continue
			}
			parsed = append(parsed, parseValue(elem))
		}
	}
	return parsed
}

// MediaType returns the lower-cased primary Content-Type, or "" if unset
func (e *Entity) MediaType() string {
	return e.firstValue(headerContentType).Value
}

// Param returns a parameter of the first Content-Type value
func (e *Entity) Param(name string) string {
	return e.firstValue(headerContentType).Params[strings.ToLower(name)]
}

func (e *Entity) firstValue(name string) ParsedValue {
	parsed := e.ParsedHeader(name)
	if len(parsed) == 0 {
		return ParsedValue{}
	}
	return parsed[0]
}

func parseValue(s string) ParsedValue {
	mediaType, params, err := mime.ParseMediaType(s)
	if err == nil {
		return ParsedValue{Value: mediaType, Params: params}
	}

	// Fall back to a lenient split for values the stdlib rejects, such as
	// unquoted parameters containing tspecials.
	pv := ParsedValue{Params: map[string]string{}}
	for i, piece := range strings.Split(s, ";") {
		piece = strings.TrimSpace(piece)
		if i == 0 {
			pv.Value = strings.ToLower(piece)
			continue
		}
		key, value, ok := strings.Cut(piece, "=")
		if !ok {
			continue
		}
		pv.Params[strings.ToLower(strings.TrimSpace(key))] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	return pv
}

// splitList splits s on commas that are not inside a quoted string
func splitList(s string) []string {
	var (
		out    []string
		start  int
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quoted {
				i++
			}
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}
