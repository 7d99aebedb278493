package mime

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/emersion/go-message/textproto"
)

// Tokenizer splits raw message text into its header fields, in order of
// appearance, and its body
type Tokenizer interface {
	Tokenize(raw string) ([]Field, string, error)
}

// DefaultTokenizer is used by FromText
var DefaultTokenizer Tokenizer = TextprotoTokenizer{}

// TextprotoTokenizer reads the header block with go-message's textproto
// reader. Folded lines are unfolded and the name case of each field is kept
// as written.
//
// Text starting with a blank line, or whose first line is not a header
// field, has no headers and is returned whole as the body.
type TextprotoTokenizer struct{}

// Tokenize implements Tokenizer
func (TextprotoTokenizer) Tokenize(raw string) ([]Field, string, error) {
	switch {
	case strings.HasPrefix(raw, "\r\n"):
		return nil, raw[2:], nil
	case strings.HasPrefix(raw, "\n"):
		return nil, raw[1:], nil
	}

	firstLine, _, _ := strings.Cut(raw, "\n")
	if !strings.Contains(firstLine, ":") {
		return nil, raw, nil
	}

	head, body := splitHeaderBlock(raw)
	h, err := textproto.ReadHeader(bufio.NewReader(strings.NewReader(head + EOL)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read header block: %w", err)
	}

	var (
		fields []Field
		index  = map[string]int{}
	)
	for it := h.Fields(); it.Next(); {
		name := fieldName(it)
		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			fields[i].Values = append(fields[i].Values, it.Value())
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Name: name, Values: []string{it.Value()}})
	}

	return fields, body, nil
}

// splitHeaderBlock returns the header lines, including the line break that
// ends the last one, and everything after the first blank line. Without a
// blank line the whole text is header.
func splitHeaderBlock(raw string) (string, string) {
	crlf := strings.Index(raw, "\r\n\r\n")
	lf := strings.Index(raw, "\n\n")

	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return raw[:crlf+2], raw[crlf+4:]
	case lf >= 0:
		return raw[:lf+1], raw[lf+2:]
	}

	if !strings.HasSuffix(raw, "\n") {
		raw += EOL
	}
	return raw, ""
}

// fieldName recovers the field name as written; textproto canonicalizes
// keys, which would turn AS2-From into As2-From
func fieldName(it textproto.HeaderFields) string {
	raw, err := it.Raw()
	if err == nil {
		if name, _, ok := bytes.Cut(raw, []byte(":")); ok {
			if trimmed := strings.TrimSpace(string(name)); trimmed != "" {
				return trimmed
			}
		}
	}
	return it.Key()
}
