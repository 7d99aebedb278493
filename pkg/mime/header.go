package mime

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Field is a single header name with its ordered values
type Field struct {
	Name   string
	Values []string
}

// Header is an ordered, case-insensitive, multi-valued header collection.
//
// The case of a name is fixed by its first registration; later
// registrations under the same folded name append their values.
type Header struct {
	names  map[string]string
	values map[string][]string
	order  []string
}

// NewHeader creates a header collection from the given fields
func NewHeader(fields ...Field) (*Header, error) {
	h := &Header{}
	if err := h.SetAll(fields); err != nil {
		return nil, err
	}
	return h, nil
}

// SetAll replaces every header with the given fields.
// The receiver is left untouched if any field is invalid.
func (h *Header) SetAll(fields []Field) error {
	next := Header{
		names:  make(map[string]string, len(fields)),
		values: make(map[string][]string, len(fields)),
	}

	for _, f := range fields {
		if err := validateName(f.Name); err != nil {
			return err
		}
		values, err := normalizeValues(f.Values)
		if err != nil {
			return fmt.Errorf("header %q: %w", f.Name, err)
		}

		key := strings.ToLower(f.Name)
		if _, ok := next.names[key]; ok {
			next.values[key] = append(next.values[key], values...)
			continue
		}
		next.names[key] = f.Name
		next.values[key] = values
		next.order = append(next.order, key)
	}

	*h = next
	return nil
}

// With returns a copy of the header collection where name is registered with
// values, replacing any previous registration of the same folded name
func (h *Header) With(name string, values ...string) (*Header, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	normalized, err := normalizeValues(values)
	if err != nil {
		return nil, fmt.Errorf("header %q: %w", name, err)
	}

	key := strings.ToLower(name)
	clone := h.Clone()
	if _, ok := clone.names[key]; ok {
		clone.remove(key)
	}
	clone.names[key] = name
	clone.values[key] = normalized
	clone.order = append(clone.order, key)

	return clone, nil
}

// Clone returns a deep copy of the header collection
func (h *Header) Clone() *Header {
	clone := &Header{
		names:  make(map[string]string, len(h.order)),
		values: make(map[string][]string, len(h.order)),
		order:  make([]string, len(h.order)),
	}
	copy(clone.order, h.order)
	for _, key := range h.order {
		clone.names[key] = h.names[key]
		clone.values[key] = append([]string(nil), h.values[key]...)
	}
	return clone
}

func (h *Header) remove(key string) {
	delete(h.names, key)
	delete(h.values, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Get returns the values registered under name, or nil if absent
func (h *Header) Get(name string) []string {
	values, ok := h.values[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Has reports whether name is registered
func (h *Header) Has(name string) bool {
	_, ok := h.names[strings.ToLower(name)]
	return ok
}

// Line returns the values of name joined with ", "
func (h *Header) Line(name string) string {
	return strings.Join(h.values[strings.ToLower(name)], ", ")
}

// Len returns the number of distinct header names
func (h *Header) Len() int {
	return len(h.order)
}

// Fields returns every header in first-registration order using the
// canonical case of each name
func (h *Header) Fields() []Field {
	fields := make([]Field, 0, len(h.order))
	for _, key := range h.order {
		fields = append(fields, Field{
			Name:   h.names[key],
			Values: append([]string(nil), h.values[key]...),
		})
	}
	return fields
}

// Lines renders every header as "Name: value1, value2" terminated by CRLF
func (h *Header) Lines() string {
	var sb strings.Builder
	for _, key := range h.order {
		sb.WriteString(h.names[key])
		sb.WriteString(": ")
		sb.WriteString(strings.Join(h.values[key], ", "))
		sb.WriteString(EOL)
	}
	return sb.String()
}

func validateName(name string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}
	return nil
}

// normalizeValues trims optional whitespace (SP / HTAB) around each value
// and checks it against the field-value grammar of RFC 7230 without obs-fold
func normalizeValues(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, ErrEmptyHeaderValueList
	}

	out := make([]string, len(values))
	for i, v := range values {
		trimmed := strings.Trim(v, " \t")
		if !httpguts.ValidHeaderFieldValue(trimmed) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeaderValue, trimmed)
		}
		out[i] = trimmed
	}
	return out, nil
}
