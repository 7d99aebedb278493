package mime

import (
	"strings"
)

// SetBody assigns a scalar body. When the content type declares a boundary
// the body is split on it and every segment is parsed into a child entity
// (with its raw text kept); otherwise the text is stored as the opaque body.
//
// A body that does not actually contain the boundary yields no children.
func (e *Entity) SetBody(body string) error {
	boundary := e.Param("boundary")
	if boundary == "" {
		e.body = body
		return nil
	}

	segments := strings.Split(body, "--"+boundary)
	if len(segments) < 2 {
		return nil
	}

	// The first segment is the preamble, the last one is whatever follows
	// the closing delimiter.
	for _, segment := range segments[1 : len(segments)-1] {
		if err := e.AddRawPart(trimLineBreaks(segment)); err != nil {
			return err
		}
	}
	return nil
}

// trimLineBreaks removes at most one line break from each end of a segment.
// Payloads may legitimately end with a blank line, which must survive.
func trimLineBreaks(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		s = s[2:]
	case strings.HasPrefix(s, "\n"):
		s = s[1:]
	}
	switch {
	case strings.HasSuffix(s, "\r\n"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "\n"):
		s = s[:len(s)-1]
	}
	return s
}

// Body renders the body. Entities without children return the opaque body;
// multipart entities are rebuilt from their children using the declared
// boundary, in part order.
//
// Children without a declared boundary cannot be delimited, in which case
// only the opaque body is returned.
func (e *Entity) Body() string {
	if e.PartCount() == 0 {
		return e.body
	}

	boundary := e.Param("boundary")
	if boundary == "" {
		return e.body
	}

	var sb strings.Builder
	sb.WriteString(e.body)
	for _, part := range e.Parts() {
		sb.WriteString("--")
		sb.WriteString(boundary)
		sb.WriteString(EOL)
		sb.WriteString(part.String())
		sb.WriteString(EOL)
	}
	sb.WriteString("--")
	sb.WriteString(boundary)
	sb.WriteString("--")
	sb.WriteString(EOL)
	return sb.String()
}

// AddPart appends a child entity
func (e *Entity) AddPart(part *Entity) {
	if part == nil {
		return
	}
	e.parts = append(e.parts, part)
}

// AddRawPart parses raw text into a child entity, keeping the raw text, and
// appends it
func (e *Entity) AddRawPart(raw string) error {
	part, err := FromText(raw, true)
	if err != nil {
		return err
	}
	e.AddPart(part)
	return nil
}

// SetParts appends every given entity as a child, in order
func (e *Entity) SetParts(parts ...*Entity) {
	for _, p := range parts {
		e.AddPart(p)
	}
}

// RemovePart removes the child at index i. The indices of the remaining
// children do not change, so Part(i) returns nil afterwards.
func (e *Entity) RemovePart(i int) bool {
	if i < 0 || i >= len(e.parts) || e.parts[i] == nil {
		return false
	}
	e.parts[i] = nil
	return true
}

// Part returns the child at index i, or nil if there is none
func (e *Entity) Part(i int) *Entity {
	if i < 0 || i >= len(e.parts) {
		return nil
	}
	return e.parts[i]
}

// Parts returns the children in order, skipping removed ones
func (e *Entity) Parts() []*Entity {
	parts := make([]*Entity, 0, len(e.parts))
	for _, p := range e.parts {
		if p != nil {
			parts = append(parts, p)
		}
	}
	return parts
}

// PartCount returns the number of children
func (e *Entity) PartCount() int {
	n := 0
	for _, p := range e.parts {
		if p != nil {
			n++
		}
	}
	return n
}
