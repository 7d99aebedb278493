// Package mime implements S/MIME entity parsing, reconstruction and
// classification for AS2 messages
package mime

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// EOL is the line terminator used on the wire
const EOL = "\r\n"

const (
	// ContentTypePkcs7Mime is the media type of enveloped, compressed or opaque signed data
	ContentTypePkcs7Mime = "application/pkcs7-mime"
	// ContentTypeXPkcs7Mime is the legacy spelling of ContentTypePkcs7Mime
	ContentTypeXPkcs7Mime = "application/x-pkcs7-mime"
	// ContentTypePkcs7Signature is the media type of a detached signature
	ContentTypePkcs7Signature = "application/pkcs7-signature"
	// ContentTypeXPkcs7Signature is the legacy spelling of ContentTypePkcs7Signature
	ContentTypeXPkcs7Signature = "application/x-pkcs7-signature"
	// ContentTypeMultipartSigned is the media type of a signed entity
	ContentTypeMultipartSigned = "multipart/signed"
	// ContentTypeMultipartReport is the media type of a disposition report (MDN)
	ContentTypeMultipartReport = "multipart/report"
)

const (
	SMIMETypeCompressed = "compressed-data"
	SMIMETypeEncrypted  = "enveloped-data"
	SMIMETypeSigned     = "signed-data"
)

const (
	Encoding7Bit            = "7bit"
	Encoding8Bit            = "8bit"
	EncodingBinary          = "binary"
	EncodingQuotedPrintable = "quoted-printable"
	EncodingBase64          = "base64"
)

const (
	headerContentType             = "Content-Type"
	headerContentTransferEncoding = "Content-Transfer-Encoding"
)

// Entity is a MIME entity: a header block with either an opaque body or an
// ordered list of child entities.
//
// An Entity owns its children exclusively. SetHeaders, SetBody, AddPart and
// RemovePart mutate the receiver and must not be called concurrently;
// WithHeader returns an independent copy.
type Entity struct {
	header *Header
	raw    string
	body   string
	parts  []*Entity
}

// FromText parses raw wire text with the default tokenizer. When keepRaw is
// set the text is retained and returned verbatim by String.
func FromText(raw string, keepRaw bool) (*Entity, error) {
	return FromTextWith(DefaultTokenizer, raw, keepRaw)
}

// FromTextWith parses raw wire text using the given tokenizer
func FromTextWith(t Tokenizer, raw string, keepRaw bool) (*Entity, error) {
	fields, body, err := t.Tokenize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize message: %w", err)
	}

	e, err := newEntity(fields)
	if err != nil {
		return nil, err
	}
	if keepRaw {
		e.raw = raw
	}
	if err := e.SetBody(body); err != nil {
		return nil, err
	}
	return e, nil
}

// New creates an entity from headers and a scalar body. A body carrying a
// boundary declared on the content type is split into child entities.
func New(fields []Field, body string) (*Entity, error) {
	e, err := newEntity(fields)
	if err != nil {
		return nil, err
	}
	if err := e.SetBody(body); err != nil {
		return nil, err
	}
	return e, nil
}

// NewMultipart creates an entity whose body is the given child entities.
// A boundary is generated and added to the content type if none is declared.
func NewMultipart(fields []Field, parts ...*Entity) (*Entity, error) {
	e, err := newEntity(fields)
	if err != nil {
		return nil, err
	}

	if e.Param("boundary") == "" {
		contentType := e.header.Line(headerContentType)
		if contentType == "" {
			contentType = "multipart/mixed"
		}
		contentType = fmt.Sprintf("%s; boundary=\"%s\"", contentType, NewBoundary())
		header, err := e.header.With(headerContentType, contentType)
		if err != nil {
			return nil, err
		}
		e.header = header
	}

	e.SetParts(parts...)
	return e, nil
}

// FromHTTP creates an entity from the headers and body of an HTTP request
// or response. Header names are registered in sorted order.
func FromHTTP(header http.Header, body io.Reader) (*Entity, error) {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Values: header[name]})
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return New(fields, string(data))
}

// NewBoundary generates a multipart boundary string
func NewBoundary() string {
	return fmt.Sprintf("----=_Part_%s", strings.ReplaceAll(uuid.New().String(), "-", ""))
}

func newEntity(fields []Field) (*Entity, error) {
	header, err := NewHeader(foldLegacyTypes(fields)...)
	if err != nil {
		return nil, err
	}
	return &Entity{header: header}, nil
}

// foldLegacyTypes rewrites the x-pkcs7- media types some peers still send to
// their registered pkcs7- names
func foldLegacyTypes(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f
		if !strings.EqualFold(f.Name, headerContentType) {
			continue
		}
		values := make([]string, len(f.Values))
		for j, v := range f.Values {
			values[j] = strings.ReplaceAll(v, "x-pkcs7-", "pkcs7-")
		}
		out[i].Values = values
	}
	return out
}

// Header returns the entity's header collection
func (e *Entity) Header() *Header {
	return e.header
}

// GetHeader returns the values of the named header
func (e *Entity) GetHeader(name string) []string {
	return e.header.Get(name)
}

// HeaderLine returns the values of the named header joined with ", "
func (e *Entity) HeaderLine(name string) string {
	return e.header.Line(name)
}

// HeaderLines renders the header block without the separating blank line
func (e *Entity) HeaderLines() string {
	return e.header.Lines()
}

// SetHeaders replaces all headers in place
func (e *Entity) SetHeaders(fields []Field) error {
	return e.header.SetAll(fields)
}

// WithHeader returns a copy of the entity with name set to values. The
// receiver and its children are not modified.
func (e *Entity) WithHeader(name string, values ...string) (*Entity, error) {
	header, err := e.header.With(name, values...)
	if err != nil {
		return nil, err
	}
	clone := e.Clone()
	clone.header = header
	return clone, nil
}

// Clone returns a deep copy of the entity and all of its children
func (e *Entity) Clone() *Entity {
	clone := &Entity{
		header: e.header.Clone(),
		raw:    e.raw,
		body:   e.body,
	}
	if e.parts != nil {
		clone.parts = make([]*Entity, len(e.parts))
		for i, p := range e.parts {
			if p != nil {
				clone.parts[i] = p.Clone()
			}
		}
	}
	return clone
}

// Raw returns the captured wire text, if any
func (e *Entity) Raw() (string, bool) {
	return e.raw, e.raw != ""
}

// WithoutRaw drops the captured wire text so that String rebuilds it from
// the headers and body
func (e *Entity) WithoutRaw() *Entity {
	e.raw = ""
	return e
}

// String serializes the entity. A captured raw text is returned verbatim.
func (e *Entity) String() string {
	if e.raw != "" {
		return e.raw
	}
	return e.header.Lines() + EOL + e.Body()
}

// Bytes serializes the entity as a byte slice
func (e *Entity) Bytes() []byte {
	return []byte(e.String())
}

// WriteTo writes the serialized entity to w
func (e *Entity) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}
