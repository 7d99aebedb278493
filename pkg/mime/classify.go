package mime

import "strings"

// IsPkcs7Mime reports whether the entity is application/pkcs7-mime
func (e *Entity) IsPkcs7Mime() bool {
	mt := e.MediaType()
	return mt == ContentTypePkcs7Mime || mt == ContentTypeXPkcs7Mime
}

// IsPkcs7Signature reports whether the entity is a detached signature
func (e *Entity) IsPkcs7Signature() bool {
	mt := e.MediaType()
	return mt == ContentTypePkcs7Signature || mt == ContentTypeXPkcs7Signature
}

// SMIMEType returns the smime-type parameter of the content type
func (e *Entity) SMIMEType() string {
	return e.Param("smime-type")
}

// IsEncrypted reports whether the entity carries enveloped data
func (e *Entity) IsEncrypted() bool {
	return e.SMIMEType() == SMIMETypeEncrypted
}

// IsCompressed reports whether the entity carries compressed data
func (e *Entity) IsCompressed() bool {
	return e.SMIMEType() == SMIMETypeCompressed
}

// IsSignedData reports whether the entity carries opaque signed data
func (e *Entity) IsSignedData() bool {
	return e.SMIMEType() == SMIMETypeSigned
}

// IsSigned reports whether the entity is multipart/signed
func (e *Entity) IsSigned() bool {
	return e.MediaType() == ContentTypeMultipartSigned
}

// IsReport reports whether the entity is a multipart/report, or a signed
// entity with a multipart/report among its direct children. Children are
// not inspected any deeper.
func (e *Entity) IsReport() bool {
	if e.isReportType() {
		return true
	}
	if !e.IsSigned() {
		return false
	}
	for _, part := range e.Parts() {
		if part.isReportType() {
			return true
		}
	}
	return false
}

func (e *Entity) isReportType() bool {
	return e.MediaType() == ContentTypeMultipartReport
}

// IsBinary reports whether the Content-Transfer-Encoding is binary
func (e *Entity) IsBinary() bool {
	return strings.EqualFold(e.firstValue(headerContentTransferEncoding).Value, EncodingBinary)
}

// IsMultiPart reports whether the entity has more than one child. An entity
// with a single child is not multipart even if it declares a boundary.
func (e *Entity) IsMultiPart() bool {
	return e.PartCount() > 1
}
