// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mime models the MIME entities that carry AS2 and other S/MIME
wrapped EDI payloads.

An [Entity] is a header block, an optional opaque body and an ordered list
of child entities. Entities are built from raw wire text, from structured
headers and bodies, or from an inbound HTTP request, and are serialized back
to wire text.

# Entity Structure

A signed AS2 message is a multipart/signed entity with two children:

	Content-Type: multipart/signed; protocol="application/pkcs7-signature";
	    micalg=sha-256; boundary="----=_Part_..."

	------=_Part_...
	Content-Type: application/edi-x12

	[EDI payload]
	------=_Part_...
	Content-Type: application/pkcs7-signature; name=smime.p7s

	[Detached signature]
	------=_Part_...--

# Parsing

	entity, err := mime.FromText(raw, true)
	if entity.IsSigned() {
	    payload := entity.Part(0)
	    signature := entity.Part(1)
	}

When the raw text is kept, [Entity.String] returns it verbatim even after
headers or parts are changed. Call [Entity.WithoutRaw] to force the wire
text to be rebuilt from the structure.

# Classification

The Is* predicates read only headers (and, for [Entity.IsReport], direct
children). They never decode PKCS7 structures:

  - IsPkcs7Mime, IsPkcs7Signature: application/pkcs7-mime and
    application/pkcs7-signature, including the legacy x- spellings
  - IsEncrypted, IsCompressed, IsSignedData: the smime-type parameter
  - IsSigned: multipart/signed
  - IsReport: multipart/report, directly or one level inside a signed entity
  - IsBinary: Content-Transfer-Encoding: binary
  - IsMultiPart: more than one child

# References

  - AS2: https://datatracker.ietf.org/doc/html/rfc4130
  - S/MIME 3.2: https://datatracker.ietf.org/doc/html/rfc5751
  - MIME Multipart: https://datatracker.ietf.org/doc/html/rfc2046
  - HTTP field syntax: https://datatracker.ietf.org/doc/html/rfc7230#section-3.2
*/
package mime
