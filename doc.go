// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package goas2 models the MIME entities exchanged by AS2 (Applicability
Statement 2) peers for secure EDI messaging.

# Overview

AS2 wraps business documents in S/MIME: payloads are signed
(multipart/signed), encrypted or compressed (application/pkcs7-mime with an
smime-type parameter), and acknowledged with signed disposition reports
(multipart/report). go-as2 parses these entities from wire text, rebuilds
wire text from structured entities, and classifies each entity from its
headers. Cryptographic processing of the payloads is left to the caller.

# Package Structure

	github.com/sirosfoundation/go-as2/pkg/mime           - Entity, Header and classification
	github.com/sirosfoundation/go-as2/internal/config    - YAML configuration for mimeinspect
	github.com/sirosfoundation/go-as2/internal/inspect   - Message and mbox inspection reports
	github.com/sirosfoundation/go-as2/cmd/mimeinspect    - Inspection command line tool

# Quick Start

Parse a received message and look at its parts:

	import "github.com/sirosfoundation/go-as2/pkg/mime"

	entity, err := mime.FromText(raw, true)
	if err != nil {
	    return err
	}
	if entity.IsSigned() {
	    payload, signature := entity.Part(0), entity.Part(1)
	    // hand both to the signature verifier
	}

Build a signed entity:

	signed, err := mime.NewMultipart([]mime.Field{
	    {Name: "Content-Type", Values: []string{`multipart/signed; protocol="application/pkcs7-signature"; micalg=sha-256`}},
	}, payload, signature)
	wire := signed.String()

# References

  - AS2: https://datatracker.ietf.org/doc/html/rfc4130
  - S/MIME 3.2: https://datatracker.ietf.org/doc/html/rfc5751
  - MDN: https://datatracker.ietf.org/doc/html/rfc8098

# License

BSD-2-Clause License
*/
package goas2
