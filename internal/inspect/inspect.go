// Package inspect parses AS2 messages, single files or whole mbox archives,
// and reports how every entity in each message is classified.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"strings"

	"github.com/emersion/go-mbox"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/sirosfoundation/go-as2/internal/config"
	as2mime "github.com/sirosfoundation/go-as2/pkg/mime"
)

// Kind labels reported for a classified entity
const (
	KindSigned         = "signed"
	KindEncrypted      = "encrypted"
	KindCompressed     = "compressed"
	KindSignedData     = "signed-data"
	KindReport         = "report"
	KindBinary         = "binary"
	KindMultiPart      = "multipart"
	KindPkcs7Mime      = "pkcs7-mime"
	KindPkcs7Signature = "pkcs7-signature"
)

// Report describes one entity and, recursively, its children
type Report struct {
	Index       int       `yaml:"index,omitempty"`
	ContentType string    `yaml:"contentType,omitempty"`
	SMIMEType   string    `yaml:"smimeType,omitempty"`
	MessageID   string    `yaml:"messageId,omitempty"`
	Subject     string    `yaml:"subject,omitempty"`
	From        string    `yaml:"as2From,omitempty"`
	To          string    `yaml:"as2To,omitempty"`
	Filename    string    `yaml:"filename,omitempty"`
	Kinds       []string  `yaml:"kinds,omitempty"`
	Size        int       `yaml:"size"`
	Parts       []*Report `yaml:"parts,omitempty"`
}

// Has reports whether the entity was classified with kind
func (r *Report) Has(kind string) bool {
	for _, k := range r.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Inspector parses and classifies messages
type Inspector struct {
	keepRaw bool
	logger  *slog.Logger
	decoder *mime.WordDecoder
}

// New creates an inspector. A nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Inspector {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		keepRaw: cfg.KeepRaw(),
		logger:  logger,
		decoder: &mime.WordDecoder{CharsetReader: charsetReader},
	}
}

// InspectText parses a single message and reports on it
func (i *Inspector) InspectText(raw string) (*Report, error) {
	entity, err := as2mime.FromText(raw, i.keepRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	report := i.describe(entity)
	i.logger.Debug("message inspected",
		slog.String("message_id", report.MessageID),
		slog.String("content_type", report.ContentType),
		slog.Any("kinds", report.Kinds),
		slog.Int("parts", len(report.Parts)))
	return report, nil
}

// InspectReader reads a single message from r and reports on it
func (i *Inspector) InspectReader(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	return i.InspectText(string(data))
}

// InspectMbox reports on every message of an mbox archive. Messages that
// fail to parse are logged and skipped.
func (i *Inspector) InspectMbox(r io.Reader) ([]*Report, error) {
	var reports []*Report

	reader := mbox.NewReader(r)
	for index := 1; ; index++ {
		msg, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return reports, fmt.Errorf("failed to read mbox message %d: %w", index, err)
		}

		report, err := i.InspectReader(msg)
		if err != nil {
			i.logger.Warn("skipping message", slog.Int("index", index), slog.String("error", err.Error()))
			continue
		}
		report.Index = index
		reports = append(reports, report)
	}

	i.logger.Info("mbox inspected", slog.Int("messages", len(reports)))
	return reports, nil
}

// InspectFile reports on the message, or with isMbox every message, stored
// at path
func (i *Inspector) InspectFile(path string, isMbox bool) ([]*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	log := i.logger.With(slog.String("path", path))
	if isMbox {
		reports, err := i.InspectMbox(f)
		if err != nil {
			log.Error("mbox inspection failed", slog.String("error", err.Error()))
		}
		return reports, err
	}

	report, err := i.InspectReader(f)
	if err != nil {
		log.Error("message inspection failed", slog.String("error", err.Error()))
		return nil, err
	}
	log.Info("message inspected", slog.Any("kinds", report.Kinds))
	return []*Report{report}, nil
}

func (i *Inspector) describe(e *as2mime.Entity) *Report {
	report := &Report{
		ContentType: e.MediaType(),
		SMIMEType:   e.SMIMEType(),
		MessageID:   e.HeaderLine("Message-ID"),
		Subject:     i.decodeHeader(e.HeaderLine("Subject")),
		From:        e.HeaderLine("AS2-From"),
		To:          e.HeaderLine("AS2-To"),
		Filename:    i.filename(e),
		Kinds:       classify(e),
		Size:        len(e.String()),
	}
	for _, part := range e.Parts() {
		report.Parts = append(report.Parts, i.describe(part))
	}
	return report
}

func (i *Inspector) filename(e *as2mime.Entity) string {
	for _, v := range e.ParsedHeader("Content-Disposition") {
		if name := v.Params["filename"]; name != "" {
			return i.decodeHeader(name)
		}
	}
	return i.decodeHeader(e.Param("name"))
}

func (i *Inspector) decodeHeader(value string) string {
	if value == "" {
		return ""
	}
	decoded, err := i.decoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

func classify(e *as2mime.Entity) []string {
	var kinds []string
	add := func(ok bool, kind string) {
		if ok {
			kinds = append(kinds, kind)
		}
	}
	add(e.IsSigned(), KindSigned)
	add(e.IsEncrypted(), KindEncrypted)
	add(e.IsCompressed(), KindCompressed)
	add(e.IsSignedData(), KindSignedData)
	add(e.IsReport(), KindReport)
	add(e.IsBinary(), KindBinary)
	add(e.IsMultiPart(), KindMultiPart)
	add(e.IsPkcs7Mime(), KindPkcs7Mime)
	add(e.IsPkcs7Signature(), KindPkcs7Signature)
	return kinds
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if charset == "" {
		return input, nil
	}
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(charset))
	if err != nil || enc == nil {
		return input, nil
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
