package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Error is returned when an uploaded file is rejected before it is stored.
type Error struct {
	Field    string
	Reason   string
	TooLarge bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload %s: %s", e.Field, e.Reason)
}

// Rule describes which form field carries a file and which media types it accepts.
type Rule struct {
	Field      string
	Kind       Kind
	MIMEPrefix string
	Label      string
}

var (
	ThumbnailRule = Rule{Field: "thumbnail", Kind: KindThumbnail, MIMEPrefix: "image/", Label: "image"}
	VideoRule     = Rule{Field: "video", Kind: KindVideo, MIMEPrefix: "video/", Label: "video"}
)

// File is an accepted upload waiting to be stored.
type File struct {
	storage     Storage
	rule        Rule
	header      *multipart.FileHeader
	contentType string
}

// Accept checks the size cap and media type of fh against rule.
// The declared Content-Type is trusted unless it is missing or generic, in which case
// the content is sniffed.
func Accept(s Storage, rule Rule, fh *multipart.FileHeader, maxBytes int64) (*File, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, &Error{Field: rule.Field, Reason: fmt.Sprintf("file exceeds %d bytes", maxBytes), TooLarge: true}
	}

	ct := mediaType(fh.Header.Get("Content-Type"))
	if ct == "" || ct == "application/octet-stream" {
		sniffed, err := sniff(fh)
		if err != nil {
			return nil, &Error{Field: rule.Field, Reason: "file could not be read"}
		}
		ct = mediaType(sniffed)
	}
	if !strings.HasPrefix(ct, rule.MIMEPrefix) {
		return nil, &Error{Field: rule.Field, Reason: "only " + rule.Label + " files are allowed"}
	}
	return &File{storage: s, rule: rule, header: fh, contentType: ct}, nil
}

func mediaType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	m, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// Store writes the file under a fresh name and returns its public reference.
func (f *File) Store(ctx context.Context) (string, error) {
	src, err := f.header.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()
	return f.storage.Save(ctx, f.rule.Kind, f.objectName(), f.contentType, src)
}

func (f *File) objectName() string {
	ext := strings.ToLower(filepath.Ext(f.header.Filename))
	if ext == "" {
		if m := mimetype.Lookup(f.contentType); m != nil {
			ext = m.Extension()
		}
	}
	return uuid.NewString() + ext
}
