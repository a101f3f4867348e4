package upload

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

// Kind is the folder an uploaded file is filed under.
type Kind string

const (
	KindThumbnail Kind = "thumbnails"
	KindVideo     Kind = "videos"
)

// Storage persists an uploaded file and returns the reference clients use to fetch it.
type Storage interface {
	Save(ctx context.Context, kind Kind, name, contentType string, r io.Reader) (string, error)
}

// Local writes files below Dir and exposes them as relative paths under PublicPrefix.
type Local struct {
	Dir          string
	PublicPrefix string
}

// NewLocal creates the per-kind folders below dir.
func NewLocal(dir, publicPrefix string) (*Local, error) {
	for _, k := range []Kind{KindThumbnail, KindVideo} {
		if err := os.MkdirAll(filepath.Join(dir, string(k)), 0o755); err != nil {
			return nil, err
		}
	}
	return &Local{Dir: dir, PublicPrefix: publicPrefix}, nil
}

func (l *Local) Save(ctx context.Context, kind Kind, name, _ string, r io.Reader) (string, error) {
	dst := filepath.Join(l.Dir, string(kind), name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, readerWithContext(ctx, r)); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return path.Join("/", l.PublicPrefix, string(kind), name), nil
}

// GCS stores objects in a bucket and returns their public URL.
type GCS struct {
	Client *storage.Client
	Bucket string
}

func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{Client: client, Bucket: bucket}
}

func (g *GCS) Save(ctx context.Context, kind Kind, name, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, g.Client, g.Bucket, path.Join(string(kind), name), contentType, r)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
