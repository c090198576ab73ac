package export

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/sharkbite/internal/filex"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
)

// Sink stores a rendered snapshot and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes snapshots into a local directory.
type DirSink struct {
	dir    string
	logger logging.Logger
}

func NewDirSink(dir string, logger logging.Logger) *DirSink {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DirSink{dir: dir, logger: logger}
}

func (s *DirSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	p, err := filex.WriteFile(dir, name, data)
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "snapshot written", "path", p, "bytes", len(data))
	return p, nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".json":
		return "application/json"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
