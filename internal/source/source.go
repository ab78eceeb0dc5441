package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"invdash/internal/config"
)

// ErrSourceUnavailable wraps every failure to obtain the workbook bytes.
var ErrSourceUnavailable = errors.New("inventory source unavailable")

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

func unavailable(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
}

func FromConfig(cfg config.Config) (Source, error) {
	switch cfg.SourceKind {
	case "", "file":
		return NewFileSource(cfg.SourcePath), nil
	case "http", "https":
		if err := cfg.Require("SOURCE_ORIGIN", cfg.SourceOrigin); err != nil {
			return nil, err
		}
		return NewHTTPSource(cfg.SourceOrigin, cfg.SourceFileName, time.Duration(cfg.SourceTimeoutMs)*time.Millisecond), nil
	case "imap":
		return NewIMAPSource(cfg)
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", cfg.SourceKind)
	}
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.Name(), err)
	}
	blob, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	return blob, nil
}
