package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"curoo/pkg/model"

	apperrors "curoo/pkg/errors"

	"github.com/goccy/go-json"
)

// ExportFileName is the artifact name for a snapshot taken on the given day.
func ExportFileName(payload model.ExportPayload) string {
	return fmt.Sprintf("curoo-admin-data-%s.json", payload.ExportDate.Format(model.DateLayout))
}

// FileDownloader writes snapshots as indented JSON files into Dir.
type FileDownloader struct {
	Dir string
}

func NewFileDownloader(dir string) *FileDownloader {
	return &FileDownloader{Dir: dir}
}

func (d *FileDownloader) Download(ctx context.Context, payload model.ExportPayload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", apperrors.Internal("failed to encode export", err)
	}

	if d.Dir != "" {
		if err := os.MkdirAll(d.Dir, 0o755); err != nil {
			return "", apperrors.Internal("failed to create export directory", err)
		}
	}

	path := filepath.Join(d.Dir, ExportFileName(payload))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Internal("failed to write export", err)
	}
	return path, nil
}
