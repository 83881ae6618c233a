// Package storage хранит файлы аватаров: локальный каталог uploads или S3-бакет.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidName = errors.New("invalid file name")

// FileStore поддерживает только запись и удаление, файлы адресуются по имени
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

// cleanName не даёт имени выйти за пределы области загрузок
func cleanName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", errors.Wrap(ErrInvalidName, name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." {
		return "", errors.Wrap(ErrInvalidName, name)
	}
	return cleaned, nil
}
