package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	Root      string
	PublicURL string
}

func NewLocalStorage(root, publicURL string) *LocalStorage {
	return &LocalStorage{Root: root, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (v *LocalStorage) resolve(name string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(name))
	if cleaned == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file path: %q", name)
	}
	return filepath.Join(v.Root, cleaned), nil
}

func (v *LocalStorage) Put(_ context.Context, name string, body io.Reader, _ int64, _ string) error {
	dst, err := v.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("unable to prepare directory: %v", err)
	}

	file, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("unable to create file: %v", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("unable to write file: %v", err)
	}
	return nil
}

func (v *LocalStorage) Delete(_ context.Context, name string) error {
	dst, err := v.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (v *LocalStorage) URL(name string) string {
	return v.PublicURL + "/" + strings.TrimLeft(name, "/")
}
