// Package storage is the activity-image store. Files land on local disk and
// are served under a public base URL; only the URL ever reaches clients.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Disk struct {
	dir     string
	baseURL string
}

func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Disk{dir: dir, baseURL: baseURL}, nil
}

func (d *Disk) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	path := filepath.Join(d.dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return d.PublicURL(name), nil
}

func (d *Disk) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(d.dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (d *Disk) PublicURL(name string) string {
	return d.baseURL + "/" + filepath.Base(name)
}
