// Package source reads Python files from the local filesystem or from a git
// repository checkout.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"pyrs/translator-go/pkg/logger"
)

// File is one fetched Python source.
type File struct {
	// Name identifies the file in reports: the path as given for local
	// files, url@commit:path for git files.
	Name     string
	Path     string
	Data     []byte
	Checksum string
}

// Fetcher resolves a path to its contents.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*File, error)
}

// FileFetcher reads from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("source: empty path")
	}
	logger.LogFetch("file", path)
	return readFile(path, path)
}

func readFile(name, path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &File{
		Name:     name,
		Path:     path,
		Data:     data,
		Checksum: checksum(data),
	}, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
