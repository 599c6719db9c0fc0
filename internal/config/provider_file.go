package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileProvider resolves references as paths to mounted secret files, such as
// Docker or Kubernetes secrets. Relative paths are joined to Dir. Trailing
// newlines are trimmed from the file contents.
type FileProvider struct {
	Dir string
}

// NewFileProvider creates a FileProvider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// GetParametersBatch reads each referenced file. Missing files are omitted;
// any other read failure aborts the batch.
func (p *FileProvider) GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("secret file resolution cancelled: %w", err)
		}
		path := key
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.Dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading secret file %s: %w", path, err)
		}
		result[key] = strings.TrimRight(string(data), "\r\n")
	}
	return result, nil
}

// ProviderChain asks each provider in order and keeps the first value found
// for every key.
type ProviderChain []SecretProvider

// GetParametersBatch implements SecretProvider.
func (c ProviderChain) GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	pending := keys
	for _, p := range c {
		if len(pending) == 0 {
			break
		}
		got, err := p.GetParametersBatch(ctx, pending)
		if err != nil {
			return nil, err
		}
		next := pending[:0:0]
		for _, k := range pending {
			if v, ok := got[k]; ok {
				result[k] = v
			} else {
				next = append(next, k)
			}
		}
		pending = next
	}
	return result, nil
}
