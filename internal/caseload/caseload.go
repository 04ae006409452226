// Package caseload reads case files from disk.
package caseload

import (
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/schema/validate"
)

// File holds a loaded case file with derived metadata.
type File struct {
	Path string
	Hash string // "sha256:<hex>"
	Case *schema.Case
}

// Load reads a case file from disk, computes its hash and parses it as JSON
// or YAML. now supplies the default problem date.
func Load(path string, now time.Time) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}

	c, err := validate.ParseCase(data, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	return &File{
		Path: path,
		Hash: fmt.Sprintf("sha256:%x", sum),
		Case: c,
	}, nil
}

// LoadText reads a plain text file such as a previous conclusion. A missing
// file is an error.
func LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
