package ledger

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
)

// Store is the persisted record of links already published. It grows
// append-only; links are committed only after a confirmed store write,
// so a failed publish leaves the item eligible for a future run.
type Store interface {
	// Load returns the full membership set of published links.
	Load(ctx context.Context) (map[string]struct{}, error)
	// Contains reports whether a single link was already published.
	Contains(ctx context.Context, link string) (bool, error)
	// Append records one newly published link.
	Append(ctx context.Context, link string) error
}

// File is the canonical backend: a newline-delimited UTF-8 text file,
// one link per line, append-only. A missing file is an empty ledger.
type File struct {
	path string
}

// NewFile builds a file-backed ledger at path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load(ctx context.Context) (map[string]struct{}, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", f.path, err)
	}
	return parseLinks(data), nil
}

func (f *File) Contains(ctx context.Context, link string) (bool, error) {
	links, err := f.Load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := links[link]
	return ok, nil
}

func (f *File) Append(ctx context.Context, link string) error {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", f.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(link + "\n"); err != nil {
		return fmt.Errorf("append to ledger %s: %w", f.path, err)
	}
	return nil
}

// parseLinks builds the membership set from newline-delimited content,
// ignoring blank lines.
func parseLinks(data []byte) map[string]struct{} {
	links := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			links[line] = struct{}{}
		}
	}
	return links
}
