package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLedgerMissingFileIsEmpty(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "ledger.txt"))

	links, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected empty ledger, got %d links", len(links))
	}
}

func TestFileLedgerAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	store := NewFile(path)
	ctx := context.Background()

	for _, link := range []string{"https://example.com/a", "https://example.com/b"} {
		if err := store.Append(ctx, link); err != nil {
			t.Fatalf("Append(%s): %v", link, err)
		}
	}

	links, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if _, ok := links["https://example.com/a"]; !ok {
		t.Fatalf("appended link missing from loaded set")
	}

	ok, err := store.Contains(ctx, "https://example.com/b")
	if err != nil || !ok {
		t.Fatalf("Contains = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = store.Contains(ctx, "https://example.com/c")
	if err != nil || ok {
		t.Fatalf("Contains for absent link = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestFileLedgerAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	if err := os.WriteFile(path, []byte("https://example.com/old\n"), 0o644); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	store := NewFile(path)
	if err := store.Append(context.Background(), "https://example.com/new"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	want := "https://example.com/old\nhttps://example.com/new\n"
	if string(data) != want {
		t.Fatalf("ledger content = %q, want %q", string(data), want)
	}
}

func TestParseLinksSkipsBlankLines(t *testing.T) {
	links := parseLinks([]byte("https://a\n\n  \nhttps://b\n"))
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
}
