package common

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateHashIgnoresSkippedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cmd", "financier", "main.go"), "package main")

	before, err := GenerateHash(root)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(root, "infra", "main.go"), "package main")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main")

	after, err := GenerateHash(root)
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Fatalf("hash changed for skipped directories")
	}

	writeFile(t, filepath.Join(root, "internal", "dialog", "engine.go"), "package dialog")
	changed, err := GenerateHash(root)
	if err != nil {
		t.Fatal(err)
	}
	if changed == after {
		t.Fatalf("hash must change when source changes")
	}
}
