package main

import (
	"os"
	"path/filepath"
	"testing"

	"hale/internal/timestamp"
)

func TestFindHaleToml(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "hale.toml")
	if err := os.WriteFile(cfgPath, []byte("[parse]\nlenient = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findHaleToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || found != cfgPath {
		t.Errorf("findHaleToml = %q, %v; want %q", found, ok, cfgPath)
	}
}

func TestFindHaleTomlMissing(t *testing.T) {
	// A directory tree without the file walks to the filesystem root
	// and reports not-found without error.
	_, ok, err := findHaleToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a hale.toml where none exists")
	}
}

func TestTimestampPayloadPrecision(t *testing.T) {
	ts, err := timestamp.Parse("202303")
	if err != nil {
		t.Fatal(err)
	}
	p := timestampJSON(ts)
	if p.Year != 2023 || p.Month == nil || *p.Month != 3 {
		t.Errorf("payload = %+v", p)
	}
	if p.Day != nil || p.Hour != nil || p.Offset != "" {
		t.Errorf("fields beyond precision set: %+v", p)
	}
}
