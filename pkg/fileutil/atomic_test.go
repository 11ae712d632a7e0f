package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data string
		perm os.FileMode
	}{
		{"settings document", `{"env":{}}` + "\n", 0o644},
		{"empty registry", "", 0o600},
		{"script", "#!/bin/sh\nfnm use 20\n", 0o755},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")

			if err := AtomicWriteFile(path, []byte(tt.data), tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.data {
				t.Errorf("content = %q, want %q", got, tt.data)
			}
			info, _ := os.Stat(path)
			if info.Mode().Perm() != tt.perm {
				t.Errorf("perm = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_ReplacesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the target", len(entries))
	}
}

func TestAtomicWriteFile_MissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "settings.json")
	if err := AtomicWriteFile(path, []byte("{}"), 0o644); err == nil {
		t.Fatal("AtomicWriteFile() succeeded without a parent directory")
	}
}

func TestAtomicWriteFile_FailedRenameLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(target, []byte("x"), 0o644); err == nil {
		t.Fatal("AtomicWriteFile() over a non-empty directory should fail")
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	got, err := EncodeJSON(map[string]any{"baseUrl": "https://api.example.com/v1?a=1&b=2"})
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	want := "{\n  \"baseUrl\": \"https://api.example.com/v1?a=1&b=2\"\n}\n"
	if string(got) != want {
		t.Errorf("EncodeJSON() = %q, want %q", got, want)
	}

	if _, err := EncodeJSON(make(chan int)); err == nil {
		t.Error("EncodeJSON(chan) should fail")
	}
}

func TestEncodeYAML(t *testing.T) {
	got, err := EncodeYAML(struct {
		Host string `yaml:"host"`
	}{"browser"})
	if err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}
	if string(got) != "host: browser\n" {
		t.Errorf("EncodeYAML() = %q", got)
	}

	if _, err := EncodeYAML(func() {}); err == nil {
		t.Error("EncodeYAML(func) should fail")
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := AtomicWriteYAML(path, map[string]string{"host": "desktop"}); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "host: desktop\n" {
		t.Errorf("content = %q", got)
	}
}
