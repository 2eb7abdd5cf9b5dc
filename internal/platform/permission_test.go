package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoragePermission(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "album")

	tests := []struct {
		name     string
		legacy   bool
		granted  bool
		expected bool
	}{
		{"scoped storage", false, false, true},
		{"legacy without grant", true, false, false},
		{"legacy with grant", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStoragePermission(dir, tt.legacy, tt.granted)
			if got := p.WriteGranted(); got != tt.expected {
				t.Errorf("WriteGranted() = %v, expected %v", got, tt.expected)
			}
			if got := p.Required(); got != (tt.legacy && !tt.granted) {
				t.Errorf("Required() = %v, expected %v", got, tt.legacy && !tt.granted)
			}
		})
	}
}

func TestStoragePermissionGrant(t *testing.T) {
	p := NewStoragePermission(t.TempDir(), true, false)
	if p.WriteGranted() {
		t.Fatal("Expected write to be blocked before grant")
	}
	p.Grant()
	if !p.WriteGranted() {
		t.Error("Expected write to be allowed after grant")
	}
	if p.Required() {
		t.Error("Expected no grant to be required after Grant()")
	}
}

func TestStoragePermissionUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewStoragePermission(filepath.Join(file, "sub"), false, false)
	if p.WriteGranted() {
		t.Error("Expected write to be denied below a regular file")
	}

	p.SetDir(t.TempDir())
	if !p.WriteGranted() {
		t.Errorf("Expected write to be allowed in %s", p.Dir())
	}
}

func TestDirWritableEmpty(t *testing.T) {
	if DirWritable("") {
		t.Error("Expected empty dir to be unwritable")
	}
}

func TestDirWritableLeavesMissingDirAlone(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone", "album")

	if !DirWritable(dir) {
		t.Error("Expected a missing dir under a writable parent to be writable")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected %s not to be created, stat err = %v", dir, err)
	}
	if _, err := os.Stat(filepath.Dir(dir)); !os.IsNotExist(err) {
		t.Errorf("Expected %s not to be created, stat err = %v", filepath.Dir(dir), err)
	}
}
