package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// ScopedStorageSDK is the first Android API level with scoped shared storage
const ScopedStorageSDK = 29

// StoragePermission decides whether photos may be written to a directory.
// On legacy platforms the user has to grant access explicitly; everywhere
// the directory also has to be writable.
type StoragePermission struct {
	mu      sync.Mutex
	dir     string
	legacy  bool
	granted bool
}

// NewStoragePermission creates a permission for dir. granted carries a
// grant persisted from an earlier run.
func NewStoragePermission(dir string, legacy, granted bool) *StoragePermission {
	return &StoragePermission{dir: dir, legacy: legacy, granted: granted}
}

// Required reports whether an explicit grant is still missing
func (p *StoragePermission) Required() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.legacy && !p.granted
}

// Grant records the user's consent
func (p *StoragePermission) Grant() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted = true
}

// SetDir switches the directory being checked
func (p *StoragePermission) SetDir(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dir = dir
}

// Dir returns the directory being checked
func (p *StoragePermission) Dir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dir
}

// WriteGranted reports whether a save may proceed
func (p *StoragePermission) WriteGranted() bool {
	p.mu.Lock()
	dir, blocked := p.dir, p.legacy && !p.granted
	p.mu.Unlock()

	if blocked {
		return false
	}
	return DirWritable(dir)
}

// DirWritable probes dir with a temporary file. A missing dir is probed
// through its nearest existing parent; nothing is created, so a collection
// still sees its directory gone and decides for itself.
func DirWritable(dir string) bool {
	if dir == "" {
		return false
	}
	probe := filepath.Clean(dir)
	for {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				return false
			}
			break
		}
		if !os.IsNotExist(err) {
			return false
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return false
		}
		probe = parent
	}
	f, err := os.CreateTemp(probe, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// NeedsLegacyPermission reports whether this device predates scoped storage
func NeedsLegacyPermission() bool {
	if !IsAndroid() {
		return false
	}
	sdk, ok := AndroidSDKVersion()
	return ok && sdk < ScopedStorageSDK
}

// AndroidSDKVersion reads the device API level
func AndroidSDKVersion() (int, bool) {
	out, err := exec.Command("getprop", "ro.build.version.sdk").Output()
	if err != nil {
		return 0, false
	}
	sdk, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, false
	}
	return sdk, true
}
