package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fastidious/pkg/access"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateScript creates an executable shell script in dir
func CreateScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := CreateFile(t, dir, name, "#!/bin/sh\n"+body+"\n")
	Chmod(t, path, 0755)
	return path
}

// FileExists checks if a file exists at the given path.
func FileExists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return err == nil
}

// ReadFile reads the content of a file.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	if !FileExists(t, path) {
		t.Fatalf("File %s does not exist", path)
	}

	actual := ReadFile(t, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertNoFile checks that a file does not exist.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File %s exists but should not", path)
	}
}

// Chmod changes the permissions of a file or directory.
// It fails the test if the operation fails.
func Chmod(t *testing.T, path string, mode os.FileMode) {
	t.Helper()

	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("Failed to chmod %s: %v", path, err)
	}
}

// SkipIfRoot skips the test when running as root, where permission
// checks always succeed.
func SkipIfRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("Test requires an unprivileged user")
	}
}

// readOnlyMounts are tried when the test runs as root, for whom only a
// read-only filesystem denies writes
var readOnlyMounts = []string{"/sys", "/proc/sys", "/usr"}

// UnwritableDir returns an existing directory the effective user cannot
// create entries in. Unprivileged users get a 0555 directory under
// t.TempDir; root gets a read-only mount, and the test is skipped when
// there is none.
func UnwritableDir(t *testing.T) string {
	t.Helper()

	if os.Geteuid() != 0 {
		dir := filepath.Join(t.TempDir(), "locked")
		if err := os.Mkdir(dir, 0555); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
		t.Cleanup(func() { _ = os.Chmod(dir, 0755) })
		return dir
	}

	for _, dir := range readOnlyMounts {
		if ok, err := access.Check(dir, access.Write); err == nil && !ok {
			return dir
		}
	}
	t.Skip("no read-only filesystem available to root")
	return ""
}
