// TEST TYPE: Unit Test
// DEPENDENCIES: real filesystem under t.TempDir()
// PURPOSE: materialization and guaranteed release of virtual files

package vfile

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryAsExecutable(t *testing.T) {
	dir := t.TempDir()
	vf := InMemory("echo hello")

	h, err := vf.AsExecutable(WithTempDir(dir))
	require.NoError(t, err)
	assert.True(t, h.IsTemp())
	assert.True(t, filepath.IsAbs(h.Path()))

	data, err := os.ReadFile(h.Path())
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hello", string(data))

	info, err := os.Stat(h.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	assert.True(t, strings.HasSuffix(h.Path(), ".sh"))

	out, err := exec.Command(h.Path()).Output()
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))

	h.Release()
	_, err = os.Stat(h.Path())
	assert.True(t, os.IsNotExist(err))

	// a second release is harmless
	h.Release()
}

func TestInMemoryKeepsExistingShebang(t *testing.T) {
	vf := InMemory("#!/bin/bash\necho hi\n")

	h, err := vf.AsExecutable(WithTempDir(t.TempDir()), WithShebang("#!/bin/zsh"))
	require.NoError(t, err)
	defer h.Release()

	data, err := os.ReadFile(h.Path())
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\necho hi\n", string(data))
}

func TestInMemoryCustomShebang(t *testing.T) {
	vf := InMemory("echo hi")

	h, err := vf.AsExecutable(WithTempDir(t.TempDir()), WithShebang("#!/bin/bash"))
	require.NoError(t, err)
	defer h.Release()

	data, err := os.ReadFile(h.Path())
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\necho hi", string(data))
}

func TestInMemoryAsReadable(t *testing.T) {
	vf := InMemory("key=@@value@@\n")

	h, err := vf.AsReadable(WithTempDir(t.TempDir()))
	require.NoError(t, err)
	defer h.Release()

	data, err := os.ReadFile(h.Path())
	require.NoError(t, err)
	assert.Equal(t, "key=@@value@@\n", string(data))

	info, err := os.Stat(h.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0111)
}

func TestEachMaterializationCreatesOneFile(t *testing.T) {
	dir := t.TempDir()
	vf := InMemory("true")

	h1, err := vf.AsExecutable(WithTempDir(dir))
	require.NoError(t, err)
	h2, err := vf.AsExecutable(WithTempDir(dir))
	require.NoError(t, err)
	assert.NotEqual(t, h1.Path(), h2.Path())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	h1.Release()
	h2.Release()

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPathAsExecutable(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ntrue\n"), 0755))

	h, err := FromPath(script).AsExecutable()
	require.NoError(t, err)
	assert.False(t, h.IsTemp())
	assert.Equal(t, script, h.Path())

	h.Release()
	_, err = os.Stat(script)
	assert.NoError(t, err, "releasing a path handle must not remove the file")
}

func TestPathErrors(t *testing.T) {
	dir := t.TempDir()

	notExec := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(notExec, []byte("true\n"), 0644))

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
		skip bool
	}{
		{name: "missing", path: filepath.Join(dir, "missing"), code: errors.ErrPathNotFound},
		{name: "directory", path: dir, code: errors.ErrNotAFile},
		{name: "not executable", path: notExec, code: errors.ErrInsufficientPrivileges, skip: os.Geteuid() == 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.skip {
				t.Skip("permission checks are bypassed for root")
			}
			h, err := FromPath(tt.path).AsExecutable()
			assert.Nil(t, h)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestReadAll(t *testing.T) {
	data, err := InMemory("inline").ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "inline", string(data))

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, []byte("on disk"), 0644))
	data, err = FromPath(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "on disk", string(data))
}

func TestString(t *testing.T) {
	assert.Equal(t, "/etc/hosts", FromPath("/etc/hosts").String())
	assert.Equal(t, "<inline: test -f marker>", InMemory("test -f marker").String())
	assert.Equal(t, "<inline: a ...>", InMemory("a\nb").String())
}

func TestWriteTempRemovesOnFailure(t *testing.T) {
	dir := t.TempDir()

	h, err := WriteTemp(dir, "fail-*", 0600, func(f *os.File) error {
		_, _ = f.WriteString("partial")
		return os.ErrClosed
	})
	assert.Nil(t, h)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
