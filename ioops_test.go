package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_readFile_writeFile_roundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte("one\ntwo\nthree\n"), 0644))

	e, _ := newTestEditor(t)
	n, err := e.readFile(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"one", "two", "three"}, allLines(t, e))

	dst := filepath.Join(dir, "out.txt")
	_, err = e.writeFile(dst, "w", 1, e.last)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", string(got))
}

// Test_readFile_unterminatedLastLine_writeDoesNotAddNewline covers the
// round-trip property from spec section 8: a binary file whose last line
// lacked a trailing newline is written back exactly as it was read.
func Test_readFile_unterminatedLastLine_writeDoesNotAddNewline(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(src, []byte("a\x00b\nlast"), 0644))

	e, _ := newTestEditor(t)
	n, err := e.readFile(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, e.mods.binary)
	assert.NotZero(t, e.mods.unterminated)

	dst := filepath.Join(dir, "out.bin")
	_, err = e.writeFile(dst, "w", 1, e.last)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a\x00b\nlast", string(got))
}

func Test_readFile_stripCR(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte("one\r\ntwo\r\n"), 0644))

	e, _ := newTestEditor(t, WithStripCR(true))
	_, err := e.readFile(src, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, allLines(t, e))
}

func Test_readFile_notFound(t *testing.T) {
	e, _ := newTestEditor(t)
	_, err := e.readFile(filepath.Join(t.TempDir(), "missing.txt"), 0)
	assert.Error(t, err)
}

func Test_expandFilename_percentAndEscapes(t *testing.T) {
	e, _ := newTestEditor(t, WithFilename("current.txt"))
	got, err := e.expandFilename("backup-%")
	require.NoError(t, err)
	assert.Equal(t, "backup-current.txt", got)

	got, err = e.expandFilename(`\%literal`)
	require.NoError(t, err)
	assert.Equal(t, "%literal", got)
}

func Test_expandFilename_percentWithoutCurrentFails(t *testing.T) {
	e, _ := newTestEditor(t)
	_, err := e.expandFilename("%")
	assert.Equal(t, errNoCurrentFilename, err)
}

func Test_restrictedMode_forbidsSlashAndDotDot(t *testing.T) {
	e, _ := newTestEditor(t, WithRestricted(true))
	assert.Equal(t, errDirectoryAccessRestricted, e.checkFilenameAllowed("sub/file.txt"))
	assert.Equal(t, errDirectoryAccessRestricted, e.checkFilenameAllowed(".."))
	assert.NoError(t, e.checkFilenameAllowed("file.txt"))
}

func Test_restrictedMode_forbidsShell(t *testing.T) {
	e, _ := newTestEditor(t, WithRestricted(true))
	_, err := e.shellCommand("ls")
	assert.Equal(t, errShellAccessRestricted, err)

	_, err = e.readFile("!ls", 0)
	assert.Equal(t, errShellAccessRestricted, err)
}

func Test_shellCommand_emptyReusesPrevious(t *testing.T) {
	e, _ := newTestEditor(t)
	_, err := e.shellCommand("")
	assert.Equal(t, errNoPreviousCommand, err)

	first, err := e.shellCommand("ls -l")
	require.NoError(t, err)
	assert.Equal(t, "ls -l", first)

	reused, err := e.shellCommand("")
	require.NoError(t, err)
	assert.Equal(t, "ls -l", reused)
}
