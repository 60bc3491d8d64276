package main

import (
	"bytes"
	"io"
	"os/exec"
)

// Shell spawns a command with captured stdout/stdin and waits for its exit
// status. read_file and write_file use it when a filename begins with
// '!'; the `!` command itself uses it directly.
type Shell interface {
	// Run executes cmd via the platform shell, writing stdin (if non-nil)
	// to its standard input and returning its standard output in full.
	Run(cmd string, stdin io.Reader) ([]byte, error)
}

// execShell is the default Shell, backed by os/exec. Run goes through the
// isolate() goroutine helper (isolate.go), so a panic or runtime.Goexit
// during the call surfaces as a plain error instead of crashing the
// editor. There is no timeout: Run waits until the subprocess exits.
type execShell struct{}

func (execShell) Run(cmdline string, stdin io.Reader) ([]byte, error) {
	var out, result []byte
	err := isolate("shell", func() error {
		cmd := exec.Command("/bin/sh", "-c", cmdline)
		cmd.Stdin = stdin
		var buf bytes.Buffer
		cmd.Stdout = &buf
		cmd.Stderr = nil
		runErr := cmd.Run()
		out = buf.Bytes()
		return runErr
	})
	result = out
	return result, err
}
