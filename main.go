package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

const usage = `usage: ed [-] [-Gels] [-p string] [-H lang] [--strip-trailing-cr] [file]
       red ...   (restricted mode)`

const version = "goed 1.0"

func main() {
	os.Exit(run(os.Args))
}

// run parses flags, constructs an Editor, and drives it to completion.
func run(argv []string) int {
	fs := flag.NewFlagSet("ed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprintln(os.Stderr, usage) }

	var (
		extended    bool
		traditional bool
		looseExit   bool
		prompt      string
		restricted  bool
		quiet       bool
		silent      bool
		scripted    bool
		verbose     bool
		showHelp    bool
		showVersion bool
		stripCR     bool
		lang        string
	)
	fs.BoolVar(&extended, "E", false, "use extended regular expressions")
	fs.BoolVar(&traditional, "G", false, "use traditional (basic) regular expressions")
	fs.BoolVar(&looseExit, "l", false, "use a loose exit status")
	fs.StringVar(&prompt, "p", "", "specify a command prompt and enable it")
	fs.BoolVar(&restricted, "r", false, "restricted mode: no shell, no filenames outside the working directory")
	fs.BoolVar(&scripted, "s", false, "suppress diagnostics (scripted mode)")
	fs.BoolVar(&quiet, "quiet", false, "alias for -s")
	fs.BoolVar(&silent, "silent", false, "alias for -s")
	fs.BoolVar(&verbose, "v", false, "enable verbose diagnostics")
	fs.BoolVar(&showHelp, "h", false, "print help and exit")
	fs.BoolVar(&showVersion, "V", false, "print version and exit")
	fs.BoolVar(&stripCR, "strip-trailing-cr", false, "strip trailing carriage returns from input lines")
	fs.StringVar(&lang, "H", "", "syntax highlight language, passed through to the highlighter")

	if err := fs.Parse(argv[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if showHelp {
		fs.Usage()
		return 0
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, version)
		return 0
	}

	restricted = restricted || filepath.Base(argv[0]) == "red"
	scripted = scripted || quiet || silent

	opts := []Option{
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
		WithExtendedRegex(extended && !traditional),
		WithRestricted(restricted),
		WithStripCR(stripCR),
		WithScripted(scripted),
		WithVerbose(verbose),
		WithLooseExit(looseExit),
		WithHighlightLang(lang),
	}
	if prompt != "" {
		opts = append(opts, WithPrompt(prompt))
	}

	e, err := New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.Close()

	e.sig = newSignalGuard()

	if name := fs.Arg(0); name != "" {
		if err := e.openInitialFile(name); err != nil {
			e.reportCommandError(err)
		}
	}

	return e.Run()
}
