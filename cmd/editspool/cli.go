package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpumuk/edit-weaver/internal/journal"
	"github.com/kpumuk/edit-weaver/workspace"
)

const (
	exitOK        = 0
	exitMalformed = 1
	exitInternal  = 2
)

type cliOptions struct {
	db       string
	appendTo string
	producer string
	list     bool
	drain    bool
	pretty   bool
}

func run(stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "editspool: %v\n\n%s", err, usage)
		return exitInternal
	}

	j, err := journal.Open(opts.db)
	if err != nil {
		writef(stderr, "editspool: %v\n", err)
		return exitInternal
	}
	defer func() { _ = j.Close() }()

	switch {
	case opts.appendTo != "":
		return runAppend(stdout, stderr, j, opts)
	case opts.list:
		return runList(stdout, stderr, j)
	default:
		return runDrain(stdout, stderr, j, opts)
	}
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("editspool", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.db, "db", "", "journal database path")
	fs.StringVar(&opts.appendTo, "append", "", "spool the serialized edit file at this path")
	fs.StringVar(&opts.producer, "producer", "", "producer identity recorded with --append (default: generated)")
	fs.BoolVar(&opts.list, "list", false, "list spooled entries")
	fs.BoolVar(&opts.drain, "drain", false, "combine all spooled edits, print the result, and empty the journal")
	fs.BoolVar(&opts.pretty, "pretty", false, "indent drained output")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}
	if len(fs.Args()) > 0 {
		return cliOptions{}, usage, errors.New("positional arguments are not supported")
	}
	if opts.db == "" {
		return cliOptions{}, usage, errors.New("--db is required")
	}

	modes := 0
	if opts.appendTo != "" {
		modes++
	}
	if opts.list {
		modes++
	}
	if opts.drain {
		modes++
	}
	if modes != 1 {
		return cliOptions{}, usage, errors.New("exactly one of --append, --list, or --drain is required")
	}
	if opts.producer != "" && opts.appendTo == "" {
		return cliOptions{}, usage, errors.New("--producer is only valid with --append")
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  editspool --db edits.db --append edit.json [--producer id]\n")
	b.WriteString("  editspool --db edits.db --list\n")
	b.WriteString("  editspool --db edits.db --drain [--pretty]\n\n")
	b.WriteString("Flags:\n")
	fs.VisitAll(func(f *flag.Flag) {
		writef(&b, "  --%s\t%s\n", f.Name, f.Usage)
	})
	return b.String()
}

func runAppend(stdout, stderr io.Writer, j *journal.Journal, opts cliOptions) int {
	//nolint:gosec // CLI intentionally reads user-provided file paths.
	data, err := os.ReadFile(opts.appendTo)
	if err != nil {
		writef(stderr, "editspool: read %s: %v\n", opts.appendTo, err)
		return exitInternal
	}
	edit := workspace.NewWorkspaceEdit()
	if err := json.Unmarshal(data, edit); err != nil {
		writef(stderr, "editspool: %s: %v\n", opts.appendTo, err)
		if errors.Is(err, workspace.ErrMalformedEdit) {
			return exitMalformed
		}
		return exitInternal
	}
	seq, err := j.Append(opts.producer, edit)
	if err != nil {
		writef(stderr, "editspool: %v\n", err)
		return exitInternal
	}
	writef(stdout, "spooled entry %d (%d operations)\n", seq, edit.Len())
	return exitOK
}

func runList(stdout, stderr io.Writer, j *journal.Journal) int {
	entries, err := j.Entries()
	if err != nil {
		writef(stderr, "editspool: %v\n", err)
		if errors.Is(err, workspace.ErrMalformedEdit) {
			return exitMalformed
		}
		return exitInternal
	}
	for _, e := range entries {
		writef(stdout, "%d\t%s\t%d operations\t%d diagnostics\n",
			e.Seq, e.Producer, e.Edit.Len(), len(e.Edit.Diagnostics()))
	}
	return exitOK
}

func runDrain(stdout, stderr io.Writer, j *journal.Journal, opts cliOptions) int {
	merged, err := j.Drain()
	if err != nil {
		writef(stderr, "editspool: %v\n", err)
		if errors.Is(err, workspace.ErrMalformedEdit) {
			return exitMalformed
		}
		return exitInternal
	}
	var out []byte
	if opts.pretty {
		out, err = json.MarshalIndent(merged, "", "  ")
	} else {
		out, err = json.Marshal(merged)
	}
	if err != nil {
		writef(stderr, "editspool: encode: %v\n", err)
		return exitInternal
	}
	_, _ = stdout.Write(out)
	_, _ = io.WriteString(stdout, "\n")
	return exitOK
}

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
