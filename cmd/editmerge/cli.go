package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpumuk/edit-weaver/workspace"
)

const (
	exitOK        = 0
	exitMalformed = 1
	exitInternal  = 2
)

type cliOptions struct {
	stdin   bool
	pretty  bool
	summary bool
	paths   []string
}

func run(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "editmerge: %v\n\n%s", err, usage)
		return exitInternal
	}

	edits, code := readEdits(stdin, stderr, opts)
	if code != exitOK {
		return code
	}

	merged, err := workspace.Combine(edits...)
	if err != nil {
		writef(stderr, "editmerge: combine: %v\n", err)
		return exitInternal
	}

	if opts.summary {
		writeSummary(stderr, merged)
	}

	out, err := encodeEdit(merged, opts.pretty)
	if err != nil {
		writef(stderr, "editmerge: encode: %v\n", err)
		return exitInternal
	}
	_, _ = stdout.Write(out)
	_, _ = io.WriteString(stdout, "\n")
	return exitOK
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("editmerge", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.stdin, "stdin", false, "read a single serialized edit from stdin")
	fs.BoolVar(&opts.pretty, "pretty", false, "indent the merged output")
	fs.BoolVar(&opts.summary, "summary", false, "print a per-resource edit count to stderr")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}

	opts.paths = fs.Args()
	switch {
	case opts.stdin && len(opts.paths) > 0:
		return cliOptions{}, usage, errors.New("positional file paths are not allowed with --stdin")
	case !opts.stdin && len(opts.paths) == 0:
		return cliOptions{}, usage, errors.New("at least one serialized edit file is required (or use --stdin)")
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  editmerge [flags] edit1.json [edit2.json ...]\n")
	b.WriteString("  editmerge --stdin [flags]\n\n")
	b.WriteString("Flags:\n")
	fs.VisitAll(func(f *flag.Flag) {
		writef(&b, "  --%s\t%s\n", f.Name, f.Usage)
	})
	return b.String()
}

func readEdits(stdin io.Reader, stderr io.Writer, opts cliOptions) ([]*workspace.WorkspaceEdit, int) {
	if opts.stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			writef(stderr, "editmerge: read stdin: %v\n", err)
			return nil, exitInternal
		}
		edit, code := decodeEdit(stderr, "stdin", data)
		if code != exitOK {
			return nil, code
		}
		return []*workspace.WorkspaceEdit{edit}, exitOK
	}

	edits := make([]*workspace.WorkspaceEdit, 0, len(opts.paths))
	for _, path := range opts.paths {
		//nolint:gosec // CLI intentionally reads user-provided file paths.
		data, err := os.ReadFile(path)
		if err != nil {
			writef(stderr, "editmerge: read %s: %v\n", path, err)
			return nil, exitInternal
		}
		edit, code := decodeEdit(stderr, path, data)
		if code != exitOK {
			return nil, code
		}
		edits = append(edits, edit)
	}
	return edits, exitOK
}

func decodeEdit(stderr io.Writer, name string, data []byte) (*workspace.WorkspaceEdit, int) {
	edit := workspace.NewWorkspaceEdit()
	if err := json.Unmarshal(data, edit); err != nil {
		writef(stderr, "editmerge: %s: %v\n", name, err)
		if errors.Is(err, workspace.ErrMalformedEdit) {
			return nil, exitMalformed
		}
		return nil, exitInternal
	}
	return edit, exitOK
}

func encodeEdit(edit *workspace.WorkspaceEdit, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(edit, "", "  ")
	}
	return json.Marshal(edit)
}

func writeSummary(w io.Writer, edit *workspace.WorkspaceEdit) {
	for uri, edits := range edit.TextEdits() {
		writef(w, "%s: %d text edits\n", uri, len(edits))
	}
	var fileOps int
	for _, op := range edit.Operations() {
		if op.Kind == workspace.KindFileOperation {
			fileOps++
		}
	}
	writef(w, "file operations: %d\n", fileOps)
	writef(w, "diagnostics: %d\n", len(edit.Diagnostics()))
}

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
