package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kpumuk/edit-weaver/workspace"
)

func writeEditFile(t *testing.T, dir, name string, edit *workspace.WorkspaceEdit) string {
	t.Helper()
	data, err := json.Marshal(edit)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunRequiresSingleMode(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(&out, &errb, []string{"--db", "edits.db", "--list", "--drain"})
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
	if !strings.Contains(errb.String(), "exactly one of --append, --list, or --drain") {
		t.Fatalf("stderr missing validation message: %q", errb.String())
	}
}

func TestRunRequiresDB(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(&out, &errb, []string{"--list"})
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
	if !strings.Contains(errb.String(), "--db is required") {
		t.Fatalf("stderr missing validation message: %q", errb.String())
	}
}

func TestAppendListDrain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "edits.db")

	w1 := workspace.NewWorkspaceEdit()
	w1.Insert("file:///a.txt", workspace.Position{Line: 0, Character: 0}, "one")
	w2 := workspace.NewWorkspaceEdit()
	w2.RenameFile("file:///a.txt", "file:///b.txt", nil)
	p1 := writeEditFile(t, dir, "w1.json", w1)
	p2 := writeEditFile(t, dir, "w2.json", w2)

	var out, errb bytes.Buffer
	if code := run(&out, &errb, []string{"--db", db, "--append", p1, "--producer", "alpha"}); code != exitOK {
		t.Fatalf("append w1 exit code = %d; stderr=%q", code, errb.String())
	}
	if !strings.Contains(out.String(), "spooled entry 1") {
		t.Fatalf("append output = %q, want spooled entry 1", out.String())
	}

	out.Reset()
	errb.Reset()
	if code := run(&out, &errb, []string{"--db", db, "--append", p2}); code != exitOK {
		t.Fatalf("append w2 exit code = %d; stderr=%q", code, errb.String())
	}

	out.Reset()
	errb.Reset()
	if code := run(&out, &errb, []string{"--db", db, "--list"}); code != exitOK {
		t.Fatalf("list exit code = %d; stderr=%q", code, errb.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("list printed %d lines, want 2: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "alpha") {
		t.Fatalf("first entry missing producer alpha: %q", lines[0])
	}

	out.Reset()
	errb.Reset()
	if code := run(&out, &errb, []string{"--db", db, "--drain"}); code != exitOK {
		t.Fatalf("drain exit code = %d; stderr=%q", code, errb.String())
	}
	merged := workspace.NewWorkspaceEdit()
	if err := json.Unmarshal(out.Bytes(), merged); err != nil {
		t.Fatalf("Unmarshal drained output: %v; payload=%q", err, out.String())
	}
	ops := merged.Operations()
	if len(ops) != 2 || ops[0].Kind != workspace.KindFileTextEdit || !ops[1].IsRename() {
		t.Fatalf("drained log = %+v, want w1's insert then w2's rename", ops)
	}

	out.Reset()
	errb.Reset()
	if code := run(&out, &errb, []string{"--db", db, "--list"}); code != exitOK {
		t.Fatalf("list after drain exit code = %d; stderr=%q", code, errb.String())
	}
	if strings.TrimSpace(out.String()) != "" {
		t.Fatalf("journal not empty after drain: %q", out.String())
	}
}

func TestAppendMalformedEditExitCode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "edits.db")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"operations":[{"kind":2}]}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errb bytes.Buffer
	code := run(&out, &errb, []string{"--db", db, "--append", bad})
	if code != exitMalformed {
		t.Fatalf("exit code = %d, want %d; stderr=%q", code, exitMalformed, errb.String())
	}
}
