package workspace

import (
	"iter"
	"slices"
)

// WorkspaceEdit is an ordered, append-only log of operations over multiple
// resources, plus optional attached diagnostics. Insertion order is the only
// total order over the log: it determines grouping, combination, and the
// order in which a host applies the operations.
//
// An instance is meant to be built by a single producer, optionally merged
// with others via Combine, then serialized for a host to apply. Methods are
// not safe for concurrent use; concurrent producers must each build their own
// instance.
type WorkspaceEdit struct {
	ops   []Operation
	diags []Diagnostic
}

// NewWorkspaceEdit creates an empty workspace edit.
func NewWorkspaceEdit() *WorkspaceEdit {
	return &WorkspaceEdit{}
}

// Operations returns the operation log in insertion order. The returned
// slice is a live view of the log; callers must not modify it.
func (w *WorkspaceEdit) Operations() []Operation {
	if w == nil {
		return nil
	}
	return w.ops
}

// Diagnostics returns the attached diagnostics in addition order, or nil if
// none were ever recorded.
func (w *WorkspaceEdit) Diagnostics() []Diagnostic {
	if w == nil {
		return nil
	}
	return w.diags
}

// Len returns the number of logged operations.
func (w *WorkspaceEdit) Len() int {
	if w == nil {
		return 0
	}
	return len(w.ops)
}

// Replace appends a text edit replacing the text covered by rng at uri with
// newText.
func (w *WorkspaceEdit) Replace(uri URI, rng Range, newText string) {
	w.ops = append(w.ops, Operation{
		Kind: KindFileTextEdit,
		URI:  uri,
		Edit: TextEdit{Range: rng, NewText: newText},
	})
}

// Insert appends a pure insertion at pos: a replace over a zero-width range.
func (w *WorkspaceEdit) Insert(uri URI, pos Position, newText string) {
	w.Replace(uri, Range{Start: pos, End: pos}, newText)
}

// Delete appends a deletion of rng: a replace with empty text.
func (w *WorkspaceEdit) Delete(uri URI, rng Range) {
	w.Replace(uri, rng, "")
}

// CreateFile appends a file operation creating uri. opts may be nil.
func (w *WorkspaceEdit) CreateFile(uri URI, opts *FileOperationOptions) {
	w.ops = append(w.ops, Operation{Kind: KindFileOperation, To: uri, Options: opts})
}

// DeleteFile appends a file operation deleting uri. opts may be nil.
func (w *WorkspaceEdit) DeleteFile(uri URI, opts *FileOperationOptions) {
	w.ops = append(w.ops, Operation{Kind: KindFileOperation, From: uri, Options: opts})
}

// RenameFile appends a file operation renaming or moving from to to.
// opts may be nil. A rename with from == to is accepted unchecked.
func (w *WorkspaceEdit) RenameFile(from, to URI, opts *FileOperationOptions) {
	w.ops = append(w.ops, Operation{Kind: KindFileOperation, From: from, To: to, Options: opts})
}

// Set appends each edit as a new text edit for uri, in slice order, at the
// end of the log. Existing text edits for uri are kept: repeated calls
// accumulate rather than replace.
//
// A nil or empty edits slice instead removes every text edit for uri from
// the log; file operations referencing uri are untouched.
func (w *WorkspaceEdit) Set(uri URI, edits []TextEdit) {
	if len(edits) == 0 {
		w.ops = slices.DeleteFunc(w.ops, func(op Operation) bool {
			return op.Kind == KindFileTextEdit && op.URI == uri
		})
		return
	}
	for _, e := range edits {
		w.ops = append(w.ops, Operation{Kind: KindFileTextEdit, URI: uri, Edit: e})
	}
}

// AddDiagnostic appends d to the diagnostics list, creating the list on
// first use. Diagnostics cannot be removed once added.
func (w *WorkspaceEdit) AddDiagnostic(d Diagnostic) {
	w.diags = append(w.diags, d)
}

// Get returns the text edits logged for uri in insertion order, or an empty
// slice if none. Lookup scans the full log; no secondary index is kept.
func (w *WorkspaceEdit) Get(uri URI) []TextEdit {
	if w == nil {
		return nil
	}
	var edits []TextEdit
	for _, op := range w.ops {
		if op.Kind == KindFileTextEdit && op.URI == uri {
			edits = append(edits, op.Edit)
		}
	}
	return edits
}

// Has reports whether at least one text edit targets uri.
func (w *WorkspaceEdit) Has(uri URI) bool {
	if w == nil {
		return false
	}
	for _, op := range w.ops {
		if op.Kind == KindFileTextEdit && op.URI == uri {
			return true
		}
	}
	return false
}

// TextEdits returns the logged text edits grouped by resource. Groups appear
// in first-seen order among text edits (file operations never contribute a
// group), and edits within a group keep insertion order. The sequence
// re-scans the log on every iteration, so it is restartable and reflects
// mutations made between iterations.
func (w *WorkspaceEdit) TextEdits() iter.Seq2[URI, []TextEdit] {
	return func(yield func(URI, []TextEdit) bool) {
		if w == nil {
			return
		}
		var order []URI
		groups := make(map[URI][]TextEdit)
		for _, op := range w.ops {
			if op.Kind != KindFileTextEdit {
				continue
			}
			if _, seen := groups[op.URI]; !seen {
				order = append(order, op.URI)
			}
			groups[op.URI] = append(groups[op.URI], op.Edit)
		}
		for _, uri := range order {
			if !yield(uri, groups[uri]) {
				return
			}
		}
	}
}
