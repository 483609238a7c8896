package workspace

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SerializedWorkspaceEdit is the JSON-compatible wire form of a
// WorkspaceEdit. Resource identifiers are plain strings and diagnostics are
// omitted entirely when none were ever recorded.
type SerializedWorkspaceEdit struct {
	Operations  []SerializedOperation `json:"operations"`
	Diagnostics []Diagnostic          `json:"diagnostics,omitempty"`
}

// SerializedOperation is the wire form of one log entry, discriminated by
// Kind: file operations carry from/to/options, text edits carry uri/edit.
type SerializedOperation struct {
	Kind OperationKind `json:"kind"`

	From    string                `json:"from,omitempty"`
	To      string                `json:"to,omitempty"`
	Options *FileOperationOptions `json:"options,omitempty"`

	URI  string    `json:"uri,omitempty"`
	Edit *TextEdit `json:"edit,omitempty"`
}

// Serialize converts the edit to its wire form. Serialization is total: an
// operation with an unrecognized kind keeps its discriminant and drops its
// payload, so the failure surfaces on decode rather than here.
func (w *WorkspaceEdit) Serialize() SerializedWorkspaceEdit {
	s := SerializedWorkspaceEdit{Operations: []SerializedOperation{}}
	if w == nil {
		return s
	}
	for _, op := range w.ops {
		s.Operations = append(s.Operations, serializeOperation(op))
	}
	if w.diags != nil {
		s.Diagnostics = slices.Clone(w.diags)
	}
	return s
}

func serializeOperation(op Operation) SerializedOperation {
	switch op.Kind {
	case KindFileOperation:
		return SerializedOperation{
			Kind:    KindFileOperation,
			From:    op.From.String(),
			To:      op.To.String(),
			Options: op.Options,
		}
	case KindFileTextEdit:
		edit := op.Edit
		return SerializedOperation{
			Kind: KindFileTextEdit,
			URI:  op.URI.String(),
			Edit: &edit,
		}
	default:
		return SerializedOperation{Kind: op.Kind}
	}
}

// FromSerialized rebuilds a WorkspaceEdit from its wire form. It fails with
// an error wrapping ErrMalformedEdit when an operation carries an unknown
// discriminant or a text edit is missing its resource or edit payload.
func FromSerialized(s SerializedWorkspaceEdit) (*WorkspaceEdit, error) {
	w := NewWorkspaceEdit()
	for i, sop := range s.Operations {
		op, err := deserializeOperation(sop)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		w.ops = append(w.ops, op)
	}
	if s.Diagnostics != nil {
		w.diags = slices.Clone(s.Diagnostics)
	}
	return w, nil
}

func deserializeOperation(sop SerializedOperation) (Operation, error) {
	switch sop.Kind {
	case KindFileOperation:
		return Operation{
			Kind:    KindFileOperation,
			From:    URI(sop.From),
			To:      URI(sop.To),
			Options: sop.Options,
		}, nil
	case KindFileTextEdit:
		if sop.URI == "" {
			return Operation{}, fmt.Errorf("%w: text edit without uri", ErrMalformedEdit)
		}
		if sop.Edit == nil {
			return Operation{}, fmt.Errorf("%w: text edit without edit", ErrMalformedEdit)
		}
		return Operation{Kind: KindFileTextEdit, URI: URI(sop.URI), Edit: *sop.Edit}, nil
	default:
		return Operation{}, fmt.Errorf("%w: unknown operation kind %d", ErrMalformedEdit, sop.Kind)
	}
}

// MarshalJSON encodes the edit in its serialized wire form.
func (w *WorkspaceEdit) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Serialize())
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON. Any decode
// failure wraps ErrMalformedEdit.
func (w *WorkspaceEdit) UnmarshalJSON(data []byte) error {
	var s SerializedWorkspaceEdit
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEdit, err)
	}
	decoded, err := FromSerialized(s)
	if err != nil {
		return err
	}
	*w = *decoded
	return nil
}
