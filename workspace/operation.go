package workspace

// OperationKind discriminates the operation union. The numeric values are
// part of the wire format.
type OperationKind uint8

const (
	// KindFileOperation is a file-level create, delete, or rename.
	KindFileOperation OperationKind = 1
	// KindFileTextEdit is a text mutation within a single resource.
	KindFileTextEdit OperationKind = 2
)

// FileOperationOptions carries host-interpreted flags for file operations.
// The model stores and serializes them without validation; legality (for
// example Overwrite together with IgnoreIfExists) is checked by the host at
// application time.
type FileOperationOptions struct {
	Overwrite         bool `json:"overwrite,omitempty"`
	IgnoreIfExists    bool `json:"ignoreIfExists,omitempty"`
	IgnoreIfNotExists bool `json:"ignoreIfNotExists,omitempty"`
	Recursive         bool `json:"recursive,omitempty"`
}

// Operation is one entry in a workspace edit log, selected by Kind.
//
// For KindFileOperation, a zero From with a set To is a create, a set From
// with a zero To is a delete, and both set is a rename/move. For
// KindFileTextEdit, URI and Edit carry the payload.
type Operation struct {
	Kind OperationKind

	// File operation payload.
	From    URI
	To      URI
	Options *FileOperationOptions

	// Text edit payload.
	URI  URI
	Edit TextEdit
}

// IsCreate reports whether the operation creates a resource.
func (op Operation) IsCreate() bool {
	return op.Kind == KindFileOperation && op.From.IsZero() && !op.To.IsZero()
}

// IsDelete reports whether the operation deletes a resource.
func (op Operation) IsDelete() bool {
	return op.Kind == KindFileOperation && !op.From.IsZero() && op.To.IsZero()
}

// IsRename reports whether the operation renames or moves a resource.
func (op Operation) IsRename() bool {
	return op.Kind == KindFileOperation && !op.From.IsZero() && !op.To.IsZero()
}
