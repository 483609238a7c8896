package workspace

// Combine merges an ordered list of workspace edits into one. The merged log
// is the concatenation of the inputs in the order given, each input's
// internal order preserved, and diagnostics concatenate the same way.
//
// Zero inputs yield a fresh empty edit. Exactly one input returns that same
// instance without copying: the result aliases the input, and mutations made
// through either reference are visible through both. Two or more inputs are
// concatenated in serialized form and rehydrated through the codec, so the
// result never shares operation storage with any input and every resource
// identifier round-trips through the same codec used for persistence.
func Combine(edits ...*WorkspaceEdit) (*WorkspaceEdit, error) {
	switch len(edits) {
	case 0:
		return NewWorkspaceEdit(), nil
	case 1:
		return edits[0], nil
	}
	var merged SerializedWorkspaceEdit
	for _, e := range edits {
		s := e.Serialize()
		merged.Operations = append(merged.Operations, s.Operations...)
		merged.Diagnostics = append(merged.Diagnostics, s.Diagnostics...)
	}
	return FromSerialized(merged)
}
