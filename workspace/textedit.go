package workspace

// TextEdit replaces the text covered by Range with NewText. The zero range
// width expresses a pure insertion; empty NewText expresses a deletion.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}
