package workspace

// URI is an opaque resource identifier. Two URIs address the same resource
// iff their canonical string forms are equal; no canonicalization (case
// folding, relative/absolute resolution) is performed, so identifiers that
// render differently are distinct resources even if a file system would
// resolve them to the same file.
type URI string

// String returns the canonical string form.
func (u URI) String() string {
	return string(u)
}

// IsZero reports whether the identifier is unset. File operations use the
// zero URI to mark an absent source or destination.
func (u URI) IsZero() bool {
	return u == ""
}
