package workspace

import "errors"

// ErrMalformedEdit indicates a serialized workspace edit that cannot be
// decoded: an unrecognized operation discriminant, a text edit missing its
// resource or edit payload, or input that is not valid JSON.
var ErrMalformedEdit = errors.New("malformed workspace edit")
