package validate

import "strings"

// Issue codes reported by Apply. Codes are stable identifiers; messages are
// the human-readable surface the form layer forwards to callers.
const (
	CodeRequired  = "required"
	CodeType      = "type"
	CodeMin       = "min"
	CodeMax       = "max"
	CodeMinLength = "minLength"
	CodeMaxLength = "maxLength"
	CodePattern   = "pattern"
	CodeEnum      = "enum"
)

// Issue is one structured validation failure: where it happened, a stable
// code, and a message suitable for end users. Paths use dotted notation
// ("field" or "field.0.part"); the first segment names the owning field.
type Issue struct {
	Path    string
	Code    string
	Message string
}

// FieldName returns the first path segment, the key under which the form
// layer files the issue.
func (i Issue) FieldName() string {
	if idx := strings.IndexByte(i.Path, '.'); idx >= 0 {
		return i.Path[:idx]
	}
	return i.Path
}

func issueAt(path, code, msg string) Issue {
	return Issue{Path: path, Code: code, Message: msg}
}
