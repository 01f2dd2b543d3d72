package scml

import (
	"errors"
	"fmt"
	"strings"

	"spriter-scml/internal/xmldoc"
)

var (
	// ErrMissingElement is wrapped when a required child element is absent.
	ErrMissingElement = errors.New("missing element")
	// ErrInvalidElement is wrapped when an element's children contradict each other.
	ErrInvalidElement = errors.New("invalid element")
	// ErrMissingAttribute is wrapped when a required attribute is absent.
	ErrMissingAttribute = xmldoc.ErrMissingAttr
	// ErrInvalidAttribute is wrapped when an attribute does not parse or is out of range.
	ErrInvalidAttribute = xmldoc.ErrInvalidAttr
)

// Error is the single failure returned by a load. Path locates the element,
// e.g. `entity[0 "hero"]/animation[2 "run"]/timeline[4 "arm"]/key[1]`.
type Error struct {
	Path  string
	Attr  string
	Value string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("scml: ")
	b.WriteString(e.Path)
	if e.Attr != "" {
		b.WriteString(": ")
		b.WriteString(e.Attr)
		if e.Value != "" {
			fmt.Fprintf(&b, "=%q", e.Value)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// newAttrError converts an xmldoc attribute error into an Error at path.
func newAttrError(path string, err error) *Error {
	var ae *xmldoc.AttrError
	if errors.As(err, &ae) {
		return &Error{Path: path, Attr: ae.Attr, Value: ae.Value, Err: ae.Err}
	}
	return &Error{Path: path, Err: err}
}

// Warning reports a tolerated problem such as an unknown enum token that was
// replaced by its default.
type Warning struct {
	Path    string
	Attr    string
	Value   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s=%q: %s", w.Path, w.Attr, w.Value, w.Message)
}

func segment(tag string, i int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s[%d]", tag, i)
	}
	return fmt.Sprintf("%s[%d %q]", tag, i, name)
}

func join(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "/" + child
}
