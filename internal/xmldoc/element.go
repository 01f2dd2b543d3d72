package xmldoc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMissingAttr is wrapped by AttrError when a required attribute is absent.
	ErrMissingAttr = errors.New("missing attribute")
	// ErrInvalidAttr is wrapped by AttrError when an attribute does not parse.
	ErrInvalidAttr = errors.New("invalid attribute")
)

// AttrError describes a required or malformed attribute on an element.
type AttrError struct {
	Element string
	Attr    string
	Value   string
	Err     error
}

func (e *AttrError) Error() string {
	if errors.Is(e.Err, ErrMissingAttr) {
		return fmt.Sprintf("<%s>: missing attribute %q", e.Element, e.Attr)
	}
	return fmt.Sprintf("<%s>: attribute %s=%q: %v", e.Element, e.Attr, e.Value, e.Err)
}

func (e *AttrError) Unwrap() error { return e.Err }

// Attr is a single name/value attribute pair in document order.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a parsed document. Text content is not kept.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// Attr returns the raw value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the attribute is present.
func (e *Element) Has(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Child returns the first child with the given tag name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenByName returns all children with the given tag name in document order.
func (e *Element) ChildrenByName(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *Element) missing(name string) error {
	return &AttrError{Element: e.Name, Attr: name, Err: ErrMissingAttr}
}

func (e *Element) invalid(name, value string, err error) error {
	return &AttrError{Element: e.Name, Attr: name, Value: value, Err: fmt.Errorf("%w: %v", ErrInvalidAttr, err)}
}

// String returns a required string attribute.
func (e *Element) String(name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", e.missing(name)
	}
	return v, nil
}

// StringOr returns the attribute value or def when absent.
func (e *Element) StringOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Int returns a required integer attribute.
func (e *Element) Int(name string) (int, error) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, e.missing(name)
	}
	return e.parseInt(name, v)
}

// IntOr returns an integer attribute or def when absent.
// A present but malformed value is still an error.
func (e *Element) IntOr(name string, def int) (int, error) {
	v, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	return e.parseInt(name, v)
}

// Integers are sometimes written with a zero fractional part ("12.000000").
// Any other fraction is rejected.
func (e *Element) parseInt(name, v string) (int, error) {
	s := strings.TrimSpace(v)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, e.invalid(name, v, err)
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, e.invalid(name, v, errors.New("not an integer"))
	}
	return int(f), nil
}

// Float returns a required floating point attribute.
func (e *Element) Float(name string) (float64, error) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, e.missing(name)
	}
	return e.parseFloat(name, v)
}

// FloatOr returns a floating point attribute or def when absent.
func (e *Element) FloatOr(name string, def float64) (float64, error) {
	v, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	return e.parseFloat(name, v)
}

func (e *Element) parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, e.invalid(name, v, err)
	}
	return f, nil
}

// Bool returns a required boolean attribute.
func (e *Element) Bool(name string) (bool, error) {
	v, ok := e.Attr(name)
	if !ok {
		return false, e.missing(name)
	}
	return e.parseBool(name, v)
}

// BoolOr returns a boolean attribute or def when absent.
func (e *Element) BoolOr(name string, def bool) (bool, error) {
	v, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	return e.parseBool(name, v)
}

func (e *Element) parseBool(name, v string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, e.invalid(name, v, err)
	}
	return b, nil
}
