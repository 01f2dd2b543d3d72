package scml

import "spriter-scml/internal/xmldoc"

// attrs reads the attributes of one element and keeps the first error, so
// a run of reads needs a single check at the end.
type attrs struct {
	el   *xmldoc.Element
	path string
	err  error
}

func newAttrs(el *xmldoc.Element, path string) *attrs {
	return &attrs{el: el, path: path}
}

func (a *attrs) fail(err error) {
	if err != nil && a.err == nil {
		a.err = newAttrError(a.path, err)
	}
}

func (a *attrs) str(name string) string {
	if a.err != nil {
		return ""
	}
	v, err := a.el.String(name)
	a.fail(err)
	return v
}

func (a *attrs) strOr(name, def string) string {
	return a.el.StringOr(name, def)
}

func (a *attrs) int(name string) int {
	if a.err != nil {
		return 0
	}
	v, err := a.el.Int(name)
	a.fail(err)
	return v
}

func (a *attrs) intOr(name string, def int) int {
	if a.err != nil {
		return def
	}
	v, err := a.el.IntOr(name, def)
	a.fail(err)
	return v
}

func (a *attrs) floatOr(name string, def float64) float64 {
	if a.err != nil {
		return def
	}
	v, err := a.el.FloatOr(name, def)
	a.fail(err)
	return v
}

func (a *attrs) boolOr(name string, def bool) bool {
	if a.err != nil {
		return def
	}
	v, err := a.el.BoolOr(name, def)
	a.fail(err)
	return v
}
