package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrEmptyDocument is returned when the input has no root element.
var ErrEmptyDocument = errors.New("xmldoc: no root element")

// ParseFile reads and parses an XML file.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xmldoc: open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("xmldoc: parse %s: %w", path, err)
	}
	return root, nil
}

// Parse builds an element tree from r and returns the root element.
// Documents declaring a non-UTF-8 encoding are transcoded on the fly.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmldoc: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.Attrs = make([]Attr, 0, len(t.Attr))
				for _, a := range t.Attr {
					el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xmldoc: multiple root elements (<%s> after <%s>)", el.Name, root.Name)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
