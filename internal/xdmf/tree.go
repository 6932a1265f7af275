package xdmf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Node is the read-only view of a description element the loader needs.
// Child returns nil when no child of that name exists.
type Node interface {
	Name() string
	Attr(name string) (string, bool)
	Text() string
	Child(name string) Node
}

// Element is a generic XML element tree built by Parse.
type Element struct {
	XMLName  string
	Attrs    map[string]string
	Children []*Element
	CharData string
}

func (e *Element) Name() string { return e.XMLName }

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Text returns the concatenated character data directly inside e.
func (e *Element) Text() string { return e.CharData }

// Child returns the first child element with the given local name.
func (e *Element) Child(name string) Node {
	for _, c := range e.Children {
		if c.XMLName == name {
			return c
		}
	}
	return nil
}

// Parse reads a whole XML document and returns its root element.
// Namespaces are dropped; XDMF files use local names only.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Element
		stack []*Element
		text  []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xdmf: parse: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{XMLName: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xdmf: parse: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(stack) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			el := stack[len(stack)-1]
			el.CharData = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xdmf: parse: empty document")
	}
	return root, nil
}

// ParseFile reads and parses an XDMF description from disk.
func ParseFile(path string) (*Element, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xdmf: read %s: %w", path, err)
	}
	root, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return root, nil
}
