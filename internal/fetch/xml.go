package fetch

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// XmlElement is a loosely typed xml tree, the shape adapters walk when a payload has no fixed
// schema worth declaring structs for.
type XmlElement struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*XmlElement
}

// Child returns the first direct child with the given name.
func (e *XmlElement) Child(name string) *XmlElement {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *XmlElement) ChildrenNamed(name string) []*XmlElement {
	if e == nil {
		return nil
	}
	var out []*XmlElement
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *XmlElement) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	value, ok := e.Attrs[name]
	return value, ok
}

// Path follows a chain of child names, each step takes the first match.
func (e *XmlElement) Path(names ...string) *XmlElement {
	current := e
	for _, name := range names {
		current = current.Child(name)
		if current == nil {
			return nil
		}
	}
	return current
}

var errNoRootElement = errors.New("no root element")

// parseXml reads the document's root element, namespaces are dropped from names. Text is the
// trimmed concatenation of an element's own character data.
func parseXml(content string) (*XmlElement, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Strict = false

	var root *XmlElement
	var stack []*XmlElement
	var text []*strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			el := &XmlElement{
				Name:  t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			el := stack[len(stack)-1]
			el.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, errNoRootElement
	}
	return root, nil
}
