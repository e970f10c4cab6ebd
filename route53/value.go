package route53

import (
	"encoding/xml"
	"io"
	"strings"
)

// Value is one node of a decoded response document: a Scalar string, an
// ordered List, or a Map of child element names. The API's responses vary
// their shape per action, so the decoder keeps them as a generic tree
// instead of one struct type per action.
type Value interface {
	isValue()
}

// Scalar is the text content of a leaf element.
type Scalar string

// List holds repeated sibling elements in document order.
type List []Value

// Map holds an element's children keyed by element name. A name that
// repeats becomes a List.
type Map map[string]Value

func (Scalar) isValue() {}
func (List) isValue()   {}
func (Map) isValue()    {}

// Child returns the named entry of a mapping node, or nil when v is not a
// mapping or has no such child.
func Child(v Value, name string) Value {
	if m, ok := v.(Map); ok {
		return m[name]
	}
	return nil
}

// Seq normalizes v to a list. A single element that could repeat decodes
// as a lone Map, so callers iterating response collections go through Seq.
func Seq(v Value) List {
	switch t := v.(type) {
	case nil:
		return nil
	case List:
		return t
	default:
		return List{t}
	}
}

// Text returns the scalar text of v, or "" when v is not a scalar.
func Text(v Value) string {
	if s, ok := v.(Scalar); ok {
		return string(s)
	}
	return ""
}

// parseDocument decodes an XML document into a Value, dropping the root
// element name: the returned value is the root's content.
func parseDocument(r io.Reader) (Value, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return parseElement(dec, start)
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	children := Map{}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			switch prev := children[name].(type) {
			case nil:
				children[name] = child
			case List:
				children[name] = append(prev, child)
			default:
				children[name] = List{prev, child}
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) > 0 {
				return children, nil
			}
			return Scalar(strings.TrimSpace(text.String())), nil
		}
	}
}
