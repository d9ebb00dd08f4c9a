package xmlable

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// declaration is written the way ElementTree writes it, carrier clients
// replace quotes before sending.
const declaration = "version='1.0' encoding='UTF-8'"

// Encode writes XML document with el as root.
// Attribute values are escaped, so they never contain raw quotes.
func Encode(w io.Writer, el *Element) error {
	enc := xml.NewEncoder(w)
	if err := enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(declaration)}); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData("\n")); err != nil {
		return err
	}
	if err := encodeElement(enc, el); err != nil {
		return err
	}
	return enc.Flush()
}

// Marshal returns XML document with el as root.
func Marshal(el *Element) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, el); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, el *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: el.Tag}}
	for _, a := range el.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if el.Text != "" {
		if err := enc.EncodeToken(xml.CharData(el.Text)); err != nil {
			return err
		}
	}
	for _, c := range el.Children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// ErrEmptyDocument is returned by Decode for a document without root element.
var ErrEmptyDocument = errors.New("xmlable: empty document")

// Decode parses XML document into element tree.
// Declared non UTF-8 encodings are converted, malformed documents fail.
func Decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var parent *Element
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			} else if root != nil {
				return nil, errors.New("xmlable: document has more than one root element")
			}
			el := NewElement(t.Name.Local, parent)
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}
