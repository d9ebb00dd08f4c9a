package xmlable

// Attr is XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a minimal XML element tree node: ordered attributes,
// ordered children and trimmed character data.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// NewElement creates element, appended to parent if parent is not nil.
func NewElement(tag string, parent *Element) *Element {
	el := &Element{Tag: tag}
	if parent != nil {
		parent.AddChild(el)
	}
	return el
}

// AddChild appends child.
func (el *Element) AddChild(child *Element) {
	el.Children = append(el.Children, child)
}

// Attr returns attribute value, ok is false if attribute is absent.
func (el *Element) Attr(name string) (string, bool) {
	for _, a := range el.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets attribute, existing one keeps its position and gets new value.
func (el *Element) SetAttr(name, value string) {
	for i := range el.Attrs {
		if el.Attrs[i].Name == name {
			el.Attrs[i].Value = value
			return
		}
	}
	el.Attrs = append(el.Attrs, Attr{Name: name, Value: value})
}

// Find returns first direct child with tag or nil.
func (el *Element) Find(tag string) *Element {
	for _, c := range el.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns direct children with tag in document order.
func (el *Element) FindAll(tag string) []*Element {
	var res []*Element
	for _, c := range el.Children {
		if c.Tag == tag {
			res = append(res, c)
		}
	}
	return res
}
