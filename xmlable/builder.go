package xmlable

import (
	"strings"
	"unicode"
)

// PascalCase converts lower_snake_case field name to wire name:
// ware_key -> WareKey. Every segment gets upper first rune and lower rest.
func PascalCase(name string) string {
	var sb strings.Builder
	for _, part := range strings.Split(name, "_") {
		for i, r := range []rune(part) {
			if i == 0 {
				sb.WriteRune(unicode.ToUpper(r))
			} else {
				sb.WriteRune(unicode.ToLower(r))
			}
		}
	}
	return sb.String()
}

// Build renders e as element tag, child of parent if parent is not nil.
//
// Fields are visited in schema order. Not set and null fields are skipped.
// Scalars become attributes named PascalCase(field). A nested entity becomes
// a child element tagged PascalCase(field). List items that are entities
// become child elements tagged PascalCase(field); scalar items set the
// attribute, so the last one wins.
func Build(e *Entity, tag string, parent *Element) *Element {
	el := NewElement(tag, parent)
	for _, name := range e.FieldNames() {
		v, ok := e.values[name]
		if !ok {
			continue
		}
		wire := PascalCase(name)
		switch v.kind {
		case KindScalar:
			el.SetAttr(wire, v.text)
		case KindEntity:
			Build(v.entity, wire, el)
		case KindList:
			for _, item := range v.items {
				switch item.kind {
				case KindEntity:
					Build(item.entity, wire, el)
				case KindScalar:
					el.SetAttr(wire, item.text)
				}
			}
		}
	}
	return el
}
