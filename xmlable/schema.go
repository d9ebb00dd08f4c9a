/*
Package xmlable renders declaratively described entities into XML element trees.

An entity type declares an ordered Schema of named fields. Entities are built
from named values, checked against the schema, and rendered by Build: scalar
fields become attributes, nested entities become child elements, lists of
entities become repeated child elements. Field names are lower_snake_case,
wire names are PascalCase.
*/
package xmlable

import "fmt"

// Field is one schema entry.
type Field struct {
	Name     string
	Required bool
}

// Required declares a field that must be supplied at construction.
func Required(name string) Field {
	return Field{Name: name, Required: true}
}

// Optional declares a field that may be omitted.
func Optional(name string) Field {
	return Field{Name: name}
}

// Schema is the ordered field list of one entity type.
// Field order is the serialization order.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema declares a schema. Schemas are meant to be package level vars,
// so a duplicated field name panics.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, ok := s.index[f.Name]; ok {
			panic(fmt.Sprintf("xmlable: duplicate field %q in schema %s", f.Name, name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Name returns entity type name.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns (name, required) pairs in declared order.
func (s *Schema) Fields() []Field {
	res := make([]Field, len(s.fields))
	copy(res, s.fields)
	return res
}

// FieldNames returns field names in declared order.
func (s *Schema) FieldNames() []string {
	res := make([]string, len(s.fields))
	for i, f := range s.fields {
		res[i] = f.Name
	}
	return res
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}
