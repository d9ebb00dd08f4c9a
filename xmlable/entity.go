package xmlable

import "sort"

// Fields maps field name to value for New.
type Fields map[string]Value

// Entity is a schema checked set of field values.
// It is write once, Build only reads it.
type Entity struct {
	schema *Schema
	values map[string]Value
}

// New checks fields against schema and builds Entity.
// Missing required fields are reported before unknown ones.
func New(schema *Schema, fields Fields) (*Entity, error) {
	for _, f := range schema.fields {
		if !f.Required {
			continue
		}
		if _, ok := fields[f.Name]; !ok {
			return nil, &MissingRequiredFieldError{Entity: schema.name, Field: f.Name}
		}
	}

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !schema.Has(k) {
				return nil, &UnknownFieldError{Entity: schema.name, Field: k}
			}
		}
	}

	values := make(map[string]Value, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	return &Entity{schema: schema, values: values}, nil
}

// Schema returns entity schema.
func (e *Entity) Schema() *Schema {
	return e.schema
}

// FieldNames returns schema field names in declared order.
func (e *Entity) FieldNames() []string {
	return e.schema.FieldNames()
}

// Get returns field value, ok is false if field was not set.
func (e *Entity) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Text returns scalar text of the field or empty string.
func (e *Entity) Text(name string) string {
	v, ok := e.values[name]
	if !ok {
		return ""
	}
	return v.text
}
