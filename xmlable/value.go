package xmlable

import (
	"strconv"
	"time"
)

// Kind tags a Value.
type Kind int

const (
	//KindNull is explicit null, never rendered
	KindNull Kind = iota
	//KindScalar is rendered as attribute
	KindScalar
	//KindEntity is rendered as child element
	KindEntity
	//KindList is rendered as repeated child elements (or attribute for scalar items)
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindEntity:
		return "entity"
	case KindList:
		return "list"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a field value tagged at construction time.
// The zero Value is explicit null.
type Value struct {
	kind   Kind
	text   string
	entity *Entity
	items  []Value
}

// Kind returns value tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports explicit null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns scalar text form, empty for other kinds.
func (v Value) Text() string {
	return v.text
}

// Entity returns nested entity or nil.
func (v Value) Entity() *Entity {
	return v.entity
}

// Items returns list items or nil.
func (v Value) Items() []Value {
	return v.items
}

// Null returns explicit null value.
func Null() Value {
	return Value{}
}

// String returns scalar value.
func String(s string) Value {
	return Value{kind: KindScalar, text: s}
}

// Int returns scalar value.
func Int(i int) Value {
	return String(strconv.Itoa(i))
}

// Int64 returns scalar value.
func Int64(i int64) Value {
	return String(strconv.FormatInt(i, 10))
}

// Float returns scalar value in shortest decimal form, 7500 not 7.5e+03.
func Float(f float64) Value {
	return String(strconv.FormatFloat(f, 'f', -1, 64))
}

// Bool returns scalar value.
func Bool(b bool) Value {
	return String(strconv.FormatBool(b))
}

// TimeLayout is ISO 8601 date and time without zone, as carrier expects.
const TimeLayout = "2006-01-02T15:04:05"

// DateLayout is ISO 8601 date.
const DateLayout = "2006-01-02"

// ClockLayout is ISO 8601 time of day.
const ClockLayout = "15:04:05"

// Time returns scalar value formatted by TimeLayout.
func Time(t time.Time) Value {
	return String(t.Format(TimeLayout))
}

// Date returns scalar value formatted by DateLayout.
func Date(t time.Time) Value {
	return String(t.Format(DateLayout))
}

// Clock returns scalar value formatted by ClockLayout.
func Clock(t time.Time) Value {
	return String(t.Format(ClockLayout))
}

// Of wraps nested entity, nil gives explicit null.
func Of(e *Entity) Value {
	if e == nil {
		return Null()
	}
	return Value{kind: KindEntity, entity: e}
}

// List returns list value.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Entities returns list of entities.
func Entities(es ...*Entity) Value {
	items := make([]Value, 0, len(es))
	for _, e := range es {
		items = append(items, Of(e))
	}
	return List(items...)
}

// OptString returns explicit null for empty s.
func OptString(s string) Value {
	if s == "" {
		return Null()
	}
	return String(s)
}

// OptInt returns explicit null for zero i.
func OptInt(i int) Value {
	if i == 0 {
		return Null()
	}
	return Int(i)
}

// OptFloat returns explicit null for zero f.
func OptFloat(f float64) Value {
	if f == 0 {
		return Null()
	}
	return Float(f)
}

// OptTime returns explicit null for zero t.
func OptTime(t time.Time, layout string) Value {
	if t.IsZero() {
		return Null()
	}
	return String(t.Format(layout))
}
