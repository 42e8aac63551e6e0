package shape

import (
	"strconv"
	"strings"
)

// Kind identifies the structural category of a Shape.
type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindOptional
	KindSequence
	KindIndirect
	KindRecord
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindOptional:
		return "optional"
	case KindSequence:
		return "sequence"
	case KindIndirect:
		return "indirect"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Shape describes the structure of a value type. The set of implementations
// is closed: Primitive, Optional, Sequence, Indirect, Record and Union.
type Shape interface {
	Kind() Kind
	String() string
	sealed()
}

// PrimitiveType enumerates scalar kinds.
type PrimitiveType uint8

const (
	Int PrimitiveType = iota + 1
	Float
	String
	Bool
)

func (t PrimitiveType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return "primitive(" + strconv.Itoa(int(t)) + ")"
	}
}

// Primitive is a scalar shape. Bits selects the integer (8, 16, 32, 64) or
// float (32, 64) width; Unsigned applies to integers only.
type Primitive struct {
	Type     PrimitiveType
	Bits     uint8
	Unsigned bool
}

// Optional wraps a shape whose value may be absent.
type Optional struct {
	Inner Shape
}

// Sequence is a variable-length collection of Elem values.
type Sequence struct {
	Elem Shape
}

// Indirect expresses single ownership of the inner value. It does not change
// how the value is sampled.
type Indirect struct {
	Inner Shape
}

// Field is a named member of a record or of a variant with named fields.
type Field struct {
	Name  string
	Shape Shape
}

// Record is a fixed set of named fields in declaration order.
type Record struct {
	Name   string
	Fields []Field
}

// Union is a tagged union of named variants in declaration order.
type Union struct {
	Name     string
	Variants []Variant
}

// Variant is one alternative of a Union.
type Variant struct {
	Name    string
	Payload Payload
}

// PayloadKind identifies the layout of a variant payload.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota + 1
	PayloadPositional
	PayloadNamed
)

// Payload is the data carried by a variant. Implementations are NoPayload,
// PositionalFields and NamedFields.
type Payload interface {
	PayloadKind() PayloadKind
	sealedPayload()
}

// NoPayload marks a variant without data.
type NoPayload struct{}

// PositionalFields is a variant payload addressed by position. Config keys
// are "field0", "field1" and so on.
type PositionalFields []Shape

// NamedFields is a variant payload addressed by field name.
type NamedFields []Field

func (Primitive) Kind() Kind { return KindPrimitive }
func (Optional) Kind() Kind  { return KindOptional }
func (Sequence) Kind() Kind  { return KindSequence }
func (Indirect) Kind() Kind  { return KindIndirect }
func (Record) Kind() Kind    { return KindRecord }
func (Union) Kind() Kind     { return KindUnion }

func (Primitive) sealed() {}
func (Optional) sealed()  {}
func (Sequence) sealed()  {}
func (Indirect) sealed()  {}
func (Record) sealed()    {}
func (Union) sealed()     {}

func (NoPayload) PayloadKind() PayloadKind        { return PayloadNone }
func (PositionalFields) PayloadKind() PayloadKind { return PayloadPositional }
func (NamedFields) PayloadKind() PayloadKind      { return PayloadNamed }

func (NoPayload) sealedPayload()        {}
func (PositionalFields) sealedPayload() {}
func (NamedFields) sealedPayload()      {}

// Len reports how many fields a variant payload declares.
func (v Variant) Len() int {
	switch p := v.Payload.(type) {
	case PositionalFields:
		return len(p)
	case NamedFields:
		return len(p)
	default:
		return 0
	}
}

// Field returns the named field of the record.
func (r Record) Field(name string) (Field, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Variant returns the named variant of the union.
func (u Union) Variant(name string) (Variant, bool) {
	for _, variant := range u.Variants {
		if variant.Name == name {
			return variant, true
		}
	}
	return Variant{}, false
}

// VariantNames returns the declared variant names in order.
func (u Union) VariantNames() []string {
	names := make([]string, len(u.Variants))
	for i, variant := range u.Variants {
		names[i] = variant.Name
	}
	return names
}

func (p Primitive) String() string {
	switch p.Type {
	case Int:
		prefix := "int"
		if p.Unsigned {
			prefix = "uint"
		}
		return prefix + strconv.Itoa(int(p.bits()))
	case Float:
		return "float" + strconv.Itoa(int(p.bits()))
	default:
		return p.Type.String()
	}
}

func (o Optional) String() string { return "optional<" + describe(o.Inner) + ">" }
func (s Sequence) String() string { return "sequence<" + describe(s.Elem) + ">" }
func (i Indirect) String() string { return "indirect<" + describe(i.Inner) + ">" }

func (r Record) String() string {
	var b strings.Builder
	if r.Name != "" {
		b.WriteString(r.Name)
		b.WriteByte(' ')
	}
	b.WriteString("{")
	for i, field := range r.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(describe(field.Shape))
	}
	b.WriteString("}")
	return b.String()
}

func (u Union) String() string {
	var b strings.Builder
	if u.Name != "" {
		b.WriteString(u.Name)
		b.WriteByte(' ')
	}
	b.WriteString("<")
	for i, variant := range u.Variants {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(variant.Name)
		switch payload := variant.Payload.(type) {
		case PositionalFields:
			b.WriteString("(")
			for j, elem := range payload {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(describe(elem))
			}
			b.WriteString(")")
		case NamedFields:
			b.WriteString(Record{Fields: payload}.String())
		}
	}
	b.WriteString(">")
	return b.String()
}

// bits returns the declared width, falling back to 64 when unset.
func (p Primitive) bits() uint8 {
	if p.Bits == 0 {
		return 64
	}
	return p.Bits
}

// Width returns the effective bit width of numeric primitives.
func (p Primitive) Width() int {
	return int(p.bits())
}

func describe(s Shape) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
