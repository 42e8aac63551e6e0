package value

// Option is the result of sampling an optional shape.
type Option struct {
	Present bool
	Value   any
}

// None returns an absent option.
func None() Option {
	return Option{}
}

// Some returns a present option holding v.
func Some(v any) Option {
	return Option{Present: true, Value: v}
}

// Get returns the held value and whether it is present.
func (o Option) Get() (any, bool) {
	return o.Value, o.Present
}

// Box holds an exclusively owned value. It exists to mirror Indirect shapes
// and has no effect on sampling.
type Box struct {
	Value any
}

// Field is a named member of a record or named-field variant.
type Field struct {
	Name  string
	Value any
}

// Record is a sampled record with fields in declaration order.
type Record struct {
	Name   string
	Fields []Field
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for _, field := range r.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.Fields))
	for i, field := range r.Fields {
		names[i] = field.Name
	}
	return names
}

// VariantKind mirrors the payload layout of the selected variant.
type VariantKind uint8

const (
	VariantUnit VariantKind = iota
	VariantPositional
	VariantNamed
)

// Variant is a sampled union value: the selected variant name and its payload.
type Variant struct {
	Union      string
	Name       string
	Kind       VariantKind
	Positional []any
	Fields     []Field
}

// Get returns a named payload field.
func (v *Variant) Get(name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	for _, field := range v.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Unwrap strips Box and present Option wrappers. An absent option unwraps to
// nil.
func Unwrap(v any) any {
	for {
		switch typed := v.(type) {
		case *Box:
			if typed == nil {
				return nil
			}
			v = typed.Value
		case Box:
			v = typed.Value
		case Option:
			if !typed.Present {
				return nil
			}
			v = typed.Value
		default:
			return v
		}
	}
}
