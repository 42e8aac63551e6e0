package shape

// Scalar constructors. Int and Float default to 64 bits.

func IntOf(bits uint8) Primitive {
	return Primitive{Type: Int, Bits: bits}
}

func UintOf(bits uint8) Primitive {
	return Primitive{Type: Int, Bits: bits, Unsigned: true}
}

func Int8() Primitive {
	return IntOf(8)
}

func Int16() Primitive {
	return IntOf(16)
}

func Int32() Primitive {
	return IntOf(32)
}

func Int64() Primitive {
	return IntOf(64)
}

func Uint8() Primitive {
	return UintOf(8)
}

func Uint16() Primitive {
	return UintOf(16)
}

func Uint32() Primitive {
	return UintOf(32)
}

func Uint64() Primitive {
	return UintOf(64)
}

func Float32() Primitive {
	return Primitive{Type: Float, Bits: 32}
}

func Float64() Primitive {
	return Primitive{Type: Float, Bits: 64}
}

func Text() Primitive {
	return Primitive{Type: String}
}

func Boolean() Primitive {
	return Primitive{Type: Bool}
}

func FloatOf(bits uint8) Primitive {
	return Primitive{Type: Float, Bits: bits}
}

func OptionalOf(inner Shape) Shape {
	return Optional{Inner: inner}
}

func SequenceOf(elem Shape) Shape {
	return Sequence{Elem: elem}
}

func IndirectOf(inner Shape) Shape {
	return Indirect{Inner: inner}
}

func FieldOf(name string, s Shape) Field {
	return Field{Name: name, Shape: s}
}

// RecordOf builds a record shape from fields in declaration order.
func RecordOf(name string, fields ...Field) Record {
	return Record{Name: name, Fields: append([]Field(nil), fields...)}
}

// UnionOf builds a union shape from variants in declaration order.
func UnionOf(name string, variants ...Variant) Union {
	return Union{Name: name, Variants: append([]Variant(nil), variants...)}
}

// Unit declares a variant without payload.
func Unit(name string) Variant {
	return Variant{Name: name, Payload: NoPayload{}}
}

// Tuple declares a variant with positional fields.
func Tuple(name string, elems ...Shape) Variant {
	return Variant{Name: name, Payload: PositionalFields(append([]Shape(nil), elems...))}
}

// Struct declares a variant with named fields.
func Struct(name string, fields ...Field) Variant {
	return Variant{Name: name, Payload: NamedFields(append([]Field(nil), fields...))}
}
