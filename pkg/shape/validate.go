package shape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("shape: invalid")

// Validate checks that s is well formed: no nil shapes, non-empty and unique
// field and variant names, and supported primitive widths. Cycles cannot be
// built from value shapes, so none are checked here.
func Validate(s Shape) error {
	return validate(s, "$")
}

// MustValidate panics if s is not well formed.
func MustValidate(s Shape) Shape {
	if err := Validate(s); err != nil {
		panic(err)
	}
	return s
}

func validate(s Shape, path string) error {
	switch typed := s.(type) {
	case nil:
		return invalid(path, "shape is nil")
	case Primitive:
		return validatePrimitive(typed, path)
	case Optional:
		return validate(typed.Inner, path+"?")
	case Sequence:
		return validate(typed.Elem, path+"[]")
	case Indirect:
		return validate(typed.Inner, path)
	case Record:
		return validateFields(typed.Fields, path)
	case Union:
		if len(typed.Variants) == 0 {
			return nil
		}
		seen := make(map[string]struct{}, len(typed.Variants))
		for _, variant := range typed.Variants {
			name := variant.Name
			if strings.TrimSpace(name) == "" {
				return invalid(path, "variant name is empty")
			}
			if _, dup := seen[name]; dup {
				return invalid(path, fmt.Sprintf("duplicate variant %q", name))
			}
			seen[name] = struct{}{}
			if err := validatePayload(variant.Payload, path+"."+name); err != nil {
				return err
			}
		}
		return nil
	default:
		return invalid(path, fmt.Sprintf("unsupported shape %T", s))
	}
}

func validatePayload(p Payload, path string) error {
	switch typed := p.(type) {
	case nil, NoPayload:
		return nil
	case PositionalFields:
		for i, elem := range typed {
			if err := validate(elem, path+".field"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return nil
	case NamedFields:
		return validateFields(typed, path)
	default:
		return invalid(path, fmt.Sprintf("unsupported payload %T", p))
	}
}

func validateFields(fields []Field, path string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if strings.TrimSpace(field.Name) == "" {
			return invalid(path, "field name is empty")
		}
		if _, dup := seen[field.Name]; dup {
			return invalid(path, fmt.Sprintf("duplicate field %q", field.Name))
		}
		seen[field.Name] = struct{}{}
		if err := validate(field.Shape, path+"."+field.Name); err != nil {
			return err
		}
	}
	return nil
}

func validatePrimitive(p Primitive, path string) error {
	switch p.Type {
	case Int:
		switch p.Bits {
		case 0, 8, 16, 32, 64:
			return nil
		}
		return invalid(path, fmt.Sprintf("unsupported integer width %d", p.Bits))
	case Float:
		if p.Unsigned {
			return invalid(path, "floats cannot be unsigned")
		}
		switch p.Bits {
		case 0, 32, 64:
			return nil
		}
		return invalid(path, fmt.Sprintf("unsupported float width %d", p.Bits))
	case String, Bool:
		if p.Bits != 0 || p.Unsigned {
			return invalid(path, fmt.Sprintf("%s takes no width", p.Type))
		}
		return nil
	default:
		return invalid(path, fmt.Sprintf("unknown primitive type %d", p.Type))
	}
}

func invalid(path, msg string) error {
	return fmt.Errorf("%w: %s at %s", ErrInvalid, msg, path)
}
