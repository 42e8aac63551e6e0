package sample

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies sampling failures.
type ErrorKind uint8

const (
	MissingConfig ErrorKind = iota + 1
	WrongShape
	EmptyDomain
	InvalidRangeValues
	UnknownVariant
	MissingOrInvalidVariantConfig
	NoVariantsAvailable
)

// Sentinel errors matched by errors.Is against a *SampleError of the same kind.
var (
	ErrMissingConfig                 = errors.New("missing config")
	ErrWrongShape                    = errors.New("wrong config shape")
	ErrEmptyDomain                   = errors.New("empty domain")
	ErrInvalidRangeValues            = errors.New("invalid range values")
	ErrUnknownVariant                = errors.New("unknown variant")
	ErrMissingOrInvalidVariantConfig = errors.New("missing or invalid variant config")
	ErrNoVariantsAvailable           = errors.New("no variants available")
)

func (k ErrorKind) String() string {
	switch k {
	case MissingConfig:
		return "MissingConfig"
	case WrongShape:
		return "WrongShape"
	case EmptyDomain:
		return "EmptyDomain"
	case InvalidRangeValues:
		return "InvalidRangeValues"
	case UnknownVariant:
		return "UnknownVariant"
	case MissingOrInvalidVariantConfig:
		return "MissingOrInvalidVariantConfig"
	case NoVariantsAvailable:
		return "NoVariantsAvailable"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingConfig:
		return ErrMissingConfig
	case WrongShape:
		return ErrWrongShape
	case EmptyDomain:
		return ErrEmptyDomain
	case InvalidRangeValues:
		return ErrInvalidRangeValues
	case UnknownVariant:
		return ErrUnknownVariant
	case MissingOrInvalidVariantConfig:
		return ErrMissingOrInvalidVariantConfig
	case NoVariantsAvailable:
		return ErrNoVariantsAvailable
	default:
		return nil
	}
}

// SampleError reports where and why sampling failed. Path is the dotted
// field path from the root ("$" for the root itself), with [i] for sequence
// elements and the variant name for union payloads. Name is the offending
// field or, for variant errors, the variant name.
type SampleError struct {
	Kind   ErrorKind
	Path   string
	Name   string
	Detail string
}

func (e *SampleError) Error() string {
	path := e.Path
	if path == "" {
		path = "$"
	}
	return fmt.Sprintf("sample: %s: %s", path, e.Detail)
}

// Unwrap exposes the sentinel error for the kind.
func (e *SampleError) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the kind of a sampling error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var sampleErr *SampleError
	if errors.As(err, &sampleErr) {
		return sampleErr.Kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, path, name, format string, args ...any) *SampleError {
	return &SampleError{
		Kind:   kind,
		Path:   path,
		Name:   name,
		Detail: fmt.Sprintf(format, args...),
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
