package shape

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func statusShape() Union {
	return UnionOf("Status",
		Unit("Active"),
		Unit("Inactive"),
		Struct("Suspended", FieldOf("reason", Text())),
	)
}

func TestValidate_WellFormed(t *testing.T) {
	payment := RecordOf("PaymentInstruction",
		FieldOf("currency", Text()),
		FieldOf("amount", Float64()),
		FieldOf("retries", OptionalOf(Uint8())),
		FieldOf("tags", SequenceOf(Text())),
		FieldOf("status", IndirectOf(statusShape())),
		FieldOf("point", UnionOf("Point", Tuple("XY", Int32(), Int32()))),
	)
	if err := Validate(payment); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]struct {
		shape Shape
		want  string
	}{
		"nil": {
			shape: nil,
			want:  "shape is nil",
		},
		"nested nil": {
			shape: RecordOf("R", FieldOf("a", SequenceOf(nil))),
			want:  "at $.a[]",
		},
		"duplicate field": {
			shape: RecordOf("R", FieldOf("a", Text()), FieldOf("a", Boolean())),
			want:  `duplicate field "a"`,
		},
		"empty field name": {
			shape: RecordOf("R", FieldOf(" ", Text())),
			want:  "field name is empty",
		},
		"duplicate variant": {
			shape: UnionOf("U", Unit("A"), Unit("A")),
			want:  `duplicate variant "A"`,
		},
		"bad int width": {
			shape: IntOf(12),
			want:  "unsupported integer width 12",
		},
		"bad float width": {
			shape: FloatOf(16),
			want:  "unsupported float width 16",
		},
		"width on string": {
			shape: Primitive{Type: String, Bits: 8},
			want:  "string takes no width",
		},
		"positional nil": {
			shape: UnionOf("U", Tuple("T", Text(), nil)),
			want:  "at $.T.field1",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(tc.shape)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestShape_String(t *testing.T) {
	record := RecordOf("Profile",
		FieldOf("age", Uint16()),
		FieldOf("nick", OptionalOf(Text())),
		FieldOf("prefs", SequenceOf(Text())),
		FieldOf("status", statusShape()),
	)
	want := "Profile {age: uint16, nick: optional<string>, prefs: sequence<string>, status: Status <Active | Inactive | Suspended{reason: string}>}"
	if got := record.String(); got != want {
		t.Fatalf("unexpected string\nwant %s\ngot  %s", want, got)
	}
}

func TestUnion_Lookup(t *testing.T) {
	status := statusShape()
	if diff := cmp.Diff([]string{"Active", "Inactive", "Suspended"}, status.VariantNames()); diff != "" {
		t.Fatalf("variant names mismatch (-want +got):\n%s", diff)
	}
	suspended, ok := status.Variant("Suspended")
	if !ok {
		t.Fatalf("expected Suspended variant")
	}
	if suspended.Len() != 1 || suspended.Payload.PayloadKind() != PayloadNamed {
		t.Fatalf("unexpected payload %#v", suspended.Payload)
	}
	if _, ok := status.Variant("Missing"); ok {
		t.Fatalf("unexpected variant Missing")
	}
}

type paymentType struct{}

func (paymentType) SampleShape() Shape {
	return RecordOf("Payment", FieldOf("amount", Float64()))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterProvider("Payment", paymentType{}); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	reg.MustRegister("Status", statusShape())

	if err := reg.Register("Status", statusShape()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register("Broken", RecordOf("B", FieldOf("x", nil))); err == nil {
		t.Fatalf("expected validation error")
	}
	if diff := cmp.Diff([]string{"Payment", "Status"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := reg.Get("Payment")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Kind() != KindRecord {
		t.Fatalf("expected record, got %s", got.Kind())
	}
	if _, err := reg.Get("Nope"); err == nil {
		t.Fatalf("expected missing shape error")
	}

	merged := NewRegistry()
	if err := merged.Merge(reg); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Len() != 2 || !merged.Has("Status") {
		t.Fatalf("merge lost shapes: %v", merged.List())
	}
}
