package structured_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-samplify/pkg/render"
	"github.com/goliatone/go-samplify/pkg/renderers/structured"
	"github.com/goliatone/go-samplify/pkg/value"
)

func payment(currency string, amount float64) *value.Record {
	return &value.Record{
		Name: "Payment",
		Fields: []value.Field{
			{Name: "currency", Value: currency},
			{Name: "amount", Value: amount},
			{Name: "note", Value: value.None()},
		},
	}
}

func TestJSON_SingleSampleIsBareValue(t *testing.T) {
	batch := render.NewBatch("Payment", 7, true, []any{payment("USD", 12.5)})

	out, err := structured.NewJSON().Render(context.Background(), batch, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{
  "currency": "USD",
  "amount": 12.5,
  "note": null
}
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_ManySamplesAreAnArray(t *testing.T) {
	batch := render.NewBatch("Payment", 7, true, []any{payment("USD", 1), payment("EUR", 2)})

	out, err := structured.NewJSON(structured.WithIndent("")).Render(context.Background(), batch, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `[{"currency":"USD","amount":1,"note":null},{"currency":"EUR","amount":2,"note":null}]` + "\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_EmptyBatch(t *testing.T) {
	batch := render.NewBatch("Payment", 0, false, nil)

	out, err := structured.NewJSON().Render(context.Background(), batch, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "[]\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestJSON_Envelope(t *testing.T) {
	batch := render.NewBatch("Payment", 7, true, []any{payment("USD", 12.5)})

	out, err := structured.NewJSON(structured.WithIndent("")).Render(context.Background(), batch, render.RenderOptions{Envelope: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := fmt.Sprintf(`{"run_id":%q,"shape":"Payment","seed":7,"count":1,"samples":[{"currency":"USD","amount":12.5,"note":null}]}`+"\n", batch.RunID.String())
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_EnvelopeOmitsSeedWhenUnseeded(t *testing.T) {
	batch := render.NewBatch("Payment", 0, false, []any{payment("USD", 1)})

	out, err := structured.NewJSON().Render(context.Background(), batch, render.RenderOptions{Envelope: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), `"seed"`) {
		t.Fatalf("unseeded envelope should omit seed:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	batch := render.NewBatch("Payment", 7, true, []any{payment("USD", 1), payment("EUR", 2)})

	out, err := structured.NewNDJSON().Render(context.Background(), batch, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"currency":"USD","amount":1,"note":null}
{"currency":"EUR","amount":2,"note":null}
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("ndjson mismatch (-want +got):\n%s", diff)
	}

	out, err = structured.NewNDJSON().Render(context.Background(), batch, render.RenderOptions{Envelope: true})
	if err != nil {
		t.Fatalf("render envelope: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	wantSecond := fmt.Sprintf(`{"run_id":%q,"shape":"Payment","index":1,"sample":{"currency":"EUR","amount":2,"note":null}}`, batch.RunID.String())
	if lines[1] != wantSecond {
		t.Fatalf("unexpected envelope line\nwant: %s\n got: %s", wantSecond, lines[1])
	}
}

func TestYAML_KeepsFieldOrder(t *testing.T) {
	status := &value.Variant{
		Union: "Status",
		Name:  "Suspended",
		Kind:  value.VariantNamed,
		Fields: []value.Field{
			{Name: "reason", Value: "fraud"},
		},
	}
	rec := &value.Record{
		Name: "Account",
		Fields: []value.Field{
			{Name: "zeta", Value: int64(1)},
			{Name: "alpha", Value: []any{"a", "b"}},
			{Name: "status", Value: status},
			{Name: "parent", Value: value.None()},
		},
	}
	batch := render.NewBatch("Account", 1, true, []any{rec})

	out, err := structured.NewYAML().Render(context.Background(), batch, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `zeta: 1
alpha:
  - a
  - b
status:
  Suspended:
    reason: fraud
parent: null
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_Envelope(t *testing.T) {
	batch := render.NewBatch("Payment", 7, true, []any{payment("USD", 1), payment("EUR", 2)})

	out, err := structured.NewYAML().Render(context.Background(), batch, render.RenderOptions{Envelope: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := fmt.Sprintf(`run_id: %s
shape: Payment
seed: 7
count: 2
samples:
  - currency: USD
    amount: 1
    note: null
  - currency: EUR
    amount: 2
    note: null
`, batch.RunID.String())
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderers_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := render.NewBatch("Payment", 7, true, []any{payment("USD", 1)})
	for _, r := range structured.Renderers() {
		if _, err := r.Render(ctx, batch, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
			t.Fatalf("%s: expected context.Canceled, got %v", r.Name(), err)
		}
	}
}

func TestRenderers_RegisterByName(t *testing.T) {
	reg, err := render.NewRegistry(structured.Renderers()...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"json", "ndjson", "yaml"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	r, err := reg.Get(" YAML ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.ContentType() != "application/yaml" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}
