package samplify_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-samplify"
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/sample"
	"github.com/goliatone/go-samplify/pkg/shape"
)

type transfer struct {
	Currency string   `json:"currency"`
	Amount   float64  `json:"amount"`
	Memo     *string  `json:"memo"`
	Tags     []string `json:"tags"`
}

func (transfer) SampleShape() shape.Shape {
	return shape.RecordOf("Transfer",
		shape.FieldOf("currency", shape.Text()),
		shape.FieldOf("amount", shape.Float64()),
		shape.FieldOf("memo", shape.OptionalOf(shape.Text())),
		shape.FieldOf("tags", shape.SequenceOf(shape.Text())),
	)
}

func TestSampleAs(t *testing.T) {
	root := config.MustParse(`{
		"currency": ["USD", "EUR", "GBP"],
		"amount": [10.0, 1000.0],
		"memo": "rent",
		"tags": ["news", "updates", "offers", "events"]
	}`)

	for i := 0; i < 50; i++ {
		got, err := samplify.SampleAs[transfer](root)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		switch got.Currency {
		case "USD", "EUR", "GBP":
		default:
			t.Fatalf("unexpected currency %q", got.Currency)
		}
		if got.Amount < 10 || got.Amount >= 1000 {
			t.Fatalf("amount %v out of range", got.Amount)
		}
		if got.Memo == nil || *got.Memo != "rent" {
			t.Fatalf("expected memo rent, got %v", got.Memo)
		}
		if len(got.Tags) < 1 || len(got.Tags) > 4 {
			t.Fatalf("unexpected tag count %d", len(got.Tags))
		}
	}
}

func TestSampleAs_Errors(t *testing.T) {
	_, err := samplify.SampleAs[transfer](config.MustParse(`{"currency": ["USD"]}`))
	if !errors.Is(err, sample.ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}
}

func TestSampleNAs_Seeded(t *testing.T) {
	root := config.MustParse(`{"currency": ["USD", "EUR"], "amount": [1, 2], "tags": ["a", "b", "c"]}`)

	first, err := samplify.SampleNAs[transfer](context.Background(), root, 4, sample.WithSeed(11))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := samplify.SampleNAs[transfer](context.Background(), root, 4, sample.WithSeed(11))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 values, got %d", len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("seeded batches differ (-first +second):\n%s", diff)
	}
	if first[0].Memo != nil {
		t.Fatalf("absent memo should decode to nil")
	}
}

func TestGenerate_FromFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	configPath := filepath.Join(dir, "config.json")
	schema := `
title: Transfer
type: object
required: [currency, amount]
properties:
  currency: {type: string}
  amount: {type: integer, format: int16}
`
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(`{"currency": "USD", "amount": [3, 4]}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := samplify.Generate(context.Background(),
		document.SourceFromFile(schemaPath),
		document.SourceFromFile(configPath),
		"Transfer", "ndjson",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got, want := string(out), `{"currency":"USD","amount":3}`+"\n"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
