package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

type scriptedDriver struct {
	selects []int
	inputs  []string
	infos   []string
	asked   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message+" ["+cfg.Default+"]")
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *scriptedDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, fmt.Sprintf("%s %v default=%d", cfg.Message, cfg.Options, cfg.DefaultIndex))
	if len(d.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, SelectConfig) ([]int, error) {
	return nil, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestAsk(t *testing.T) {
	driver := &scriptedDriver{selects: []int{1, 2}, inputs: []string{" 5 "}}

	got, err := Ask(context.Background(), driver,
		[]string{"Account", "Payment"},
		[]string{"json", "ndjson", "yaml"},
		Choices{Format: "json"},
	)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if diff := cmp.Diff(Choices{Shape: "Payment", Count: 5, Format: "yaml"}, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	want := []string{
		"Shape to sample [Account Payment] default=-1",
		"How many samples? [1]",
		"Output format [json ndjson yaml] default=0",
	}
	if diff := cmp.Diff(want, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestAsk_SingleShapeSkipsSelection(t *testing.T) {
	driver := &scriptedDriver{}

	got, err := Ask(context.Background(), driver, []string{"Account"}, nil, Choices{Count: 3, Format: "yaml"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if diff := cmp.Diff(Choices{Shape: "Account", Count: 3, Format: "yaml"}, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Sampling Account"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}

func TestAsk_Errors(t *testing.T) {
	if _, err := Ask(context.Background(), nil, []string{"A"}, nil, Choices{}); err == nil {
		t.Fatalf("expected driver error")
	}
	if _, err := Ask(context.Background(), &scriptedDriver{}, nil, nil, Choices{}); err == nil {
		t.Fatalf("expected empty shapes error")
	}
	if _, err := Ask(context.Background(), &scriptedDriver{inputs: []string{"zero"}}, []string{"A"}, nil, Choices{}); err == nil {
		t.Fatalf("expected invalid count error")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestValidateCount(t *testing.T) {
	for _, raw := range []string{"1", " 12 "} {
		if err := validateCount(raw); err != nil {
			t.Fatalf("%q: unexpected error %v", raw, err)
		}
	}
	for _, raw := range []string{"", "0", "-3", "many"} {
		if err := validateCount(raw); err == nil {
			t.Fatalf("%q: expected error", raw)
		}
	}
}
