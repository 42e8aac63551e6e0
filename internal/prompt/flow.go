package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Choices are the request settings the interactive flow fills in.
type Choices struct {
	Shape  string
	Count  int
	Format string
}

// Ask prompts for a shape, a sample count and an output format. defaults
// pre-select the answers; a single candidate shape is chosen without asking.
func Ask(ctx context.Context, driver Driver, shapes, formats []string, defaults Choices) (Choices, error) {
	if driver == nil {
		return Choices{}, errors.New("prompt: driver is required")
	}
	if len(shapes) == 0 {
		return Choices{}, errors.New("prompt: no shapes to choose from")
	}
	out := defaults

	if len(shapes) == 1 {
		out.Shape = shapes[0]
		if err := driver.Info(ctx, fmt.Sprintf("Sampling %s", out.Shape)); err != nil {
			return Choices{}, err
		}
	} else {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "Shape to sample",
			Options:      shapes,
			DefaultIndex: indexOf(shapes, defaults.Shape),
			PageSize:     12,
		})
		if err != nil {
			return Choices{}, err
		}
		if idx < 0 || idx >= len(shapes) {
			return Choices{}, fmt.Errorf("prompt: invalid shape selection %d", idx)
		}
		out.Shape = shapes[idx]
	}

	countDefault := defaults.Count
	if countDefault <= 0 {
		countDefault = 1
	}
	raw, err := driver.Input(ctx, InputConfig{
		Message:   "How many samples?",
		Default:   strconv.Itoa(countDefault),
		Validator: validateCount,
	})
	if err != nil {
		return Choices{}, err
	}
	if err := validateCount(raw); err != nil {
		return Choices{}, err
	}
	out.Count, _ = strconv.Atoi(strings.TrimSpace(raw))

	if len(formats) > 0 {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "Output format",
			Options:      formats,
			DefaultIndex: indexOf(formats, defaults.Format),
		})
		if err != nil {
			return Choices{}, err
		}
		if idx >= 0 && idx < len(formats) {
			out.Format = formats[idx]
		}
	}
	return out, nil
}

func validateCount(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fmt.Errorf("prompt: count must be a positive integer, got %q", raw)
	}
	return nil
}
