package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-samplify"
	"github.com/goliatone/go-samplify/internal/prompt"
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/orchestrator"
	"github.com/goliatone/go-samplify/pkg/render"
	"github.com/goliatone/go-samplify/pkg/sample"
)

func main() {
	shapes := flag.String("shapes", "", "JSON Schema or OpenAPI document path or URL")
	shapeName := flag.String("shape", "", "shape to sample (prompted for when empty on a terminal)")
	cfg := flag.String("config", "", "sampling configuration path or URL, - reads stdin")
	overlay := flag.String("overlay", "", "configuration overlay merged over the selected config")
	selectExpr := flag.String("select", "", "jq expression picking the config sub-tree")
	count := flag.Int("count", 1, "number of samples")
	seed := flag.String("seed", "", "seed for reproducible output")
	format := flag.String("format", "json", "output format")
	tmpl := flag.String("template", "", "template file for the template format")
	strict := flag.Bool("strict-variants", false, "validate every listed variant name")
	parallel := flag.Int("parallel", 0, "sample record fields on up to N goroutines")
	envelope := flag.Bool("envelope", false, "wrap samples with run metadata")
	interactive := flag.Bool("interactive", false, "prompt for the shape, count and format")
	output := flag.String("output", "", "output file (stdout if empty)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	configSource, err := parseConfigSource(*cfg, os.Stdin)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	var shapeSource document.Source
	if strings.TrimSpace(*shapes) != "" {
		shapeSource, err = document.ParseSource(*shapes)
		if err != nil {
			log.Fatalf("invalid shapes: %v", err)
		}
	}

	var samplerOpts []sample.Option
	if *strict {
		samplerOpts = append(samplerOpts, sample.WithStrictVariants())
	}
	if *parallel > 0 {
		samplerOpts = append(samplerOpts, sample.WithParallelism(*parallel))
	}

	genOpts := []orchestrator.Option{
		orchestrator.WithLoader(samplify.NewLoader(document.WithHTTPFallback(*timeout))),
		orchestrator.WithSampler(sample.New(samplerOpts...)),
	}
	if *overlay != "" {
		raw, err := os.ReadFile(*overlay)
		if err != nil {
			log.Fatalf("read overlay: %v", err)
		}
		transformer, err := orchestrator.NewOverlayTransformer(raw)
		if err != nil {
			log.Fatalf("invalid overlay: %v", err)
		}
		genOpts = append(genOpts, orchestrator.WithConfigTransformers(transformer))
	}
	gen := samplify.NewOrchestrator(genOpts...)

	req := orchestrator.Request{
		Shape:         strings.TrimSpace(*shapeName),
		ShapeSource:   shapeSource,
		ConfigSource:  configSource,
		Select:        *selectExpr,
		Count:         *count,
		Format:        *format,
		RenderOptions: render.RenderOptions{Envelope: *envelope, Template: *tmpl},
	}
	if *seed != "" {
		value, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			log.Fatalf("invalid seed %q: %v", *seed, err)
		}
		req.Seed = &value
	}

	if shouldPrompt(*interactive, req.Shape, configSource) {
		if err := ask(ctx, gen, &req); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				os.Exit(130)
			}
			log.Fatalf("prompt: %v", err)
		}
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate samples: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Samples written to %s\n", *output)
		return
	}
	if _, err := os.Stdout.Write(out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

// parseConfigSource reads stdin into an inline source for "-".
func parseConfigSource(raw string, stdin io.Reader) (document.Source, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return nil, errors.New("-config is required")
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if _, err := config.Parse(data); err != nil {
			return nil, err
		}
		return document.SourceFromBytes("stdin", data), nil
	default:
		return document.ParseSource(raw)
	}
}

// shouldPrompt reports whether the settings should be asked for. Stdin must
// be a terminal and must not be carrying the configuration.
func shouldPrompt(interactive bool, shapeName string, configSource document.Source) bool {
	if configSource != nil && configSource.Kind() == document.SourceKindInline {
		return false
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false
	}
	return interactive || shapeName == ""
}

func ask(ctx context.Context, gen *orchestrator.Orchestrator, req *orchestrator.Request) error {
	names, err := gen.Shapes(ctx, orchestrator.ShapeQuery{ShapeSource: req.ShapeSource})
	if err != nil {
		return err
	}
	choices, err := prompt.Ask(ctx, prompt.NewSurveyDriver(), names, gen.Formats(), prompt.Choices{
		Shape:  req.Shape,
		Count:  req.Count,
		Format: req.Format,
	})
	if err != nil {
		return err
	}
	req.Shape = choices.Shape
	req.Count = choices.Count
	req.Format = choices.Format
	return nil
}
