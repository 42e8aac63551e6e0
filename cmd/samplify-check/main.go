package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-samplify"
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/orchestrator"
	"github.com/goliatone/go-samplify/pkg/sample"
)

type violation struct {
	file     string
	location string
	message  string
}

type checker struct {
	gen       *orchestrator.Orchestrator
	shapes    document.Source
	shapeName string
	profiles  bool
	draws     int
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -shapes schema.json [flags] config...\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nSample every configuration once in strict mode and report the failures.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	shapes := flag.String("shapes", "examples/fixtures/account.schema.json", "JSON Schema or OpenAPI document path")
	shapeName := flag.String("shape", "", "shape to check (optional when the document declares one)")
	profiles := flag.Bool("profiles", false, "check every top-level key of each config as a separate profile")
	draws := flag.Int("draws", 1, "samples drawn per configuration")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/fixtures/account.config.yaml"}
		*profiles = true
		if *shapeName == "" {
			*shapeName = "Account"
		}
	}

	c := &checker{
		gen:       samplify.NewOrchestrator(orchestrator.WithSampler(sample.New(sample.WithStrictVariants()))),
		shapes:    document.SourceFromFile(*shapes),
		shapeName: strings.TrimSpace(*shapeName),
		profiles:  *profiles,
		draws:     *draws,
	}

	ctx := context.Background()
	var violations []violation
	for _, path := range paths {
		checked, err := c.checkFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "check %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, checked...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func (c *checker) checkFile(ctx context.Context, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	root, err := config.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if !c.profiles {
		return c.check(ctx, path, nil, root)
	}
	if root.Kind() != config.KindObject {
		return nil, fmt.Errorf("profiles require an object, found %s", root.Kind())
	}
	var result []violation
	for _, member := range root.Members() {
		checked, err := c.check(ctx, path, []string{member.Key}, member.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, checked...)
	}
	return result, nil
}

// check samples cfg and converts sampling failures into violations. Other
// failures abort the run.
func (c *checker) check(ctx context.Context, file string, base []string, cfg config.Node) ([]violation, error) {
	_, err := c.gen.Sample(ctx, orchestrator.Request{
		Shape:       c.shapeName,
		ShapeSource: c.shapes,
		Config:      &cfg,
		Count:       c.draws,
	})
	if err == nil {
		return nil, nil
	}

	var sampleErr *sample.SampleError
	if !errors.As(err, &sampleErr) {
		return nil, err
	}
	return []violation{{
		file:     file,
		location: formatLocation(appendPath(base, sampleErr.Path)),
		message:  fmt.Sprintf("%s: %s", sampleErr.Kind, sampleErr.Detail),
	}}, nil
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	if segment == "" {
		segment = "$"
	}
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
