package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/models"
	"busplanner.dev/internal/planner"
)

var errLineNotListed = errors.New("line not among search results")

// segmentEntry is one leg as written in a plan file. Any field may be left
// blank; the leg then stays incomplete and is not drawn.
type segmentEntry struct {
	Line string `yaml:"line"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type planFile struct {
	Segments []segmentEntry `yaml:"segments"`
}

func readPlanFile(path string) (planFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return planFile{}, fmt.Errorf("reading plan file: %w", err)
	}
	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return planFile{}, fmt.Errorf("parsing plan file %s: %w", path, err)
	}
	return pf, nil
}

// buildPlan fills a plan by driving one editor per entry through line
// search, line choice and stop choice. Entries that cannot be completed
// are reported and left as incomplete segments.
func buildPlan(ctx context.Context, lookup busline.Lookup, pf planFile) (*planner.Plan, []error) {
	plan := planner.NewPlan()
	var problems []error
	for i, entry := range pf.Segments {
		index := 0
		if i > 0 {
			index = plan.Add()
		}
		if err := fillSegment(ctx, lookup, plan, index, entry); err != nil {
			problems = append(problems, fmt.Errorf("segment %d: %w", i+1, err))
		}
	}
	return plan, problems
}

func fillSegment(ctx context.Context, lookup busline.Lookup, plan *planner.Plan, index int, entry segmentEntry) error {
	current, err := plan.Segment(index)
	if err != nil {
		return err
	}
	editor, err := planner.NewEditor(ctx, lookup, current)
	if err != nil {
		return err
	}

	number := strings.TrimSpace(entry.Line)
	if number == "" {
		return planner.ErrIncompleteSegment
	}
	if err := editor.Search(ctx, number); err != nil {
		return err
	}
	line, ok := findLine(editor.Candidates(), number)
	if !ok {
		return fmt.Errorf("%w: %s", errLineNotListed, number)
	}
	if err := editor.SelectLine(ctx, line); err != nil {
		return err
	}
	if err := editor.SelectOrigin(entry.From); err != nil {
		return fmt.Errorf("origin %q: %w", entry.From, err)
	}
	if err := editor.SelectDestination(entry.To); err != nil {
		return fmt.Errorf("destination %q: %w", entry.To, err)
	}
	return editor.SaveTo(plan, index)
}

func findLine(candidates []models.LineRef, number string) (models.LineRef, bool) {
	for _, c := range candidates {
		if c.Number == number {
			return c, true
		}
	}
	return models.LineRef{}, false
}
