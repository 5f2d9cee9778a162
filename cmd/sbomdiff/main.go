// Copyright 2026 The SBOM Tools Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is a thin CLI wiring flags to the engine's package-level
// calls and printing the result as JSON (spec.md §6). It parses its
// inputs with sbomparse/fixture's Loader, since no concrete CycloneDX
// or SPDX reader ships in this module; a real deployment supplies its
// own sbomparse.Parser and links it in here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sbom-tool/sbom-tools/compliance"
	"github.com/sbom-tool/sbom-tools/diffcache"
	"github.com/sbom-tool/sbom-tools/diffengine"
	"github.com/sbom-tool/sbom-tools/log"
	"github.com/sbom-tool/sbom-tools/model"
	"github.com/sbom-tool/sbom-tools/multidiff"
	"github.com/sbom-tool/sbom-tools/quality"
	"github.com/sbom-tool/sbom-tools/sbomparse"
	"github.com/sbom-tool/sbom-tools/sbomparse/fixture"
)

// config holds the parsed command-line flags.
type config struct {
	mode       string
	old        string
	new        string
	inputs     string
	complyLvl  string
	qualityPro string
	verbose    bool
}

func main() {
	cfg := parseFlags()
	if cfg.verbose {
		log.SetLogger(&log.DefaultLogger{Verbose: true})
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sbomdiff: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "diff", "operation to run: diff, onetoN, timeline, nxn, compliance, quality")
	flag.StringVar(&cfg.old, "old", "", "path to the baseline SBOM fixture document")
	flag.StringVar(&cfg.new, "new", "", "path to the updated SBOM fixture document (mode=diff)")
	flag.StringVar(&cfg.inputs, "inputs", "", "comma-separated fixture document paths (mode=onetoN/timeline/nxn)")
	flag.StringVar(&cfg.complyLvl, "level", "standard", "compliance level (mode=compliance): minimum, standard, ntia_minimum, cra_phase1, cra_phase2, fda_medical_device, comprehensive")
	flag.StringVar(&cfg.qualityPro, "profile", "standard", "quality profile (mode=quality)")
	flag.BoolVar(&cfg.verbose, "verbose", false, "verbose logging")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config, out *os.File) error {
	switch cfg.mode {
	case "diff":
		return runDiff(ctx, cfg, out)
	case "onetoN":
		return runOneToN(ctx, cfg, out)
	case "timeline":
		return runTimeline(ctx, cfg, out)
	case "nxn":
		return runNxN(ctx, cfg, out)
	case "compliance":
		return runCompliance(cfg, out)
	case "quality":
		return runQuality(cfg, out)
	default:
		return fmt.Errorf("unrecognized -mode %q", cfg.mode)
	}
}

func runDiff(ctx context.Context, cfg config, out *os.File) error {
	if cfg.old == "" || cfg.new == "" {
		return fmt.Errorf("-old and -new are required for -mode=diff")
	}
	oldSBOM, err := loadSBOM(ctx, cfg.old)
	if err != nil {
		return err
	}
	newSBOM, err := loadSBOM(ctx, cfg.new)
	if err != nil {
		return err
	}
	result, err := diffengine.Diff(ctx, oldSBOM, newSBOM, diffengine.DefaultConfig())
	if err != nil {
		return fmt.Errorf("diffing SBOMs: %w", err)
	}
	return encode(out, result)
}

func runOneToN(ctx context.Context, cfg config, out *os.File) error {
	if cfg.old == "" || cfg.inputs == "" {
		return fmt.Errorf("-old and -inputs are required for -mode=onetoN")
	}
	baseline, err := loadSBOM(ctx, cfg.old)
	if err != nil {
		return err
	}
	targets, err := loadSBOMs(ctx, cfg.inputs)
	if err != nil {
		return err
	}
	cache := diffcache.New(len(targets)+1, diffengine.DefaultConfig())
	result, err := multidiff.OneToN(ctx, baseline, targets, cache)
	if err != nil {
		return fmt.Errorf("running 1:N diff: %w", err)
	}
	return encode(out, result)
}

func runTimeline(ctx context.Context, cfg config, out *os.File) error {
	if cfg.inputs == "" {
		return fmt.Errorf("-inputs is required for -mode=timeline")
	}
	sequence, err := loadSBOMs(ctx, cfg.inputs)
	if err != nil {
		return err
	}
	cache := diffcache.New(len(sequence), diffengine.DefaultConfig())
	result, err := multidiff.Timeline(ctx, sequence, cache)
	if err != nil {
		return fmt.Errorf("running timeline diff: %w", err)
	}
	return encode(out, result)
}

func runNxN(ctx context.Context, cfg config, out *os.File) error {
	if cfg.inputs == "" {
		return fmt.Errorf("-inputs is required for -mode=nxn")
	}
	sboms, err := loadSBOMs(ctx, cfg.inputs)
	if err != nil {
		return err
	}
	cache := diffcache.New(len(sboms)*len(sboms), diffengine.DefaultConfig())
	const defaultClusterThreshold = 0.85
	result, err := multidiff.NxN(ctx, sboms, cache, defaultClusterThreshold)
	if err != nil {
		return fmt.Errorf("running NxN diff: %w", err)
	}
	return encode(out, result)
}

func runCompliance(cfg config, out *os.File) error {
	if cfg.old == "" {
		return fmt.Errorf("-old is required for -mode=compliance")
	}
	sbom, err := loadSBOM(context.Background(), cfg.old)
	if err != nil {
		return err
	}
	level, err := parseComplianceLevel(cfg.complyLvl)
	if err != nil {
		return err
	}
	return encode(out, compliance.Check(sbom, level))
}

func runQuality(cfg config, out *os.File) error {
	if cfg.old == "" {
		return fmt.Errorf("-old is required for -mode=quality")
	}
	sbom, err := loadSBOM(context.Background(), cfg.old)
	if err != nil {
		return err
	}
	result, err := quality.Score(sbom, quality.Profile(cfg.qualityPro))
	if err != nil {
		return fmt.Errorf("scoring SBOM quality: %w", err)
	}
	return encode(out, result)
}

var parser sbomparse.Parser = fixture.Loader{}

func loadSBOM(ctx context.Context, path string) (*model.NormalizedSBOM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sbom, err := parser.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sbom, nil
}

func loadSBOMs(ctx context.Context, commaSeparatedPaths string) ([]*model.NormalizedSBOM, error) {
	var sboms []*model.NormalizedSBOM
	for _, path := range strings.Split(commaSeparatedPaths, ",") {
		if path == "" {
			continue
		}
		sbom, err := loadSBOM(ctx, path)
		if err != nil {
			return nil, err
		}
		sboms = append(sboms, sbom)
	}
	return sboms, nil
}

func parseComplianceLevel(s string) (compliance.Level, error) {
	switch s {
	case "minimum":
		return compliance.LevelMinimum, nil
	case "standard":
		return compliance.LevelStandard, nil
	case "ntia_minimum":
		return compliance.LevelNTIAMinimum, nil
	case "cra_phase1":
		return compliance.LevelCRAPhase1, nil
	case "cra_phase2":
		return compliance.LevelCRAPhase2, nil
	case "fda_medical_device":
		return compliance.LevelFDAMedicalDevice, nil
	case "comprehensive":
		return compliance.LevelComprehensive, nil
	default:
		return 0, fmt.Errorf("unrecognized -level %q", s)
	}
}

func encode(out *os.File, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
