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

// Package enrichment declares the external Enricher collaborator
// interface (spec.md §6): a plugin that augments an already-normalized
// SBOM with data the source document didn't carry itself — staleness
// and end-of-life signals, vulnerability matches, VEX filtering. No
// concrete enricher ships here; reaching out to a vulnerability feed
// or a package registry is explicitly an external concern (spec.md
// §1's Non-goals). Run sequences a list of Enrichers the way the
// Quality Scorer and Compliance Checker expect to find staleness and
// vulnerability data already attached by the time they run.
package enrichment

import (
	"context"
	"fmt"

	"github.com/sbom-tool/sbom-tools/model"
)

// Enricher mutates a NormalizedSBOM in place, adding data it sources
// from outside the document itself. Unlike a Parser, an Enricher never
// replaces the document — it only adds to what's already there.
type Enricher interface {
	// Name identifies the enricher in logs and run results.
	Name() string
	// Enrich augments sbom with additional data. Implementations should
	// treat individual lookup failures as non-fatal (skip the component,
	// keep going) and reserve a returned error for conditions that make
	// the whole run untrustworthy.
	Enrich(ctx context.Context, sbom *model.NormalizedSBOM) error
}

// Result is one Enricher's outcome from a Run.
type Result struct {
	Name string
	Err  error
}

// Run executes each Enricher against sbom in order, stopping early
// only if ctx is canceled. A single Enricher's error does not halt the
// remaining ones — each gets a chance to contribute what it can — but
// is recorded in the returned Result so the caller can decide whether
// a partial enrichment is acceptable.
func Run(ctx context.Context, sbom *model.NormalizedSBOM, enrichers []Enricher) ([]Result, error) {
	results := make([]Result, 0, len(enrichers))
	for _, e := range enrichers {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("enrichment: %w", err)
		}
		err := e.Enrich(ctx, sbom)
		results = append(results, Result{Name: e.Name(), Err: err})
	}
	return results, nil
}
