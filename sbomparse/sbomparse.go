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

// Package sbomparse declares the external Parser collaborator
// interface (spec.md §6): a format (CycloneDX, SPDX) reader that turns
// a raw document blob into a model.NormalizedSBOM. No concrete format
// parser ships here — producing a NormalizedSBOM from real CycloneDX
// or SPDX bytes is explicitly out of scope (spec.md §1); this package
// exists so the rest of the engine, and cmd/sbomdiff, can depend on the
// interface rather than a concrete format.
package sbomparse

import (
	"context"

	"github.com/sbom-tool/sbom-tools/model"
)

// Parser turns a raw SBOM document into a NormalizedSBOM. The content
// hash and the four section hashes are not fields an implementation
// fills in: they are computed from the returned value by
// NormalizedSBOM.ContentHash and NormalizedSBOM.Sections. An
// implementation should set Metadata.PrimaryProduct when the source
// format makes a primary product determinable.
type Parser interface {
	Parse(ctx context.Context, data []byte) (*model.NormalizedSBOM, error)
}
