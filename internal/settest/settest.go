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

// Package settest provides small NormalizedSBOM builders shared by this
// module's black-box tests, adapted from the teacher's own testing
// helper packages (e.g. testing/fakeextractor's "construct just enough
// of the real type to exercise the code under test" approach).
package settest

import "github.com/sbom-tool/sbom-tools/model"

// SBOMWith builds a NormalizedSBOM containing exactly the given
// components, in the order passed, with no edges or metadata set. Most
// package tests only care about the component set itself; callers that
// need edges or metadata set those fields on the returned value.
func SBOMWith(components ...*model.Component) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set}
}
