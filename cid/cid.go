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

// Package cid derives a component's Canonical ID from whichever
// identity signals its source document carried, per the tiered
// fallback rule of spec.md §4.1.
package cid

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/sbom-tool/sbom-tools/model"
	"github.com/sbom-tool/sbom-tools/purl"
)

var uuidShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Canonicalize derives a CID from an Identifiers bundle and the
// fallback name/version/group triple, per the five-tier rule: PURL,
// then CPE, then SWID, then a synthetic name/group/version id, then
// the format-specific id. It returns a non-empty warning whenever the
// chosen tier is less reliable than PURL/CPE/SWID.
func Canonicalize(ids model.Identifiers, name, version, group string) (model.CID, string) {
	if ids.PURL != nil {
		return model.CID{
			Value:  normalizePURL(*ids.PURL),
			Source: model.IDSourcePURL,
			Stable: true,
		}, ""
	}

	if len(ids.CPEs) > 0 {
		return model.CID{
			Value:  strings.ToLower(ids.CPEs[0]),
			Source: model.IDSourceCPE,
			Stable: true,
		}, ""
	}

	if ids.SWID != "" {
		return model.CID{
			Value:  ids.SWID,
			Source: model.IDSourceSWID,
			Stable: true,
		}, ""
	}

	if name != "" {
		return model.CID{
			Value:  syntheticID(name, version, group),
			Source: model.IDSourceNameVersion,
			Stable: true,
		}, "no PURL/CPE/SWID identifier; falling back to a synthetic name/group/version id, diffs against this component may be less reliable"
	}

	formatID := ids.FormatID
	unstable := uuidShape.MatchString(formatID)
	warning := ""
	if unstable {
		warning = fmt.Sprintf("component has no name and its format-specific id %q matches UUID shape; this id is likely regenerated on every export and should not be trusted for diffing", formatID)
	} else if formatID == "" {
		warning = "component has no name and no format-specific id; canonical id is empty"
	} else {
		warning = fmt.Sprintf("component has no name; falling back to format-specific id %q, diffs against this component may be unreliable", formatID)
	}
	return model.CID{
		Value:  formatID,
		Source: model.IDSourceFormatSpecific,
		Stable: !unstable,
	}, warning
}

// normalizePURL renders a PURL to its canonical CID string: lowercase
// type/namespace/name, with ecosystem-specific name normalization
// (PyPI folds `_`/`.` to `-`; npm decodes a `%40`-escaped scope back to
// `@`; every other ecosystem only lowercases), per spec.md §4.1 step 1.
func normalizePURL(p purl.PackageURL) string {
	typ := strings.ToLower(p.Type)
	name := p.Name
	switch typ {
	case "pypi":
		name = strings.ToLower(name)
		name = strings.NewReplacer("_", "-", ".", "-").Replace(name)
	case "npm":
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
		name = strings.ToLower(name)
	default:
		name = strings.ToLower(name)
	}

	var b strings.Builder
	b.WriteString("pkg:")
	b.WriteString(typ)
	if p.Namespace != "" {
		b.WriteString("/")
		b.WriteString(strings.ToLower(p.Namespace))
	}
	b.WriteString("/")
	b.WriteString(name)
	if p.Version != "" {
		b.WriteString("@")
		b.WriteString(p.Version)
	}
	return b.String()
}

// syntheticID builds the `group:name@version` fallback id, lowercasing
// and omitting absent parts.
func syntheticID(name, version, group string) string {
	var b strings.Builder
	if group != "" {
		b.WriteString(strings.ToLower(group))
		b.WriteString(":")
	}
	b.WriteString(strings.ToLower(name))
	if version != "" {
		b.WriteString("@")
		b.WriteString(strings.ToLower(version))
	}
	return b.String()
}
