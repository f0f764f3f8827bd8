package normalize

import (
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/core"
)

// SourceViolations tags documents produced from the building violations feed.
const SourceViolations = "chicago_building_violations"

// ViolationNormalizer maps building violation records into Documents.
type ViolationNormalizer struct{}

var _ Normalizer = (*ViolationNormalizer)(nil)

// NewViolationNormalizer creates a building violation normalizer.
func NewViolationNormalizer() *ViolationNormalizer {
	return &ViolationNormalizer{}
}

func (n *ViolationNormalizer) Source() string {
	return SourceViolations
}

func (n *ViolationNormalizer) Normalize(rec core.RawRecord) (*core.Document, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", core.ErrMalformedRecord)
	}

	code := stringField(rec, "violation_code", "Unknown Code")

	var b strings.Builder
	fmt.Fprintf(&b, "Building Violation Code: %s. ", stringField(rec, "violation_code", "Unknown"))
	fmt.Fprintf(&b, "Violation Description: %s. ", stringField(rec, "violation_description", "Not specified"))
	fmt.Fprintf(&b, "Violation Status: %s. ", stringField(rec, "violation_status", "Unknown"))
	fmt.Fprintf(&b, "Zip Code: %s. ", stringField(rec, "zip_code", "Not specified"))
	fmt.Fprintf(&b, "Violation Date: %s.", stringField(rec, "violation_date", "Not specified"))

	return &core.Document{
		DocumentID:    "chicago_violation_" + stringField(rec, "id", "unknown"),
		Source:        SourceViolations,
		Title:         "Building Violation - " + code,
		Content:       b.String(),
		DocumentType:  "violation_notice",
		Category:      core.CategoryConstruction,
		Jurisdiction:  "chicago",
		Authority:     "Chicago Department of Buildings",
		URL:           "https://data.cityofchicago.org/Buildings/Building-Violations/22u3-xenr",
		EffectiveDate: stringField(rec, "violation_date", ""),
		Metadata: map[string]any{
			"violation_code":        rec["violation_code"],
			"violation_description": rec["violation_description"],
			"violation_status":      rec["violation_status"],
			"zip_code":              rec["zip_code"],
			"latitude":              rec["latitude"],
			"longitude":             rec["longitude"],
		},
	}, nil
}
