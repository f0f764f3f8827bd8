package normalize

import (
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/core"
)

// SourcePermits tags documents produced from the building permits feed.
const SourcePermits = "chicago_building_permits"

// PermitNormalizer maps building permit records into Documents.
type PermitNormalizer struct{}

var _ Normalizer = (*PermitNormalizer)(nil)

// NewPermitNormalizer creates a building permit normalizer.
func NewPermitNormalizer() *PermitNormalizer {
	return &PermitNormalizer{}
}

func (n *PermitNormalizer) Source() string {
	return SourcePermits
}

func (n *PermitNormalizer) Normalize(rec core.RawRecord) (*core.Document, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", core.ErrMalformedRecord)
	}

	permitType := stringField(rec, "permit_type", "Unknown Type")
	startDate := stringField(rec, "application_start_date", "")

	var b strings.Builder
	fmt.Fprintf(&b, "Building Permit Application for %s. ", permitType)
	fmt.Fprintf(&b, "Work Description: %s. ", stringField(rec, "work_description", "Not specified"))
	fmt.Fprintf(&b, "Total Fees: $%s. ", stringField(rec, "total_fees", "0"))
	fmt.Fprintf(&b, "Reported Cost: $%s. ", stringField(rec, "reported_cost", "0"))
	fmt.Fprintf(&b, "Community Area: %s. ", stringField(rec, "community_area", "Not specified"))
	fmt.Fprintf(&b, "Zip Code: %s. ", stringField(rec, "zip_code", "Not specified"))
	fmt.Fprintf(&b, "Application Start Date: %s.", stringField(rec, "application_start_date", "Not specified"))

	return &core.Document{
		DocumentID:    "chicago_permit_" + stringField(rec, "id", "unknown"),
		Source:        SourcePermits,
		Title:         "Building Permit - " + permitType,
		Content:       b.String(),
		DocumentType:  "permit",
		Category:      core.CategoryConstruction,
		Jurisdiction:  "chicago",
		Authority:     "Chicago Department of Buildings",
		URL:           "https://data.cityofchicago.org/Buildings/Building-Permits/ydr8-5enu",
		EffectiveDate: startDate,
		Metadata: map[string]any{
			"permit_type":      rec["permit_type"],
			"work_description": rec["work_description"],
			"total_fees":       rec["total_fees"],
			"reported_cost":    rec["reported_cost"],
			"community_area":   rec["community_area"],
			"zip_code":         rec["zip_code"],
			"latitude":         rec["latitude"],
			"longitude":        rec["longitude"],
		},
	}, nil
}
