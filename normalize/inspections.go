package normalize

import (
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/core"
)

// SourceInspections tags documents produced from the food inspections feed.
const SourceInspections = "chicago_food_inspections"

// InspectionNormalizer maps food inspection records into Documents.
type InspectionNormalizer struct{}

var _ Normalizer = (*InspectionNormalizer)(nil)

// NewInspectionNormalizer creates a food inspection normalizer.
func NewInspectionNormalizer() *InspectionNormalizer {
	return &InspectionNormalizer{}
}

func (n *InspectionNormalizer) Source() string {
	return SourceInspections
}

func (n *InspectionNormalizer) Normalize(rec core.RawRecord) (*core.Document, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", core.ErrMalformedRecord)
	}

	restaurant := stringField(rec, "dba_name", "Unknown Restaurant")

	var b strings.Builder
	fmt.Fprintf(&b, "Food Inspection for %s. ", restaurant)
	fmt.Fprintf(&b, "Inspection Type: %s. ", stringField(rec, "inspection_type", "Not specified"))
	fmt.Fprintf(&b, "Results: %s. ", stringField(rec, "results", "Not specified"))
	fmt.Fprintf(&b, "Violations: %s. ", stringField(rec, "violations", "None"))
	fmt.Fprintf(&b, "Zip Code: %s. ", stringField(rec, "zip", "Not specified"))
	fmt.Fprintf(&b, "Inspection Date: %s.", stringField(rec, "inspection_date", "Not specified"))

	return &core.Document{
		DocumentID:    "chicago_food_" + stringField(rec, "inspection_id", "unknown"),
		Source:        SourceInspections,
		Title:         "Food Inspection - " + restaurant,
		Content:       b.String(),
		DocumentType:  "inspection_report",
		Category:      core.CategoryHealthcare,
		Jurisdiction:  "chicago",
		Authority:     "Chicago Department of Public Health",
		URL:           "https://data.cityofchicago.org/Health-Human-Services/Food-Inspections/4ijn-s7e5",
		EffectiveDate: stringField(rec, "inspection_date", ""),
		Metadata: map[string]any{
			"dba_name":        rec["dba_name"],
			"inspection_type": rec["inspection_type"],
			"results":         rec["results"],
			"violations":      rec["violations"],
			"zip_code":        rec["zip"],
			"latitude":        rec["latitude"],
			"longitude":       rec["longitude"],
		},
	}, nil
}
