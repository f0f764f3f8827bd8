package normalize

import (
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/core"
)

// SourceLicenses tags documents produced from the business licenses feed.
const SourceLicenses = "chicago_business_licenses"

// LicenseNormalizer maps business license records into Documents.
type LicenseNormalizer struct{}

var _ Normalizer = (*LicenseNormalizer)(nil)

// NewLicenseNormalizer creates a business license normalizer.
func NewLicenseNormalizer() *LicenseNormalizer {
	return &LicenseNormalizer{}
}

func (n *LicenseNormalizer) Source() string {
	return SourceLicenses
}

func (n *LicenseNormalizer) Normalize(rec core.RawRecord) (*core.Document, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", core.ErrMalformedRecord)
	}

	activity := stringField(rec, "business_activity", "Unknown Activity")
	startDate := stringField(rec, "license_start_date", "")

	var b strings.Builder
	fmt.Fprintf(&b, "Business License for %s. ", activity)
	fmt.Fprintf(&b, "License Description: %s. ", stringField(rec, "license_description", "Not specified"))
	fmt.Fprintf(&b, "License Status: %s. ", stringField(rec, "license_status", "Unknown"))
	fmt.Fprintf(&b, "Zip Code: %s. ", stringField(rec, "zip_code", "Not specified"))
	fmt.Fprintf(&b, "Ward: %s. ", stringField(rec, "ward", "Not specified"))
	fmt.Fprintf(&b, "License Start Date: %s.", stringField(rec, "license_start_date", "Not specified"))

	return &core.Document{
		DocumentID:    "chicago_license_" + stringField(rec, "id", "unknown"),
		Source:        SourceLicenses,
		Title:         "Business License - " + activity,
		Content:       b.String(),
		DocumentType:  "license",
		Category:      core.CategoryBusiness,
		Jurisdiction:  "chicago",
		Authority:     "Chicago Department of Business Affairs and Consumer Protection",
		URL:           "https://data.cityofchicago.org/Business-Economic-Development-Opportunity/Business-Licenses/uupf-x98q",
		EffectiveDate: startDate,
		Metadata: map[string]any{
			"business_activity":   rec["business_activity"],
			"license_description": rec["license_description"],
			"license_status":      rec["license_status"],
			"zip_code":            rec["zip_code"],
			"ward":                rec["ward"],
			"latitude":            rec["latitude"],
			"longitude":           rec["longitude"],
		},
	}, nil
}
