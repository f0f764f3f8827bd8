package normalize

import (
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/core"
)

// SourceLegislation tags documents produced from City Clerk legislation
// matters.
const SourceLegislation = "chicago_city_clerk_api"

// LegislationNormalizer maps City Clerk legislation matters (ordinances,
// resolutions, executive orders) into Documents.
type LegislationNormalizer struct{}

var _ Normalizer = (*LegislationNormalizer)(nil)

// NewLegislationNormalizer creates a legislation normalizer.
func NewLegislationNormalizer() *LegislationNormalizer {
	return &LegislationNormalizer{}
}

func (n *LegislationNormalizer) Source() string {
	return SourceLegislation
}

func (n *LegislationNormalizer) Normalize(rec core.RawRecord) (*core.Document, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", core.ErrMalformedRecord)
	}

	matterID := stringField(rec, "matterId", "")
	if matterID == "" {
		return nil, fmt.Errorf("%w: missing matterId", core.ErrMalformedRecord)
	}

	title := stringField(rec, "title", "Untitled Legislation")
	recordNumber := stringField(rec, "recordNumber", "")
	matterType := stringField(rec, "type", "Unknown")
	category := stringField(rec, "matterCategory", "General")
	status := stringField(rec, "statusDescription", "Unknown")
	sponsor := stringField(rec, "filingSponsor", "Unknown")
	introductionDate := stringField(rec, "introductionDate", "")
	committee := stringField(rec, "committeReferral", "")
	keyLegislation := yesNo(rec, "keyLegislation")

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Record Number: %s\n", recordNumber)
	fmt.Fprintf(&b, "Type: %s\n", matterType)
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Sponsor: %s\n", sponsor)
	fmt.Fprintf(&b, "Introduction Date: %s\n", introductionDate)
	fmt.Fprintf(&b, "Committee Referral: %s\n", committee)
	fmt.Fprintf(&b, "Key Legislation: %s\n", yesNoLabel(keyLegislation))
	fmt.Fprintf(&b, "Economic Disclosure Required: %s\n", yesNoLabel(yesNo(rec, "economicDisclosure")))
	fmt.Fprintf(&b, "Routine: %s\n", yesNoLabel(yesNo(rec, "routine")))
	fmt.Fprintf(&b, "Agreed Calendar: %s\n", yesNoLabel(yesNo(rec, "agreedCalendar")))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Description: %s", stringField(rec, "nicknameAlias", "No additional description available"))

	return &core.Document{
		DocumentID:    "chicago_leg_" + matterID,
		Source:        SourceLegislation,
		Title:         title,
		Content:       strings.TrimSpace(b.String()),
		DocumentType:  strings.ToLower(matterType),
		Category:      core.ClassifyCategory(category, matterType),
		Jurisdiction:  "chicago",
		Authority:     "Chicago City Council",
		URL:           "https://chicago.legistar.com/LegislationDetail.aspx?ID=" + matterID,
		EffectiveDate: introductionDate,
		Metadata: map[string]any{
			"matter_id":             matterID,
			"record_number":         recordNumber,
			"matter_type":           matterType,
			"matter_category":       category,
			"status":                status,
			"sponsor":               sponsor,
			"committee_referral":    committee,
			"key_legislation":       keyLegislation,
			"economic_disclosure":   rec["economicDisclosure"],
			"routine":               rec["routine"],
			"agreed_calendar":       rec["agreedCalendar"],
			"introduction_type":     rec["introductionType"],
			"controlling_body":      rec["controllingBody"],
			"file_year":             rec["fileYear"],
			"last_publication_date": rec["lastPublicationDate"],
		},
	}, nil
}
