package normalize

import (
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/core"
)

// SourceMeetings tags documents produced from the city council meetings feed.
const SourceMeetings = "chicago_city_council_meetings"

// MeetingNormalizer maps city council meeting records into Documents.
type MeetingNormalizer struct{}

var _ Normalizer = (*MeetingNormalizer)(nil)

// NewMeetingNormalizer creates a council meeting normalizer.
func NewMeetingNormalizer() *MeetingNormalizer {
	return &MeetingNormalizer{}
}

func (n *MeetingNormalizer) Source() string {
	return SourceMeetings
}

func (n *MeetingNormalizer) Normalize(rec core.RawRecord) (*core.Document, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", core.ErrMalformedRecord)
	}

	meetingDate := stringField(rec, "meeting_date", "Unknown Date")

	var b strings.Builder
	fmt.Fprintf(&b, "City Council Meeting on %s. ", meetingDate)
	fmt.Fprintf(&b, "Meeting Type: %s. ", stringField(rec, "meeting_type", "Not specified"))
	fmt.Fprintf(&b, "Agenda Items: %s. ", stringField(rec, "agenda_items", "Not specified"))
	fmt.Fprintf(&b, "Attendance: %s. ", stringField(rec, "attendance", "Not specified"))
	fmt.Fprintf(&b, "Location: %s.", stringField(rec, "location", "Not specified"))

	return &core.Document{
		DocumentID:    "chicago_meeting_" + stringField(rec, "id", "unknown"),
		Source:        SourceMeetings,
		Title:         "City Council Meeting - " + meetingDate,
		Content:       b.String(),
		DocumentType:  "meeting_record",
		Category:      core.CategoryGovernance,
		Jurisdiction:  "chicago",
		Authority:     "Chicago City Council",
		URL:           "https://data.cityofchicago.org/City-Government/City-Council-Meetings/7c8c-9w7x",
		EffectiveDate: stringField(rec, "meeting_date", ""),
		Metadata: map[string]any{
			"meeting_type": rec["meeting_type"],
			"agenda_items": rec["agenda_items"],
			"attendance":   rec["attendance"],
			"location":     rec["location"],
		},
	}, nil
}
