package core

import (
	"testing"
	"time"
)

func TestDocumentMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := Document{
		DocumentID:    "chicago_leg_42",
		Source:        "chicago_city_clerk_api",
		Title:         "Zoning Reclassification Ordinance",
		Content:       "Zoning Reclassification Ordinance\n\nRecord Number: O2024-123",
		DocumentType:  "ordinance",
		Category:      CategoryConstruction,
		Jurisdiction:  "chicago",
		Authority:     "Chicago City Council",
		URL:           "https://chicago.legistar.com/LegislationDetail.aspx?ID=42",
		EffectiveDate: "2024-03-01",
		Metadata: map[string]any{
			"matter_category": "ZONING RECLASSIFICATIONS",
			"sponsor":         "Jane Doe",
			"key_legislation": true,
			"total_fees":      125.5,
			"committee":       nil,
		},
		Summary:     "Zoning Reclassification Ordinance",
		Keywords:    []Keyword{{Word: "zoning", Count: 2}, {Word: "ordinance", Count: 1}},
		ContentHash: HashContent("Zoning Reclassification Ordinance"),
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	bs := make([]byte, DocumentMUS.Size(doc))
	n := DocumentMUS.Marshal(doc, bs)
	if n != len(bs) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(bs))
	}

	got, m, err := DocumentMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if m != n {
		t.Errorf("Unmarshal consumed %d bytes, want %d", m, n)
	}

	if got.DocumentID != doc.DocumentID || got.Category != doc.Category ||
		got.Content != doc.Content || got.ContentHash != doc.ContentHash {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Metadata["sponsor"] != "Jane Doe" {
		t.Errorf("sponsor = %v", got.Metadata["sponsor"])
	}
	if got.Metadata["key_legislation"] != true {
		t.Errorf("key_legislation survived as %T %v",
			got.Metadata["key_legislation"], got.Metadata["key_legislation"])
	}
	if got.Metadata["total_fees"] != 125.5 {
		t.Errorf("total_fees survived as %T %v",
			got.Metadata["total_fees"], got.Metadata["total_fees"])
	}
	if v, ok := got.Metadata["committee"]; !ok || v != nil {
		t.Errorf("nil metadata value not preserved: %v", v)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != doc.Keywords[0] {
		t.Errorf("keywords = %v", got.Keywords)
	}
	if !got.InsertedAt.Equal(now) {
		t.Errorf("InsertedAt = %v, want %v", got.InsertedAt, now)
	}
}

func TestChatTurnMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	turn := ChatTurn{
		Id:         7,
		Role:       RoleAI,
		Message:    "Based on Chicago zoning legislation...",
		Timestamp:  now,
		InsertedAt: now,
	}

	bs := make([]byte, ChatTurnMUS.Size(turn))
	ChatTurnMUS.Marshal(turn, bs)

	got, _, err := ChatTurnMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.Id != turn.Id || got.Role != turn.Role || got.Message != turn.Message {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if !got.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, now)
	}
}

func TestDocumentMUS_MarshalDeterministic(t *testing.T) {
	doc := Document{
		DocumentID: "x_1",
		Content:    "content",
		Category:   CategoryGeneral,
		Metadata: map[string]any{
			"b": "2", "a": "1", "c": "3", "d": "4",
		},
	}

	first := make([]byte, DocumentMUS.Size(doc))
	DocumentMUS.Marshal(doc, first)
	second := make([]byte, DocumentMUS.Size(doc))
	DocumentMUS.Marshal(doc, second)

	if string(first) != string(second) {
		t.Errorf("marshaling the same document twice produced different bytes")
	}
}
