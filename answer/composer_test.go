package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupComposer(t *testing.T) *Composer {
	t.Helper()
	docRepo, chatRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chatRepo.Close()
		docRepo.Close()
		backend.Close()
	})

	composer, err := NewComposer(chatRepo)
	require.NoError(t, err)
	return composer
}

func legislationCandidate(score float64) core.ScoredDocument {
	return core.ScoredDocument{
		Document: &core.Document{
			DocumentID:    "chicago_leg_64062",
			Title:         "Zoning Reclassification for 123 Main St",
			Content:       "Zoning Reclassification for 123 Main St\n\nRecord Number: O2025-0012345",
			DocumentType:  "ordinance",
			Category:      core.CategoryConstruction,
			Jurisdiction:  "chicago",
			Authority:     "Chicago City Council",
			URL:           "https://chicago.legistar.com/LegislationDetail.aspx?ID=64062",
			EffectiveDate: "2025-01-15",
			Metadata: map[string]any{
				"record_number":      "O2025-0012345",
				"matter_type":        "Ordinance",
				"status":             "Introduced",
				"sponsor":            "Ald. Smith",
				"committee_referral": "Committee on Zoning",
				"matter_category":    "Zoning Reclassification",
			},
		},
		SimilarityScore: score,
		MatchReasons:    []string{"Title match", "Content match"},
	}
}

func TestNewComposer_RequiresRepository(t *testing.T) {
	_, err := NewComposer(nil)
	assert.True(t, errors.Is(err, ErrChatRepositoryRequired))
}

func TestAnswer_BlankMessage(t *testing.T) {
	composer := setupComposer(t)

	for _, message := range []string{"", "   "} {
		_, err := composer.Answer(context.Background(), message, nil, 0)
		assert.True(t, errors.Is(err, core.ErrEmptyQuery))
	}
}

func TestAnswer_NoCandidates(t *testing.T) {
	composer := setupComposer(t)
	ctx := context.Background()

	resp, err := composer.Answer(ctx, "What about helicopters?", nil, 42)
	require.NoError(t, err)

	assert.Equal(t, apology, resp.Answer)
	assert.Zero(t, resp.ConfidenceScore)
	assert.Empty(t, resp.Sources)
	assert.Equal(t, 0, resp.ContextUsed)
	assert.Equal(t, 42, resp.TotalDocumentsSearched)
	assert.Equal(t, "chicago", resp.Jurisdiction)
	assert.Equal(t, ModelName, resp.Model)

	// The exchange is still recorded
	turns, err := composer.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, "What about helicopters?", turns[0].Message)
	assert.Equal(t, core.RoleAI, turns[1].Role)
	assert.Equal(t, apology, turns[1].Message)
}

func TestAnswer_ZoningIntent(t *testing.T) {
	composer := setupComposer(t)

	resp, err := composer.Answer(context.Background(), "What are the zoning rules downtown?",
		[]core.ScoredDocument{legislationCandidate(0.7)}, 3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Answer, "Based on Chicago zoning legislation 'Zoning Reclassification for 123 Main St':"))
	assert.Contains(t, resp.Answer, "- Record Number: O2025-0012345")
	assert.Contains(t, resp.Answer, "- Sponsor: Ald. Smith")
	assert.Contains(t, resp.Answer, "- Committee: Committee on Zoning")
	assert.Contains(t, resp.Answer, "Committee on Zoning, Landmarks and Building Standards")
	assert.InDelta(t, 0.7, resp.ConfidenceScore, 1e-9)
	assert.Equal(t, 1, resp.ContextUsed)
	assert.Equal(t, 3, resp.TotalDocumentsSearched)

	require.Len(t, resp.Sources, 1)
	src := resp.Sources[0]
	assert.Equal(t, "Zoning Reclassification for 123 Main St", src.Title)
	assert.Equal(t, "Chicago City Council", src.Authority)
	assert.Equal(t, core.CategoryConstruction, src.Category)
	assert.InDelta(t, 0.7, src.SimilarityScore, 1e-9)
	assert.Equal(t, []string{"Title match", "Content match"}, src.MatchReasons)
}

func TestAnswer_BusinessIntent(t *testing.T) {
	composer := setupComposer(t)

	resp, err := composer.Answer(context.Background(), "How do I renew my business license?",
		[]core.ScoredDocument{legislationCandidate(0.4)}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Answer, "Based on Chicago business legislation"))
	assert.Contains(t, resp.Answer, "- Category: Zoning Reclassification")
	assert.Contains(t, resp.Answer, "312-744-6060")
}

func TestAnswer_TransportationIntent(t *testing.T) {
	composer := setupComposer(t)

	resp, err := composer.Answer(context.Background(), "Where is parking restricted?",
		[]core.ScoredDocument{legislationCandidate(0.2)}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Answer, "Based on Chicago transportation legislation"))
	assert.Contains(t, resp.Answer, "Committee on Pedestrian and Traffic Safety")
	assert.Contains(t, resp.Answer, "Department of Transportation")
}

func TestAnswer_GeneralIntent(t *testing.T) {
	composer := setupComposer(t)

	resp, err := composer.Answer(context.Background(), "Tell me about recent ordinances",
		[]core.ScoredDocument{legislationCandidate(0.9)}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Answer, "Based on Chicago legislation"))
	assert.Contains(t, resp.Answer, "**Content:**")
	assert.Contains(t, resp.Answer, "- Introduction Date: 2025-01-15")
	assert.Contains(t, resp.Answer, "- Authority: Chicago City Council")
	assert.Contains(t, resp.Answer, "- Category: construction")
	assert.Contains(t, resp.Answer, "- Document Type: ordinance")
}

func TestAnswer_IntentPrecedence(t *testing.T) {
	// "zoning" outranks "business" when both appear
	assert.Equal(t, IntentZoning, classifyIntent("zoning board business hours"))
	assert.Equal(t, IntentBusiness, classifyIntent("Business LICENSE question"))
	assert.Equal(t, IntentTransportation, classifyIntent("traffic calming"))
	assert.Equal(t, IntentGeneral, classifyIntent("city budget"))
}

func TestAnswer_MissingMetadataRendersNA(t *testing.T) {
	composer := setupComposer(t)

	cand := core.ScoredDocument{
		Document: &core.Document{
			DocumentID: "chicago_permit_1",
			Title:      "Building Permit - NEW CONSTRUCTION",
			Content:    "Building Permit Application for NEW CONSTRUCTION.",
			Category:   core.CategoryConstruction,
		},
		SimilarityScore: 0.3,
	}

	resp, err := composer.Answer(context.Background(), "zoning question", []core.ScoredDocument{cand}, 1)
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "- Record Number: N/A")
	assert.Contains(t, resp.Answer, "- Sponsor: N/A")
}

func TestAnswer_NegativeScoreFallback(t *testing.T) {
	composer := setupComposer(t)

	resp, err := composer.Answer(context.Background(), "zoning", []core.ScoredDocument{legislationCandidate(-1)}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, resp.ConfidenceScore, 1e-9)
}

func TestContentSnippet(t *testing.T) {
	long := strings.Repeat("a", 500)
	snip := contentSnippet(long)
	assert.Len(t, snip, 303)
	assert.True(t, strings.HasSuffix(snip, "..."))

	assert.Equal(t, "short...", contentSnippet("short"))
}

func TestClearHistory(t *testing.T) {
	composer := setupComposer(t)
	ctx := context.Background()

	_, err := composer.Answer(ctx, "zoning", nil, 0)
	require.NoError(t, err)

	removed, err := composer.ClearHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	turns, err := composer.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSuggestions(t *testing.T) {
	s := Suggestions()
	require.Len(t, s, 20)
	assert.Equal(t, "How do I get a zoning permit in Chicago?", s[0])
	assert.Equal(t, "What are the current city laws?", s[19])

	// Returned slice is a copy
	s[0] = "mutated"
	assert.Equal(t, "How do I get a zoning permit in Chicago?", Suggestions()[0])
}
