package civiclens

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/ingestion"
	"github.com/civiclens/civiclens/normalize"
	"github.com/civiclens/civiclens/search"
)

func TestOpenAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "civiclens-db")

	platform, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, platform.Close())
}

func TestPlatformEndToEnd(t *testing.T) {
	platform, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { platform.Close() })

	ctx := context.Background()

	pipeline, err := platform.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	recs := []core.RawRecord{
		{
			"matterId":          "64062",
			"recordNumber":      "O2025-0001",
			"title":             "Zoning reclassification for 123 Main St",
			"matterCategory":    "ZONING RECLASSIFICATIONS",
			"type":              "Ordinance",
			"statusDescription": "Introduced",
		},
	}
	summary, err := pipeline.IngestRecords(ctx, normalize.SourceLegislation, recs)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DocumentsLoaded)

	ranker, err := platform.NewRanker()
	require.NoError(t, err)

	hits, err := ranker.Search(ctx, search.Query{Text: "zoning reclassification"})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "chicago_leg_64062", hits[0].Document.DocumentID)

	composer, err := platform.NewComposer()
	require.NoError(t, err)

	reply, err := composer.Answer(ctx, "zoning reclassification", hits, 1)
	require.NoError(t, err)
	assert.Contains(t, reply.Answer, "O2025-0001")

	turns, err := composer.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestComprehensiveSources(t *testing.T) {
	sources := ComprehensiveSources(25)

	// Recent legislation, five category sweeps, five open-data resources.
	require.Len(t, sources, 11)
	assert.Equal(t, normalize.SourceLegislation, sources[0].Source)
	assert.Empty(t, sources[0].Category)
	assert.Equal(t, "ZONING RECLASSIFICATIONS", sources[1].Category)
	assert.Equal(t, normalize.SourceViolations, sources[10].Source)
	for _, src := range sources {
		assert.Equal(t, 25, src.Limit)
	}
}

func TestFeedFetcherUnknownSource(t *testing.T) {
	fetch := FeedFetcher(nil)

	_, err := fetch(context.Background(), ingestion.SourceRequest{Source: "nope"})
	assert.ErrorIs(t, err, ingestion.ErrUnknownSource)
}
