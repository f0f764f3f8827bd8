// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/civiclens/civiclens"
	"github.com/civiclens/civiclens/answer"
	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/feeds"
	"github.com/civiclens/civiclens/ingestion"
	"github.com/civiclens/civiclens/search"
	"github.com/civiclens/civiclens/server"
)

func main() {
	app := &cli.App{
		Name:  "civiclens",
		Usage: "Civic-record search and chat over Chicago legislation and open data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Fetch upstream feeds and load documents into the corpus",
				Action: ingestCommand,
				Flags: []cli.Flag{
					dbFlag(),
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Records to fetch per source (0 uses the feed default)",
					},
					&cli.StringSliceFlag{
						Name:  "source",
						Usage: "Restrict ingestion to named sources (repeatable)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank corpus documents against a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Maximum results to return",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Filter results to one category",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question and get a templated answer with sources",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     []cli.Flag{dbFlag()},
			},
			{
				Name:   "stats",
				Usage:  "Show corpus statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "get",
				Usage:     "Print one document by ID",
				ArgsUsage: "<document-id>",
				Action:    getCommand,
				Flags:     []cli.Flag{dbFlag()},
			},
			{
				Name:   "suggest",
				Usage:  "Print suggested starter queries",
				Action: suggestCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					dbFlag(),
					configFlag(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8000",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML feeds config (defaults to built-in endpoints)",
	}
}

func loadFeedClient(c *cli.Context) (*feeds.Client, error) {
	cfg := feeds.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := feeds.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return feeds.NewClient(cfg)
}

// buildSourceRequests maps the --source/--limit flags onto ingest requests,
// defaulting to the comprehensive preset when no source is named.
func buildSourceRequests(sources []string, limit int) []ingestion.SourceRequest {
	if len(sources) == 0 {
		return civiclens.ComprehensiveSources(limit)
	}
	reqs := make([]ingestion.SourceRequest, 0, len(sources))
	for _, src := range sources {
		reqs = append(reqs, ingestion.SourceRequest{Source: src, Limit: limit})
	}
	return reqs
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	platform, err := civiclens.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer platform.Close()

	client, err := loadFeedClient(c)
	if err != nil {
		return err
	}

	pipeline, err := platform.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	reqs := buildSourceRequests(c.StringSlice("source"), c.Int("limit"))
	summary, err := pipeline.IngestSources(ctx, civiclens.FeedFetcher(client), reqs)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Run %s: loaded %d documents, skipped %d\n",
		summary.RunID, summary.DocumentsLoaded, summary.Skipped)
	for source, count := range summary.Sources {
		fmt.Printf("  %-40s %d\n", source, count)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	platform, err := civiclens.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer platform.Close()

	ranker, err := platform.NewRanker()
	if err != nil {
		return err
	}

	hits, err := ranker.Search(context.Background(), search.Query{
		Text:     query,
		Category: core.Category(c.String("category")),
		Limit:    c.Int("top-k"),
	})
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No matching documents.")
		return nil
	}
	for i, hit := range hits {
		fmt.Printf("%2d. [%.2f] %s\n", i+1, hit.SimilarityScore, hit.Document.Title)
		fmt.Printf("     %s | %s | %s\n",
			hit.Document.DocumentID, hit.Document.Category, strings.Join(hit.MatchReasons, ", "))
	}
	return nil
}

func askCommand(c *cli.Context) error {
	message := strings.Join(c.Args().Slice(), " ")
	if message == "" {
		return fmt.Errorf("question is required")
	}

	ctx := context.Background()

	platform, err := civiclens.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer platform.Close()

	ranker, err := platform.NewRanker()
	if err != nil {
		return err
	}
	composer, err := platform.NewComposer()
	if err != nil {
		return err
	}

	hits, err := ranker.Search(ctx, search.Query{Text: message, Limit: 3})
	if err != nil {
		return err
	}
	total, err := platform.DocumentRepository().CountDocuments(ctx)
	if err != nil {
		return err
	}

	reply, err := composer.Answer(ctx, message, hits, total)
	if err != nil {
		return err
	}

	fmt.Println(reply.Answer)
	fmt.Printf("\nConfidence: %.2f | Context: %d of %d documents\n",
		reply.ConfidenceScore, reply.ContextUsed, reply.TotalDocumentsSearched)
	for _, src := range reply.Sources {
		fmt.Printf("  - %s (%s)\n", src.Title, src.Authority)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	platform, err := civiclens.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer platform.Close()

	stats, err := platform.DocumentRepository().CorpusStats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Documents: %d\n", stats.TotalDocuments)
	fmt.Printf("Date range: %s .. %s\n", stats.DateRange.Earliest, stats.DateRange.Latest)
	fmt.Println("Categories:")
	for category, count := range stats.Categories {
		fmt.Printf("  %-20s %d\n", category, count)
	}
	fmt.Println("Sources:")
	for source, count := range stats.Sources {
		fmt.Printf("  %-40s %d\n", source, count)
	}
	fmt.Println("Authorities:")
	for _, authority := range stats.Authorities {
		fmt.Printf("  %s\n", authority)
	}
	return nil
}

func getCommand(c *cli.Context) error {
	documentID := c.Args().First()
	if documentID == "" {
		return fmt.Errorf("document ID is required")
	}

	platform, err := civiclens.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer platform.Close()

	doc, err := platform.DocumentRepository().GetDocument(context.Background(), documentID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n\n", doc.Title, strings.Repeat("=", len(doc.Title)))
	fmt.Println(doc.Content)
	fmt.Printf("\nSource: %s | Category: %s | Authority: %s\n", doc.Source, doc.Category, doc.Authority)
	fmt.Printf("URL: %s\n", doc.URL)
	return nil
}

func suggestCommand(c *cli.Context) error {
	for _, suggestion := range answer.Suggestions() {
		fmt.Println(suggestion)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	platform, err := civiclens.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer platform.Close()

	client, err := loadFeedClient(c)
	if err != nil {
		return err
	}

	srv, err := server.New(platform, server.WithFeedClient(client))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(c.String("addr"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		return srv.Shutdown()
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
