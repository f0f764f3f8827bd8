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

// Package civiclens assembles the civic-record platform: badger-backed
// storage, feed normalization, keyword ranking, and templated chat answers
// over Chicago legislation and open-data records.
package civiclens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/civiclens/civiclens/answer"
	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/feeds"
	"github.com/civiclens/civiclens/ingestion"
	"github.com/civiclens/civiclens/normalize"
	"github.com/civiclens/civiclens/search"
	"github.com/civiclens/civiclens/storage"
	"github.com/civiclens/civiclens/storage/badger"
)

// Platform owns the storage backend and repositories, and hands out the
// pipeline, ranker, and composer built on them. Open it once, close it when
// done.
type Platform struct {
	backend  *badger.Backend
	docRepo  storage.DocumentRepository
	chatRepo storage.ChatRepository
	registry *normalize.Registry
	logger   *slog.Logger
}

// PlatformOption configures a Platform.
type PlatformOption func(*Platform) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) PlatformOption {
	return func(p *Platform) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithRegistry replaces the feed normalizer registry.
// Default is normalize.DefaultRegistry().
func WithRegistry(registry *normalize.Registry) PlatformOption {
	return func(p *Platform) error {
		if registry == nil {
			return ingestion.ErrRegistryRequired
		}
		p.registry = registry
		return nil
	}
}

// Open opens a platform backed by a badger database at filePath.
func Open(filePath string, opts ...PlatformOption) (*Platform, error) {
	return open(filePath, false, opts...)
}

// OpenMemory opens an ephemeral in-memory platform. Used for tests and
// throwaway sessions.
func OpenMemory(opts ...PlatformOption) (*Platform, error) {
	return open("", true, opts...)
}

func open(filePath string, inMemory bool, opts ...PlatformOption) (*Platform, error) {
	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	chatRepo, err := badger.NewChatRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	p := &Platform{
		backend:  backend,
		docRepo:  docRepo,
		chatRepo: chatRepo,
		registry: normalize.DefaultRegistry(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			backend.Close()
			return nil, optErr
		}
	}

	return p, nil
}

// Close closes the repositories and the backend.
func (p *Platform) Close() error {
	if err := p.chatRepo.Close(); err != nil {
		p.logger.Error("error closing chat repository", "err", err)
		return err
	}
	if err := p.docRepo.Close(); err != nil {
		p.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := p.backend.Close(); err != nil {
		p.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (p *Platform) DocumentRepository() storage.DocumentRepository {
	return p.docRepo
}

func (p *Platform) ChatRepository() storage.ChatRepository {
	return p.chatRepo
}

func (p *Platform) Registry() *normalize.Registry {
	return p.registry
}

func (p *Platform) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(p.docRepo, p.registry, opts...)
}

func (p *Platform) NewRanker(opts ...search.Option) (*search.Ranker, error) {
	return search.NewRanker(p.docRepo, opts...)
}

func (p *Platform) NewComposer(opts ...answer.Option) (*answer.Composer, error) {
	return answer.NewComposer(p.chatRepo, opts...)
}

// legislationCategories is the fixed City Clerk category sweep used by the
// comprehensive ingest.
var legislationCategories = []string{
	"ZONING RECLASSIFICATIONS",
	"BUSINESS LICENSES",
	"PARKING",
	"TRANSPORTATION",
	"EXECUTIVE ORDERS & PROCLAMATIONS",
}

// ComprehensiveSources returns the full ingest preset: recent legislation,
// one sweep per fixed City Clerk category, and every open-data resource.
// limit applies per source; zero means the feed config default.
func ComprehensiveSources(limit int) []ingestion.SourceRequest {
	sources := []ingestion.SourceRequest{
		{Source: normalize.SourceLegislation, Limit: limit},
	}
	for _, category := range legislationCategories {
		sources = append(sources, ingestion.SourceRequest{
			Source:   normalize.SourceLegislation,
			Category: category,
			Limit:    limit,
		})
	}
	for _, source := range []string{
		normalize.SourcePermits,
		normalize.SourceLicenses,
		normalize.SourceMeetings,
		normalize.SourceInspections,
		normalize.SourceViolations,
	} {
		sources = append(sources, ingestion.SourceRequest{Source: source, Limit: limit})
	}
	return sources
}

// FeedFetcher adapts a feeds.Client into the pipeline's FetchFunc, routing
// each source request to the matching upstream call.
func FeedFetcher(client *feeds.Client) ingestion.FetchFunc {
	return func(ctx context.Context, req ingestion.SourceRequest) ([]core.RawRecord, error) {
		switch req.Source {
		case normalize.SourceLegislation:
			if req.Category != "" {
				return client.FetchMattersByCategory(ctx, req.Category, req.Limit)
			}
			return client.FetchMatters(ctx, req.Limit)
		case normalize.SourcePermits:
			return client.FetchPermits(ctx, req.Limit)
		case normalize.SourceLicenses:
			return client.FetchLicenses(ctx, req.Limit)
		case normalize.SourceMeetings:
			return client.FetchMeetings(ctx, req.Limit)
		case normalize.SourceInspections:
			return client.FetchInspections(ctx, req.Limit)
		case normalize.SourceViolations:
			return client.FetchViolations(ctx, req.Limit)
		default:
			return nil, fmt.Errorf("%w: %s", ingestion.ErrUnknownSource, req.Source)
		}
	}
}
