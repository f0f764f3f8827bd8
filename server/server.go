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

package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/patrickmn/go-cache"

	"github.com/civiclens/civiclens"
	"github.com/civiclens/civiclens/answer"
	"github.com/civiclens/civiclens/feeds"
	"github.com/civiclens/civiclens/ingestion"
	"github.com/civiclens/civiclens/search"
)

// statsTTL bounds how stale the stats overview may be; computing it scans
// the whole corpus.
const statsTTL = 30 * time.Second

// Server serves the platform's HTTP API.
type Server struct {
	app        *fiber.App
	platform   *civiclens.Platform
	pipeline   *ingestion.Pipeline
	ranker     *search.Ranker
	composer   *answer.Composer
	feedClient *feeds.Client
	statsCache *cache.Cache
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithFeedClient sets the upstream feed client used by the ingest endpoint.
// Without one, ingestion requests are rejected.
func WithFeedClient(client *feeds.Client) Option {
	return func(s *Server) error {
		s.feedClient = client
		return nil
	}
}

// New builds a server around an open platform.
func New(platform *civiclens.Platform, opts ...Option) (*Server, error) {
	if platform == nil {
		return nil, ErrPlatformRequired
	}

	s := &Server{
		platform:   platform,
		statsCache: cache.New(statsTTL, 2*statsTTL),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	pipeline, err := platform.NewPipeline()
	if err != nil {
		return nil, err
	}
	s.pipeline = pipeline

	ranker, err := platform.NewRanker()
	if err != nil {
		pipeline.Release()
		return nil, err
	}
	s.ranker = ranker

	composer, err := platform.NewComposer()
	if err != nil {
		pipeline.Release()
		return nil, err
	}
	s.composer = composer

	s.app = fiber.New(fiber.Config{
		AppName:               "civiclens",
		DisableStartupMessage: true,
	})
	s.app.Use(cors.New())
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api/v1")
	api.Post("/ingest", s.ingest)
	api.Post("/search/semantic", s.searchSemantic)
	api.Get("/search/suggestions", s.searchSuggestions)
	api.Post("/chat/ask", s.chatAsk)
	api.Get("/chat/history", s.chatHistory)
	api.Post("/chat/clear", s.chatClear)
	api.Get("/documents/", s.listDocuments)
	api.Get("/documents/stats/overview", s.statsOverview)
	api.Get("/documents/:id", s.getDocument)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and releases the worker pool.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.pipeline.Release()
	return err
}
