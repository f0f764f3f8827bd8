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
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/civiclens/civiclens"
	"github.com/civiclens/civiclens/answer"
	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/ingestion"
	"github.com/civiclens/civiclens/search"
	"github.com/civiclens/civiclens/storage"
)

// chatContextSize is how many ranked documents feed the composer.
const chatContextSize = 3

type ingestRequest struct {
	LimitPerSource int      `json:"limit_per_source"`
	Sources        []string `json:"sources"`
}

type searchRequest struct {
	Query        string `json:"query"`
	TopK         int    `json:"top_k"`
	Category     string `json:"category"`
	Jurisdiction string `json:"jurisdiction"`
}

type chatRequest struct {
	Message      string `json:"message"`
	Jurisdiction string `json:"jurisdiction"`
	UseContext   *bool  `json:"use_context"`
}

type documentResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	DocumentType  string `json:"document_type"`
	Category      string `json:"category"`
	Jurisdiction  string `json:"jurisdiction"`
	Authority     string `json:"authority"`
	URL           string `json:"url"`
	EffectiveDate string `json:"effective_date"`
	Source        string `json:"source"`
}

type searchResult struct {
	documentResponse
	SimilarityScore float64  `json:"similarity_score"`
	MatchReasons    []string `json:"match_reasons"`
}

type sourceRef struct {
	Title           string   `json:"title"`
	Authority       string   `json:"authority"`
	URL             string   `json:"url"`
	Category        string   `json:"category"`
	SimilarityScore float64  `json:"similarity_score"`
	MatchReasons    []string `json:"match_reasons"`
}

type chatTurnResponse struct {
	ID        uint64 `json:"id"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "healthy",
		"jurisdiction": "chicago",
		"services": fiber.Map{
			"api":            "running",
			"search_service": "ready",
			"chat_service":   "ready",
		},
	})
}

func (s *Server) ingest(c *fiber.Ctx) error {
	if s.feedClient == nil {
		return errorReply(c, fiber.StatusServiceUnavailable, "ingestion is not configured")
	}

	var req ingestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorReply(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	var sources []ingestion.SourceRequest
	if len(req.Sources) > 0 {
		for _, src := range req.Sources {
			sources = append(sources, ingestion.SourceRequest{
				Source: src,
				Limit:  req.LimitPerSource,
			})
		}
	} else {
		sources = civiclens.ComprehensiveSources(req.LimitPerSource)
	}

	summary, err := s.pipeline.IngestSources(c.Context(), civiclens.FeedFetcher(s.feedClient), sources)
	if err != nil {
		s.logger.Error("ingestion failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "document ingestion failed")
	}

	s.statsCache.Flush()

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf(
			"Document ingestion completed successfully. Loaded %d documents.",
			summary.DocumentsLoaded),
		"run_id":           summary.RunID,
		"jurisdiction":     summary.Jurisdiction,
		"documents_loaded": summary.DocumentsLoaded,
		"skipped":          summary.Skipped,
		"categories":       summary.Categories,
		"sources":          summary.Sources,
		"limit_per_source": req.LimitPerSource,
	})
}

func (s *Server) searchSemantic(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return errorReply(c, fiber.StatusBadRequest, "invalid request body")
	}

	hits, err := s.ranker.Search(c.Context(), search.Query{
		Text:         req.Query,
		Jurisdiction: req.Jurisdiction,
		Category:     core.Category(req.Category),
		Limit:        req.TopK,
	})
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			return errorReply(c, fiber.StatusBadRequest, "query cannot be empty")
		}
		s.logger.Error("search failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "search failed")
	}

	results := make([]searchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, searchResult{
			documentResponse: toDocumentResponse(hit.Document),
			SimilarityScore:  hit.SimilarityScore,
			MatchReasons:     hit.MatchReasons,
		})
	}

	return c.JSON(fiber.Map{
		"results":       results,
		"total_results": len(results),
		"query":         req.Query,
		"jurisdiction":  "chicago",
	})
}

func (s *Server) searchSuggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"jurisdiction": "chicago",
		"suggestions":  answer.Suggestions(),
	})
}

func (s *Server) chatAsk(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorReply(c, fiber.StatusBadRequest, "invalid request body")
	}

	useContext := req.UseContext == nil || *req.UseContext

	var hits []core.ScoredDocument
	if useContext {
		var err error
		hits, err = s.ranker.Search(c.Context(), search.Query{
			Text:  req.Message,
			Limit: chatContextSize,
		})
		if err != nil && !errors.Is(err, core.ErrEmptyQuery) {
			s.logger.Error("chat context search failed", "err", err)
			return errorReply(c, fiber.StatusInternalServerError, "chat request failed")
		}
	}

	total, err := s.platform.DocumentRepository().CountDocuments(c.Context())
	if err != nil {
		s.logger.Error("document count failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "chat request failed")
	}

	reply, err := s.composer.Answer(c.Context(), req.Message, hits, total)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			return errorReply(c, fiber.StatusBadRequest, "message cannot be empty")
		}
		s.logger.Error("chat failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "chat request failed")
	}

	sources := make([]sourceRef, 0, len(reply.Sources))
	for _, src := range reply.Sources {
		sources = append(sources, sourceRef{
			Title:           src.Title,
			Authority:       src.Authority,
			URL:             src.URL,
			Category:        string(src.Category),
			SimilarityScore: src.SimilarityScore,
			MatchReasons:    src.MatchReasons,
		})
	}

	return c.JSON(fiber.Map{
		"answer":                   reply.Answer,
		"sources":                  sources,
		"confidence_score":         reply.ConfidenceScore,
		"jurisdiction":             reply.Jurisdiction,
		"model":                    reply.Model,
		"context_used":             reply.ContextUsed,
		"total_documents_searched": reply.TotalDocumentsSearched,
	})
}

func (s *Server) chatHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	turns, err := s.composer.History(c.Context(), limit)
	if err != nil {
		s.logger.Error("chat history failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "failed to get chat history")
	}

	history := make([]chatTurnResponse, 0, len(turns))
	for _, turn := range turns {
		history = append(history, chatTurnResponse{
			ID:        uint64(turn.Id),
			Role:      roleLabel(turn.Role),
			Message:   turn.Message,
			Timestamp: turn.Timestamp.Format("2006-01-02T15:04:05.999999Z07:00"),
		})
	}

	return c.JSON(fiber.Map{
		"conversation_history": history,
		"total_messages":       len(history),
	})
}

func (s *Server) chatClear(c *fiber.Ctx) error {
	cleared, err := s.composer.ClearHistory(c.Context())
	if err != nil {
		s.logger.Error("chat clear failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "failed to clear chat history")
	}

	return c.JSON(fiber.Map{
		"message":       "Chat history cleared successfully",
		"turns_cleared": cleared,
	})
}

func (s *Server) listDocuments(c *fiber.Ctx) error {
	filter := storage.DocumentFilter{
		Category:     core.Category(c.Query("category")),
		Source:       c.Query("source"),
		DocumentType: c.Query("type"),
		Jurisdiction: c.Query("jurisdiction"),
		Limit:        c.QueryInt("limit", 0),
	}

	docs, err := s.platform.DocumentRepository().ListDocuments(c.Context(), filter)
	if err != nil {
		s.logger.Error("document listing failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "failed to retrieve documents")
	}

	responses := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, toDocumentResponse(doc))
	}
	return c.JSON(responses)
}

func (s *Server) getDocument(c *fiber.Ctx) error {
	doc, err := s.platform.DocumentRepository().GetDocument(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorReply(c, fiber.StatusNotFound, "Document not found")
		}
		s.logger.Error("document fetch failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "failed to retrieve document")
	}

	return c.JSON(toDocumentResponse(doc))
}

func (s *Server) statsOverview(c *fiber.Ctx) error {
	const cacheKey = "stats_overview"
	if cached, ok := s.statsCache.Get(cacheKey); ok {
		return c.JSON(cached)
	}

	stats, err := s.platform.DocumentRepository().CorpusStats(c.Context())
	if err != nil {
		s.logger.Error("stats computation failed", "err", err)
		return errorReply(c, fiber.StatusInternalServerError, "failed to get document statistics")
	}

	payload := fiber.Map{
		"jurisdiction":    "chicago",
		"total_documents": stats.TotalDocuments,
		"categories":      stats.Categories,
		"sources":         stats.Sources,
		"authorities":     stats.Authorities,
		"types":           stats.Types,
		"date_range": fiber.Map{
			"earliest": stats.DateRange.Earliest,
			"latest":   stats.DateRange.Latest,
		},
	}
	s.statsCache.SetDefault(cacheKey, payload)

	return c.JSON(payload)
}

func toDocumentResponse(doc *core.Document) documentResponse {
	return documentResponse{
		ID:            doc.DocumentID,
		Title:         doc.Title,
		Content:       doc.Content,
		DocumentType:  doc.DocumentType,
		Category:      string(doc.Category),
		Jurisdiction:  doc.Jurisdiction,
		Authority:     doc.Authority,
		URL:           doc.URL,
		EffectiveDate: doc.EffectiveDate,
		Source:        doc.Source,
	}
}

func roleLabel(role core.Role) string {
	switch role {
	case core.RoleUser:
		return "user"
	case core.RoleAI:
		return "ai"
	default:
		return "unknown"
	}
}

func errorReply(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}
