package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gaubuali/bingo-generator/internal/domain"
	"github.com/gaubuali/bingo-generator/internal/ports"
)

// GenerateCardsRequest is the application-level input (no HTTP or CLI types).
type GenerateCardsRequest struct {
	Range           domain.Range
	NumbersPerCard  int
	WantFreeCenter  bool
	CardCount       int
	AllowDuplicates bool
	Criterion       domain.DuplicateCriterion
}

// GenerateCardsResponse is the application-level output.
type GenerateCardsResponse struct {
	Batch     domain.CardBatch
	Sheet     domain.ReferenceSheet
	LatencyMS int64
}

// Pages is the number of document pages: two cards per page plus the
// caller's reference sheet.
func (r GenerateCardsResponse) Pages() int {
	return (len(r.Batch.Cards)+1)/2 + 1
}

// CardService orchestrates grid planning, card generation and rendering.
type CardService struct {
	renderer ports.CardRenderer
	rng      domain.RNG
	logger   *slog.Logger
}

func NewCardService(renderer ports.CardRenderer, rng domain.RNG, logger *slog.Logger) *CardService {
	return &CardService{
		renderer: renderer,
		rng:      rng,
		logger:   logger,
	}
}

// Plan resolves the grid shape for a numbers-per-card setting.
func (s *CardService) Plan(numbersPerCard int, wantFree bool) (domain.GridShape, error) {
	shape, err := domain.PlanGrid(numbersPerCard, wantFree)
	if err != nil {
		return domain.GridShape{}, fmt.Errorf("plan grid: %w", err)
	}
	return shape, nil
}

func (s *CardService) Generate(ctx context.Context, req GenerateCardsRequest) (GenerateCardsResponse, error) {
	start := time.Now()

	if err := req.Range.Validate(); err != nil {
		return GenerateCardsResponse{}, fmt.Errorf("validate range: %w", err)
	}

	shape, err := s.Plan(req.NumbersPerCard, req.WantFreeCenter)
	if err != nil {
		return GenerateCardsResponse{}, err
	}

	batch, err := domain.GenerateBatch(req.Range, shape, domain.BatchOptions{
		Count:           req.CardCount,
		AllowDuplicates: req.AllowDuplicates,
		Criterion:       req.Criterion,
	}, s.rng)
	if err != nil {
		return GenerateCardsResponse{}, fmt.Errorf("generate batch: %w", err)
	}
	batch.ID = uuid.NewString()

	sheet, err := domain.BuildReferenceSheet(req.Range)
	if err != nil {
		return GenerateCardsResponse{}, fmt.Errorf("build reference sheet: %w", err)
	}

	latency := time.Since(start).Milliseconds()
	s.logger.InfoContext(ctx, "generated cards",
		"batch_id", batch.ID,
		"cards", len(batch.Cards),
		"rows", shape.Rows,
		"cols", shape.Cols,
		"header", shape.HasHeader,
		"free_center", shape.HasFreeCenter,
		"retries", batch.Retries,
		"latency_ms", latency,
	)

	return GenerateCardsResponse{Batch: batch, Sheet: sheet, LatencyMS: latency}, nil
}

// Render generates a batch and writes the printable document to w.
func (s *CardService) Render(ctx context.Context, w io.Writer, req GenerateCardsRequest) (GenerateCardsResponse, error) {
	resp, err := s.Generate(ctx, req)
	if err != nil {
		return GenerateCardsResponse{}, err
	}

	if err := s.renderer.Render(ctx, w, ports.Printable{Batch: resp.Batch, Sheet: resp.Sheet}); err != nil {
		return GenerateCardsResponse{}, fmt.Errorf("render cards: %w", err)
	}
	return resp, nil
}

// ReferenceSheet builds the caller's listing for r.
func (s *CardService) ReferenceSheet(r domain.Range) (domain.ReferenceSheet, error) {
	sheet, err := domain.BuildReferenceSheet(r)
	if err != nil {
		return domain.ReferenceSheet{}, fmt.Errorf("build reference sheet: %w", err)
	}
	return sheet, nil
}
