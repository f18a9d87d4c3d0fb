package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gaubuali/bingo-generator/internal/adapters/pdf"
	"github.com/gaubuali/bingo-generator/internal/app"
	"github.com/gaubuali/bingo-generator/internal/config"
	"github.com/gaubuali/bingo-generator/internal/domain"
)

func runCards(ctx context.Context, cfg config.Config) error {
	logger := newLogger(os.Stderr, cfg.LogLevel)
	svc := app.NewCardService(pdf.NewRenderer(""), newRNG(cfg.Seed), logger)

	path := cfg.OutputPath()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	resp, err := svc.Render(ctx, f, app.GenerateCardsRequest{
		Range:           cfg.Range(),
		NumbersPerCard:  cfg.NumbersPerCard,
		WantFreeCenter:  cfg.FreeCenter,
		CardCount:       cfg.CardCount,
		AllowDuplicates: cfg.AllowDuplicates,
		Criterion:       cfg.Criterion,
	})
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", path, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		var dupErr *domain.DuplicateExhaustionError
		if errors.As(err, &dupErr) {
			return fmt.Errorf("%w (try a wider range, more numbers per card or -allow-duplicates)", err)
		}
		return err
	}

	shape := resp.Batch.Shape
	fmt.Printf("PDF generated: %s\n", path)
	fmt.Printf("  Cards:            %d\n", len(resp.Batch.Cards))
	fmt.Printf("  Numbers per card: %d\n", shape.NumberCount())
	fmt.Printf("  Grid:             %dx%d\n", shape.Rows, shape.Cols)
	fmt.Printf("  Header:           %t\n", shape.HasHeader)
	fmt.Printf("  FREE center:      %t\n", shape.HasFreeCenter)
	fmt.Printf("  Pages:            %d\n", resp.Pages())
	return nil
}
