package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gaubuali/bingo-generator/internal/app"
	"github.com/gaubuali/bingo-generator/internal/domain"
)

const (
	// MaxCardsPerRequest caps a single HTTP batch.
	MaxCardsPerRequest = 500
	// MaxRangeSizePerRequest caps the numbers a request may span.
	MaxRangeSizePerRequest = 10_000
)

// Defaults fill query parameters the client leaves out.
type Defaults struct {
	Range           domain.Range
	NumbersPerCard  int
	WantFreeCenter  bool
	CardCount       int
	AllowDuplicates bool
	Criterion       domain.DuplicateCriterion
}

type Handler struct {
	svc      *app.CardService
	defaults Defaults
}

func NewHandler(svc *app.CardService, defaults Defaults) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/grid", h.Grid)
	e.GET("/v1/cards", h.Cards)
	e.GET("/v1/cards.pdf", h.CardsPDF)
	e.GET("/v1/reference", h.Reference)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Grid(c echo.Context) error {
	n, err := intParam(c, "n", h.defaults.NumbersPerCard)
	if err != nil {
		return badRequest(c, err)
	}
	free, err := boolParam(c, "free", h.defaults.WantFreeCenter)
	if err != nil {
		return badRequest(c, err)
	}

	shape, err := h.svc.Plan(n, free)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toShapeResp(shape))
}

func (h *Handler) Cards(c echo.Context) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	resp, err := h.svc.Generate(c.Request().Context(), req)
	if err != nil {
		return mapError(c, err)
	}

	cards := make([]CardResp, len(resp.Batch.Cards))
	for i, card := range resp.Batch.Cards {
		cards[i] = toCardResp(i, card)
	}
	return c.JSON(http.StatusOK, CardsResponse{
		BatchID: resp.Batch.ID,
		Range:   resp.Batch.Range,
		Shape:   toShapeResp(resp.Batch.Shape),
		Cards:   cards,
		Meta: MetaResp{
			RequestID: requestID(c),
			Retries:   resp.Batch.Retries,
			Pages:     resp.Pages(),
			LatencyMS: resp.LatencyMS,
		},
	})
}

func (h *Handler) CardsPDF(c echo.Context) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	// Buffered so a render failure can still produce a JSON error.
	var buf bytes.Buffer
	resp, err := h.svc.Render(c.Request().Context(), &buf, req)
	if err != nil {
		return mapError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bingo-%s.pdf"`, resp.Batch.ID))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handler) Reference(c echo.Context) error {
	r, err := h.parseRange(c)
	if err != nil {
		return badRequest(c, err)
	}

	sheet, err := h.svc.ReferenceSheet(r)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ReferenceResponse{Range: sheet.Range, Numbers: sheet.Numbers})
}

func (h *Handler) parseRange(c echo.Context) (domain.Range, error) {
	start, err := intParam(c, "start", h.defaults.Range.Start)
	if err != nil {
		return domain.Range{}, err
	}
	end, err := intParam(c, "end", h.defaults.Range.End)
	if err != nil {
		return domain.Range{}, err
	}
	r := domain.Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return domain.Range{}, err
	}
	if r.Size() > MaxRangeSizePerRequest {
		return domain.Range{}, fmt.Errorf("range must span at most %d numbers", MaxRangeSizePerRequest)
	}
	return r, nil
}

func (h *Handler) parseRequest(c echo.Context) (app.GenerateCardsRequest, error) {
	r, err := h.parseRange(c)
	if err != nil {
		return app.GenerateCardsRequest{}, err
	}
	n, err := intParam(c, "n", h.defaults.NumbersPerCard)
	if err != nil {
		return app.GenerateCardsRequest{}, err
	}
	free, err := boolParam(c, "free", h.defaults.WantFreeCenter)
	if err != nil {
		return app.GenerateCardsRequest{}, err
	}
	count, err := intParam(c, "count", h.defaults.CardCount)
	if err != nil {
		return app.GenerateCardsRequest{}, err
	}
	if count < 1 || count > MaxCardsPerRequest {
		return app.GenerateCardsRequest{}, fmt.Errorf("count must be between 1 and %d", MaxCardsPerRequest)
	}
	dups, err := boolParam(c, "allow_duplicates", h.defaults.AllowDuplicates)
	if err != nil {
		return app.GenerateCardsRequest{}, err
	}
	criterion := h.defaults.Criterion
	if raw := c.QueryParam("criterion"); raw != "" {
		criterion = domain.DuplicateCriterion(raw)
	}

	return app.GenerateCardsRequest{
		Range:           r,
		NumbersPerCard:  n,
		WantFreeCenter:  free,
		CardCount:       count,
		AllowDuplicates: dups,
		Criterion:       criterion,
	}, nil
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func boolParam(c echo.Context, name string, fallback bool) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return v, nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func mapError(c echo.Context, err error) error {
	var dupErr *domain.DuplicateExhaustionError

	switch {
	case errors.As(err, &dupErr):
		achieved := dupErr.Achieved
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Achieved: &achieved})
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrRangeTooSmall):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
