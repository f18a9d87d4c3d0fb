package http

import "github.com/gaubuali/bingo-generator/internal/domain"

// CardsResponse is the JSON shape returned by GET /v1/cards.
type CardsResponse struct {
	BatchID string       `json:"batch_id"`
	Range   domain.Range `json:"range"`
	Shape   ShapeResp    `json:"shape"`
	Cards   []CardResp   `json:"cards"`
	Meta    MetaResp     `json:"meta"`
}

type ShapeResp struct {
	Rows          int    `json:"rows"`
	Cols          int    `json:"cols"`
	Header        string `json:"header,omitempty"`
	HasFreeCenter bool   `json:"has_free_center"`
	NumberCount   int    `json:"number_count"`
}

// CardResp carries each cell as printable text ("FREE" for the center).
type CardResp struct {
	Number int        `json:"number"`
	Cells  [][]string `json:"cells"`
}

type ReferenceResponse struct {
	Range   domain.Range `json:"range"`
	Numbers []int        `json:"numbers"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	Retries   int    `json:"retries"`
	Pages     int    `json:"pages"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Achieved *int   `json:"achieved,omitempty"`
}

func toShapeResp(s domain.GridShape) ShapeResp {
	resp := ShapeResp{
		Rows:          s.Rows,
		Cols:          s.Cols,
		HasFreeCenter: s.HasFreeCenter,
		NumberCount:   s.NumberCount(),
	}
	if s.HasHeader {
		resp.Header = domain.HeaderLabels
	}
	return resp
}

func toCardResp(i int, card domain.Card) CardResp {
	cells := make([][]string, len(card.Cells))
	for r, row := range card.Cells {
		cells[r] = make([]string, len(row))
		for c, cell := range row {
			cells[r][c] = cell.Label()
		}
	}
	return CardResp{Number: i + 1, Cells: cells}
}
