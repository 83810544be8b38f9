package server

import (
	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/schedule"
)

type gridResponse struct {
	Week          string         `json:"week"`
	Dates         []string       `json:"dates"`
	Halls         []string       `json:"halls"`
	Slots         []string       `json:"slots"`
	DefaultWindow bool           `json:"default_window,omitempty"`
	Rows          []gridRow      `json:"rows"`
	Skipped       []skippedEntry `json:"skipped,omitempty"`
}

type gridRow struct {
	Hall  string     `json:"hall"`
	Date  string     `json:"date"`
	Cells []gridCell `json:"cells"`
}

// gridCell names the screening on start cells only; continuation cells
// carry just the id so clients can draw spans.
type gridCell struct {
	Kind        string `json:"kind"`
	ScreeningID string `json:"screening_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Time        string `json:"time,omitempty"`
	Duration    int    `json:"duration,omitempty"`
}

type skippedEntry struct {
	ScreeningID string `json:"screening_id"`
	Reason      string `json:"reason"`
}

func newGridResponse(res *schedule.Result) gridResponse {
	resp := gridResponse{
		Halls:         res.Halls,
		Slots:         res.Visible,
		DefaultWindow: res.UsedDefaultWindow,
		Dates:         make([]string, 0, len(res.Dates)),
		Rows:          make([]gridRow, 0, len(res.Halls)*len(res.Dates)),
	}
	if len(res.Dates) > 0 {
		resp.Week = dateutil.FormatDate(res.Dates[0])
	}
	for _, d := range res.Dates {
		resp.Dates = append(resp.Dates, dateutil.FormatDate(d))
	}

	for _, hall := range res.Halls {
		for _, key := range resp.Dates {
			row := res.Grid.RowByKey(hall, key)
			cells := make([]gridCell, len(row))
			for i, c := range row {
				cells[i] = gridCell{Kind: c.Kind.String()}
				if c.Screening == nil {
					continue
				}
				cells[i].ScreeningID = c.Screening.ID
				if c.IsStart() {
					cells[i].Title = c.Screening.Title
					cells[i].Time = c.Screening.Time
					cells[i].Duration = c.Screening.Duration
				}
			}
			resp.Rows = append(resp.Rows, gridRow{Hall: hall, Date: key, Cells: cells})
		}
	}

	for _, a := range res.Skipped() {
		resp.Skipped = append(resp.Skipped, skippedEntry{ScreeningID: a.Screening.ID, Reason: string(a.Reason)})
	}
	return resp
}
