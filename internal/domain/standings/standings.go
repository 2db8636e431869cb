// Package standings derives the rendered views of a league snapshot:
// ordinal positions for the table and per-entrant result totals.
package standings

import (
	"math"
	"strconv"

	"github.com/okian/pitwall/internal/domain/model"
)

// Row is one line of the league table.
type Row struct {
	Position int           `json:"position"`
	Ordinal  string        `json:"ordinal"`
	Entrant  model.Summary `json:"entrant"`
}

// Rank numbers summaries in the order given. The remote roster is already
// sorted by score, so position follows snapshot order.
func Rank(summaries []model.Summary) []Row {
	rows := make([]Row, 0, len(summaries))
	for i, s := range summaries {
		rows = append(rows, Row{Position: i + 1, Ordinal: Ordinal(i + 1), Entrant: s})
	}
	return rows
}

// Ordinal renders n as 1st, 2nd, 3rd, 4th, 11th, 21st and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// TeamSize is the number of picks in a full fantasy team: five drivers and
// one constructor.
const TeamSize = 6

// Totals sums an entrant's latest picks.
type Totals struct {
	Points float64 `json:"points"`
	Price  float64 `json:"price"`
	// AveragePicked is the summed pick percentage over a full team of
	// TeamSize picks, so missing picks count as zero.
	AveragePicked float64 `json:"average_picked"`
}

// Result is an entrant's picks for the latest round with their totals.
type Result struct {
	Entrant model.Entrant `json:"entrant"`
	Picks   []model.Pick  `json:"picks"`
	Totals  Totals        `json:"totals"`
}

// NewResult lists drivers in API order followed by the team and totals them.
// Values are rounded to one decimal.
func NewResult(e model.Entrant) Result {
	picks := make([]model.Pick, 0, len(e.Picks.Drivers)+1)
	picks = append(picks, e.Picks.Drivers...)
	if e.Picks.Team != nil {
		picks = append(picks, *e.Picks.Team)
	}

	var t Totals
	var picked float64
	for _, p := range picks {
		t.Points += p.Score
		t.Price += p.Price
		picked += p.Picked
	}
	t.AveragePicked = picked / TeamSize
	t.Points = round1(t.Points)
	t.Price = round1(t.Price)
	t.AveragePicked = round1(t.AveragePicked)

	return Result{Entrant: e, Picks: picks, Totals: t}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
