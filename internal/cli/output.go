package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/internal/domain/standings"
)

// TokenInfo describes the cached session token without revealing it.
type TokenInfo struct {
	Backend   string    `json:"backend"`
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Output handles formatting output based on the configured format.
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w.
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format.
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	switch v := data.(type) {
	case []standings.Row:
		o.printStandings(v)
	case standings.Result:
		o.printResult(v)
	case model.RunReport:
		o.printReport(v)
	case []model.League:
		o.printLeagues(v)
	case TokenInfo:
		fmt.Fprintf(o.w, "Token cached (%s at %s)\nUpdated: %s\nExpires: %s\n",
			v.Backend, v.Path, v.UpdatedAt.Format(time.RFC3339), v.ExpiresAt.Format(time.RFC3339))
	default:
		o.printJSON(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) table() *tabwriter.Writer {
	return tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
}

func (o *Output) printStandings(rows []standings.Row) {
	tw := o.table()
	fmt.Fprintln(tw, "Pos\tName\tTotal\tRace\tDrivers\tTeam\tTurbo")
	for _, r := range rows {
		p := r.Entrant.Picks
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Ordinal, r.Entrant.Name, formatFloat(r.Entrant.Score), formatFloat(p.RaceScore),
			strings.Join(p.Drivers, ", "), p.Team, orUnknown(p.Turbo))
	}
	_ = tw.Flush()
}

func (o *Output) printResult(res standings.Result) {
	tw := o.table()
	fmt.Fprintln(tw, "Name\tTurbo\tPoints\tPrice\tPicked %")
	for _, p := range res.Picks {
		turbo := "No"
		if p.Turbo {
			turbo = "Yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, turbo, formatFloat(p.Score), formatFloat(p.Price), formatFloat(p.Picked))
	}
	t := res.Totals
	fmt.Fprintf(tw, "Total/Average\t\t%s\t%s\t%s\n", formatFloat(t.Points), formatFloat(t.Price), formatFloat(t.AveragePicked))
	_ = tw.Flush()
}

func (o *Output) printReport(r model.RunReport) {
	if !r.Succeeded() {
		fmt.Fprintf(o.w, "Fantasy update failed: %s\n", r.Error)
		return
	}
	fmt.Fprintf(o.w, "Fantasy details updated (%s): %d entrants, %d without picks, %d ignored\n",
		r.Tag, r.Entrants, r.NoPicks, r.Ignored)
	if len(r.Failed) > 0 {
		fmt.Fprintf(o.w, "Gave up on: %s\n", strings.Join(r.Failed, ", "))
	}
}

func (o *Output) printLeagues(leagues []model.League) {
	tw := o.table()
	fmt.Fprintln(tw, "Key\tTag\tLeague")
	for _, l := range leagues {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Key, l.Tag, l.LeagueID)
	}
	_ = tw.Flush()
}

// formatFloat prints up to 15 significant digits, so whole scores print as
// integers.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}

func orUnknown(s *string) string {
	if s == nil {
		return "???"
	}
	return *s
}
