package model

import "fmt"

// Status is the outcome of fetching one entrant.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	// StatusNoPicks marks an entrant with no historical team. Their picks stay empty.
	StatusNoPicks Status = "no_picks"
	// StatusFailed is terminal: every allowed attempt hit a transient failure.
	StatusFailed Status = "failed"
)

// Pick is a single driver or team selection.
type Pick struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Picked float64 `json:"picked"` // percentage of players who picked it
	Score  float64 `json:"score"`
	Turbo  bool    `json:"turbo"`
	Mega   bool    `json:"mega"`
}

// Picks is an entrant's locked-in selection for the latest round.
type Picks struct {
	Team      *Pick   `json:"team"`
	Drivers   []Pick  `json:"drivers"`
	Turbo     *string `json:"turbo"`
	Mega      *string `json:"mega"`
	RaceScore float64 `json:"race_score"`
}

// Entrant is one participant of a fantasy league.
type Entrant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AccountID *int64  `json:"account_id"`
	TeamName  string  `json:"team_name"`
	Score     float64 `json:"score"`
	Picks     Picks   `json:"picks"`
	Status    Status  `json:"status"`

	// Retry is set after a transient fetch failure and cleared on success.
	Retry    bool `json:"-"`
	Attempts int  `json:"-"`
}

// PlaceholderName is the display name used for entrants nobody registered.
func PlaceholderName(teamName, remoteID string) string {
	return fmt.Sprintf("Unknown (%s/%s)", teamName, remoteID)
}

// NewEntrant builds an entrant from a roster row, resolving its display name
// and local account through the league's registered players.
func NewEntrant(remoteID, teamName string, score float64, league League) *Entrant {
	e := &Entrant{
		ID:       remoteID,
		Name:     PlaceholderName(teamName, remoteID),
		TeamName: teamName,
		Score:    score,
		Picks:    Picks{Drivers: []Pick{}},
		Status:   StatusPending,
	}
	if p, ok := league.Player(remoteID); ok {
		e.Name = p.Name
		accountID := p.AccountID
		e.AccountID = &accountID
	}
	return e
}

// Summary is the row persisted in the league summary snapshot.
type Summary struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	AccountID *int64       `json:"account_id"`
	Score     float64      `json:"score"`
	Status    Status       `json:"status"`
	Picks     SummaryPicks `json:"picks"`
}

// SummaryPicks flattens picks to display names.
type SummaryPicks struct {
	Team      string   `json:"team"`
	Drivers   []string `json:"drivers"`
	Turbo     *string  `json:"turbo"`
	Mega      *string  `json:"mega"`
	RaceScore float64  `json:"race_score"`
}

// Summary flattens the entrant for the summary snapshot.
func (e *Entrant) Summary() Summary {
	drivers := make([]string, 0, len(e.Picks.Drivers))
	for _, d := range e.Picks.Drivers {
		drivers = append(drivers, d.Name)
	}
	var team string
	if e.Picks.Team != nil {
		team = e.Picks.Team.Name
	}
	return Summary{
		ID:        e.ID,
		Name:      e.Name,
		AccountID: e.AccountID,
		Score:     e.Score,
		Status:    e.Status,
		Picks: SummaryPicks{
			Team:      team,
			Drivers:   drivers,
			Turbo:     e.Picks.Turbo,
			Mega:      e.Picks.Mega,
			RaceScore: e.Picks.RaceScore,
		},
	}
}
