package fantasy

import "strconv"

// Position abbreviation the API uses for drivers. Anything else is a team.
const positionDriver = "DR"

type leagueEnvelope struct {
	League *League `json:"league"`
}

// League is the roster returned for a league id.
type League struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Entrants []RosterEntry `json:"league_entrants"`
}

// RosterEntry is one participant row of a league roster.
type RosterEntry struct {
	UserID   int64    `json:"user_id"`
	TeamName string   `json:"team_name"`
	Score    *float64 `json:"score"`
}

// RemoteID is the entrant's user id in string form.
func (r RosterEntry) RemoteID() string {
	return strconv.FormatInt(r.UserID, 10)
}

// Points returns the entrant's aggregate score, zero when the API omitted it.
func (r RosterEntry) Points() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

type userEnvelope struct {
	User *User `json:"user"`
}

// User is an entrant's public profile.
type User struct {
	ID                    int64            `json:"id"`
	HistoricalPickedTeams []HistoricalPick `json:"historical_picked_teams"`
}

// HistoricalPick references the team an entrant locked in for a round.
type HistoricalPick struct {
	ID           int64 `json:"id"`
	GamePeriodID int64 `json:"game_period_id"`
}

// LatestPick returns the id of the most recent historical team, or
// ErrNoHistoricalPicks when the entrant has never locked in a team.
func (u *User) LatestPick() (string, error) {
	if u == nil || len(u.HistoricalPickedTeams) == 0 {
		return "", ErrNoHistoricalPicks
	}
	last := u.HistoricalPickedTeams[len(u.HistoricalPickedTeams)-1]
	return strconv.FormatInt(last.ID, 10), nil
}

type pickedTeamEnvelope struct {
	PickedTeam *PickedTeam `json:"picked_team"`
}

// PickedTeam is the detail of one historical team.
type PickedTeam struct {
	ID                  int64          `json:"id"`
	Score               *float64       `json:"score"`
	BoostedPlayerID     *int64         `json:"boosted_player_id"`
	MegaBoostedPlayerID *int64         `json:"mega_boosted_player_id"`
	PickedPlayers       []PickedPlayer `json:"picked_players"`
}

// PickedPlayer is a driver or team inside a picked team.
type PickedPlayer struct {
	Score  float64 `json:"score"`
	Player Player  `json:"player"`
}

// Player is the static description of a driver or team.
type Player struct {
	ID               int64   `json:"id"`
	DisplayName      string  `json:"display_name"`
	Position         string  `json:"position_abbreviation"`
	Price            float64 `json:"price"`
	PickedPercentage float64 `json:"picked_percentage"`
}

// RemoteID is the player id in string form.
func (p Player) RemoteID() string {
	return strconv.FormatInt(p.ID, 10)
}

// IsDriver reports whether the player occupies a driver slot.
func (p Player) IsDriver() bool {
	return p.Position == positionDriver
}

type loginRequest struct {
	Login    string `json:"Login"`
	Password string `json:"Password"`
}

type loginResponse struct {
	Data *struct {
		SubscriptionToken string `json:"subscriptionToken"`
	} `json:"data"`
}
