package model

import "time"

// RunReport describes a finished league sync run.
type RunReport struct {
	RunID      string    `json:"run_id"`
	Tag        string    `json:"tag"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Entrants   int       `json:"entrants"`
	NoPicks    int       `json:"no_picks"`
	Failed     []string  `json:"failed,omitempty"`
	Ignored    int       `json:"ignored"`
	Error      string    `json:"error,omitempty"`
}

// Succeeded reports whether the run completed and persisted a snapshot.
func (r RunReport) Succeeded() bool {
	return r.Error == ""
}

// LeagueStatus is what the chat gateway shows while and after a run.
type LeagueStatus struct {
	Key        string     `json:"key"`
	Tag        string     `json:"tag"`
	Running    bool       `json:"running"`
	Progress   string     `json:"progress,omitempty"`
	ProgressAt time.Time  `json:"progress_at,omitempty"`
	LastRun    *RunReport `json:"last_run,omitempty"`
}
