package app

import "github.com/josephgoksu/FocusFlow/internal/task"

// State is everything a presenter renders. Snapshot returns a copy; mutating it has no effect.
type State struct {
	Tasks   []task.Task `json:"tasks"`
	Loading bool        `json:"loading"`
	Input   string      `json:"input"`
	// Advice is shown in the advice panel; empty means the panel is closed.
	Advice string  `json:"advice"`
	Notice *Notice `json:"notice,omitempty"`

	Adding    bool `json:"adding"`
	Expanding bool `json:"expanding"`
	Advising  bool `json:"advising"`

	CompletedCount  int `json:"completed_count"`
	Total           int `json:"total"`
	ProgressPercent int `json:"progress_percent"`
}

// Busy reports whether any flow is in flight.
func (s State) Busy() bool {
	return s.Adding || s.Expanding || s.Advising
}

func (s State) clone() State {
	out := s
	out.Tasks = make([]task.Task, len(s.Tasks))
	copy(out.Tasks, s.Tasks)
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	out.Total = len(out.Tasks)
	out.CompletedCount = task.CompletedCount(out.Tasks)
	out.ProgressPercent = task.ProgressPercent(out.CompletedCount, out.Total)
	return out
}
