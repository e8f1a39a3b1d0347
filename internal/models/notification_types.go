package models

// Severity picks the colour of a banner.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// ColorClass maps a severity to the CSS class the pages use.
func (s Severity) ColorClass() string {
	if s == SeveritySuccess {
		return "bg-green-500"
	}
	return "bg-red-500"
}

// Notification is the transient banner shown at the top of every page.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Visible  bool     `json:"visible"`
}

// Cue is an audio cue the browser plays after an operation.
type Cue string

const (
	CueSuccess Cue = "success"
	CueError   Cue = "error"
)
