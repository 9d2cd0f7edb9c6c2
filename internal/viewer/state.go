package viewer

import (
	"fmt"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

// State is the coordinator's position in the input → loading → viewer cycle.
type State int

const (
	StateInput State = iota
	StateLoading
	StateViewer
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateViewer:
		return "viewer"
	default:
		return "input"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "input":
		*s = StateInput
	case "loading":
		*s = StateLoading
	case "viewer":
		*s = StateViewer
	default:
		return fmt.Errorf("unknown view state %q", b)
	}
	return nil
}

// Session is the live view: what is displayed, under which title, with
// which server override. It exists only in StateViewer.
type Session struct {
	ID       string
	Source   domain.ImportRequest
	Document *domain.ParsedDocument
	Location string
	Title    string
	Override string
}

// Snapshot is a read-only view of the coordinator for the user surface.
type Snapshot struct {
	State            State             `json:"state"`
	SessionID        string            `json:"sessionId,omitempty"`
	Title            string            `json:"title,omitempty"`
	ServerOverride   string            `json:"serverOverride,omitempty"`
	SchemaVersion    string            `json:"schemaVersion,omitempty"`
	Passthrough      bool              `json:"passthrough,omitempty"`
	Source           domain.SourceKind `json:"source,omitempty"`
	PendingSelection string            `json:"pendingSelection,omitempty"`
}

// HostMessageImportSelection is the only message kind a host integration sends.
const HostMessageImportSelection = "ImportSelection"

// HostMessage is an event relayed from the host platform.
type HostMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Level classifies a transient notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows transient notifications to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }
