package models

type TaskState int

// Declaration order is the list sort order.
const (
	StateActive TaskState = iota
	StateWaiting
	StatePaused
	StateError
	StateComplete
	StateRemoved
)

var stateNames = map[TaskState]string{
	StateActive:   "active",
	StateWaiting:  "waiting",
	StatePaused:   "paused",
	StateError:    "error",
	StateComplete: "complete",
	StateRemoved:  "removed",
}

func (s TaskState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseTaskState maps the daemon's status string. Unknown values are
// reported as removed.
func ParseTaskState(raw string) (TaskState, bool) {
	for state, name := range stateNames {
		if name == raw {
			return state, true
		}
	}
	return StateRemoved, false
}

// Status is one task as reported by a daemon. Values are never mutated after
// creation; a refresh replaces them.
type Status struct {
	ID              string    `json:"id"`
	State           TaskState `json:"-"`
	CompletedLength uint64    `json:"completed_length"`
	TotalLength     uint64    `json:"total_length"`
	DownloadSpeed   uint64    `json:"download_speed"`
	UploadSpeed     uint64    `json:"upload_speed"`
	Connections     uint64    `json:"connections"`
	NumSeeders      uint64    `json:"num_seeders"`
	Dir             string    `json:"dir"`
	Name            string    `json:"name"`
}

// Progress is the completed fraction within [0, 1]. A task with unknown
// total size (total == 0) reports 0.
func (s *Status) Progress() float64 {
	if s.TotalLength == 0 {
		return 0
	}
	return min(float64(s.CompletedLength)/float64(s.TotalLength), 1)
}

// ProgressKey quantizes Progress to 1/10000 for ordering.
func (s *Status) ProgressKey() uint16 {
	return uint16(s.Progress() * 10000)
}

// Target identifies a chat message that can be edited in place.
type Target struct {
	ChatID    int64
	MessageID int
}

type Button struct {
	Text string
	Data string
}

type Keyboard [][]Button

type TaskLine struct {
	Text string
	ID   string
}

// AddURIsResult holds the ids of the uris added so far, in input order, and
// the error that stopped processing, if any.
type AddURIsResult struct {
	IDs []string
	Err error
}

type SelectResult int

const (
	SelectSuccess SelectResult = iota
	SelectNoNeed
	SelectFailure
)

func (r SelectResult) String() string {
	switch r {
	case SelectSuccess:
		return "success"
	case SelectNoNeed:
		return "no_need"
	default:
		return "failure"
	}
}

type PendingURIs struct {
	Dir  string
	URIs []string
}

type PendingTorrent struct {
	Dir    string
	FileID string
}

type ServerResponse struct {
	Name        string `json:"name"`
	TasksCount  int    `json:"tasks_count"`
	Subscribed  bool   `json:"subscribed"`
	LastRefresh string `json:"last_refresh"`
}

type TaskResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Dir      string  `json:"dir"`
	Speed    uint64  `json:"download_speed"`
}
