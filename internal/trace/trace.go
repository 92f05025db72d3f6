package trace

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/util"
)

// excerptLimit bounds how much of a body is kept per entry.
const excerptLimit = 400

// Entry is one recorded HTTP exchange with the verification service.
type Entry struct {
	ID       string        `json:"id"`
	At       time.Time     `json:"at"`
	Method   string        `json:"method"`
	URL      string        `json:"url"`
	Status   int           `json:"status"` // 0 when no response arrived
	Duration time.Duration `json:"duration"`
	BodySize string        `json:"body_size"`
	Excerpt  string        `json:"excerpt,omitempty"`
	Err      string        `json:"error,omitempty"`
}

// Recorder keeps a bounded ring of recent exchanges backing the debug panel.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewRecorder creates a recorder retaining at most max entries.
func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 32
	}
	return &Recorder{max: max}
}

// Record appends one exchange and returns the stored entry.
func (r *Recorder) Record(method, url string, status int, d time.Duration, body string, err error) Entry {
	e := Entry{
		ID:       uuid.NewString(),
		At:       time.Now().UTC(),
		Method:   method,
		URL:      url,
		Status:   status,
		Duration: d,
		BodySize: humanize.Bytes(uint64(len(body))),
		Excerpt:  util.Excerpt(body, excerptLimit),
	}
	if err != nil {
		e.Err = err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
	return e
}

// Entries returns a copy of the retained entries, oldest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns the most recent entry, if any.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}
