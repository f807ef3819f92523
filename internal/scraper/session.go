package scraper

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/observability"
)

// LogSink — упорядоченный журнал одного прохода. Строки вида "[15:04:05] сообщение".
type LogSink struct {
	now    func() time.Time
	logger *observability.Logger
	lines  []string
}

func NewLogSink(now func() time.Time, logger *observability.Logger) *LogSink {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &LogSink{now: now, logger: logger}
}

// Add добавляет строку и дублирует её в структурный лог на уровне debug
func (l *LogSink) Add(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, fmt.Sprintf("[%s] %s", l.now().Format("15:04:05"), msg))
	l.logger.Debug(msg)
}

func (l *LogSink) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// String отдаёт журнал одним текстом (строки через \n)
func (l *LogSink) String() string {
	return strings.Join(l.lines, "\n")
}

// Session — состояние одного прохода: журнал, дедуп-индекс, записи
type Session struct {
	ID  string
	Log *LogSink

	seen       map[job.Fingerprint]struct{}
	jobs       []*job.Record
	cardErrors []*CardError
	nextURL    string
}

func newSession(now func() time.Time, logger *observability.Logger) *Session {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	id := uuid.NewString()
	return &Session{
		ID:   id,
		Log:  NewLogSink(now, logger.With("session_id", id)),
		seen: make(map[job.Fingerprint]struct{}),
		jobs: []*job.Record{},
	}
}

// remember возвращает false, если запись с таким (title, company) уже была
func (s *Session) remember(rec *job.Record) bool {
	fp := rec.Fingerprint()
	if _, ok := s.seen[fp]; ok {
		return false
	}
	s.seen[fp] = struct{}{}
	return true
}

func (s *Session) result() *ListResult {
	return &ListResult{
		Jobs:       s.jobs,
		NextURL:    s.nextURL,
		Log:        s.Log.String(),
		SessionID:  s.ID,
		CardErrors: s.cardErrors,
	}
}

func (s *Session) abort(err error) *ListResult {
	reason := abortReason(err)
	s.Log.Add("Aborted: %s", err.Error())
	return &ListResult{
		Jobs:       []*job.Record{},
		Error:      reason,
		Err:        err,
		Log:        s.Log.String(),
		SessionID:  s.ID,
		CardErrors: s.cardErrors,
	}
}

// ListResult — итог прохода по странице списка.
// NextURL == "" и Error == "" означают null / отсутствие ошибки.
type ListResult struct {
	Jobs      []*job.Record
	NextURL   string
	Error     string
	Err       error
	Log       string
	SessionID string

	// CardErrors — карточки, пропущенные из-за ошибок или отсутствия title/company
	CardErrors []*CardError
}

// Aborted — проход прерван до извлечения карточек
func (r *ListResult) Aborted() bool {
	return r.Err != nil
}

func (r *ListResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		Jobs      []*job.Record `json:"jobs"`
		NextURL   *string       `json:"nextUrl"`
		Error     string        `json:"error,omitempty"`
		Log       string        `json:"log,omitempty"`
		SessionID string        `json:"sessionId,omitempty"`
	}

	w := wire{Jobs: r.Jobs, Error: r.Error, Log: r.Log, SessionID: r.SessionID}
	if w.Jobs == nil {
		w.Jobs = []*job.Record{}
	}
	if r.NextURL != "" {
		next := r.NextURL
		w.NextURL = &next
	}
	return json.Marshal(w)
}
