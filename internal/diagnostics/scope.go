// Package diagnostics holds Reporter implementations. Scope keeps the
// user, tags, extras and recent breadcrumbs in memory and attaches them to
// every captured exception, which is written to a zap logger.
package diagnostics

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultMaxBreadcrumbs = 100

type TimedBreadcrumb struct {
	domain.Breadcrumb
	At time.Time
}

type Snapshot struct {
	User        string
	Tags        map[string]string
	Extras      map[string]string
	Breadcrumbs []TimedBreadcrumb
}

type Event struct {
	Err   error
	At    time.Time
	Scope Snapshot
}

type Scope struct {
	mu             sync.Mutex
	logger         *zap.Logger
	maxBreadcrumbs int
	now            func() time.Time

	user        string
	tags        map[string]string
	extras      map[string]string
	breadcrumbs []TimedBreadcrumb
	events      []Event
}

func NewScope(l *zap.Logger, maxBreadcrumbs int) *Scope {
	if maxBreadcrumbs <= 0 {
		maxBreadcrumbs = DefaultMaxBreadcrumbs
	}
	return &Scope{
		logger:         logger.OrNop(l).Named("diagnostics"),
		maxBreadcrumbs: maxBreadcrumbs,
		now:            time.Now,
		tags:           make(map[string]string),
		extras:         make(map[string]string),
	}
}

func (s *Scope) SetUser(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = email
}

func (s *Scope) SetTag(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tags[key] = value
}

// SetExtra replaces the extra under key; an empty value removes it.
func (s *Scope) SetExtra(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		delete(s.extras, key)
		return
	}
	s.extras[key] = value
}

func (s *Scope) AddBreadcrumb(crumb domain.Breadcrumb) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.breadcrumbs = append(s.breadcrumbs, TimedBreadcrumb{Breadcrumb: crumb, At: s.now()})
	if over := len(s.breadcrumbs) - s.maxBreadcrumbs; over > 0 {
		s.breadcrumbs = slices.Delete(s.breadcrumbs, 0, over)
	}

	s.logger.Debug("breadcrumb",
		zap.String("category", crumb.Category),
		zap.String("message", crumb.Message),
		zap.String("level", string(crumb.Level)),
	)
}

func (s *Scope) CaptureException(err error) {
	if err == nil {
		return
	}

	s.mu.Lock()
	event := Event{Err: err, At: s.now(), Scope: s.snapshotLocked()}
	s.events = append(s.events, event)
	s.mu.Unlock()

	s.logger.Error("exception captured",
		zap.Error(err),
		zap.String("user", event.Scope.User),
		zap.Any("tags", event.Scope.Tags),
		zap.Any("extras", event.Scope.Extras),
		zap.Array("breadcrumbs", breadcrumbArray(event.Scope.Breadcrumbs)),
	)
}

func (s *Scope) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Exceptions returns the captured events, oldest first.
func (s *Scope) Exceptions() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.events)
}

func (s *Scope) snapshotLocked() Snapshot {
	return Snapshot{
		User:        s.user,
		Tags:        maps.Clone(s.tags),
		Extras:      maps.Clone(s.extras),
		Breadcrumbs: slices.Clone(s.breadcrumbs),
	}
}

type breadcrumbArray []TimedBreadcrumb

func (a breadcrumbArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, crumb := range a {
		err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(obj zapcore.ObjectEncoder) error {
			obj.AddString("category", crumb.Category)
			obj.AddString("message", crumb.Message)
			obj.AddString("level", string(crumb.Level))
			obj.AddTime("at", crumb.At)
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}
