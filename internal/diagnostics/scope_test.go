package diagnostics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	_ port.Reporter = (*Scope)(nil)
	_ port.Reporter = Nop{}
)

func newObservedScope(t *testing.T, maxBreadcrumbs int) (*Scope, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScope(zap.New(core), maxBreadcrumbs)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	return s, logs
}

func TestScope_Context(t *testing.T) {
	s, _ := newObservedScope(t, 0)

	s.SetUser("buyer@yahoo.com")
	s.SetTag("session_id", "s-1")
	s.SetTag("transaction_id", "t-1")
	s.SetTag("transaction_id", "t-2")
	s.SetExtra("cart", `[{"id":"wrench"}]`)

	snap := s.Snapshot()
	assert.Equal(t, "buyer@yahoo.com", snap.User)
	assert.Equal(t, map[string]string{"session_id": "s-1", "transaction_id": "t-2"}, snap.Tags)
	assert.Equal(t, map[string]string{"cart": `[{"id":"wrench"}]`}, snap.Extras)

	s.SetExtra("cart", "")
	assert.Empty(t, s.Snapshot().Extras)
}

func TestScope_SnapshotIsACopy(t *testing.T) {
	s, _ := newObservedScope(t, 0)
	s.SetTag("session_id", "s-1")

	snap := s.Snapshot()
	snap.Tags["session_id"] = "changed"

	assert.Equal(t, "s-1", s.Snapshot().Tags["session_id"])
}

func TestScope_BreadcrumbRing(t *testing.T) {
	s, logs := newObservedScope(t, 3)

	for i := range 5 {
		s.AddBreadcrumb(domain.Breadcrumb{
			Category: "cart",
			Message:  fmt.Sprintf("crumb %d", i),
			Level:    domain.LevelInfo,
		})
	}

	crumbs := s.Snapshot().Breadcrumbs
	require.Len(t, crumbs, 3)
	assert.Equal(t, "crumb 2", crumbs[0].Message)
	assert.Equal(t, "crumb 4", crumbs[2].Message)

	assert.Equal(t, 5, logs.FilterMessage("breadcrumb").Len())
}

func TestScope_CaptureException(t *testing.T) {
	s, logs := newObservedScope(t, 0)

	s.SetUser("buyer@yahoo.com")
	s.SetTag("transaction_id", "t-1")
	s.AddBreadcrumb(domain.Breadcrumb{Category: "cart", Message: "added Wrench to cart", Level: domain.LevelInfo})

	err := &domain.StatusError{StatusCode: 400, Message: "Bad Request"}
	s.CaptureException(err)
	s.CaptureException(nil)

	events := s.Exceptions()
	require.Len(t, events, 1)
	assert.Equal(t, err, events[0].Err)
	assert.Equal(t, "t-1", events[0].Scope.Tags["transaction_id"])
	require.Len(t, events[0].Scope.Breadcrumbs, 1)

	entries := logs.FilterMessage("exception captured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "400 - Bad Request", fields["error"])
	assert.Equal(t, "buyer@yahoo.com", fields["user"])
}

func TestScope_EventKeepsScopeAtCaptureTime(t *testing.T) {
	s, _ := newObservedScope(t, 0)

	s.SetTag("transaction_id", "t-1")
	s.CaptureException(errors.New("boom"))
	s.SetTag("transaction_id", "t-2")

	events := s.Exceptions()
	require.Len(t, events, 1)
	assert.Equal(t, "t-1", events[0].Scope.Tags["transaction_id"])
}
