package storefront_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/diagnostics"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/nikolayk812/storefront/internal/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		CustomerType: "medium-plan",
		Backend: config.BackendConfig{
			URL:             baseURL,
			Port:            3001,
			CheckoutTimeout: 5 * time.Second,
		},
	}
}

func TestNew(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scope := diagnostics.NewScope(nil, 0)

	s, err := storefront.New(testConfig("http://localhost:3001"), scope, zap.New(core), storefront.Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3001/checkout", s.Checkout().Endpoint())
	assert.Len(t, s.Catalog().Items(), 3)

	snap := scope.Snapshot()
	assert.Equal(t, s.Session().Email, snap.User)
	assert.Equal(t, s.Session().ID, snap.Tags[session.TagSession])
	assert.Equal(t, "medium-plan", snap.Tags[session.TagCustomerType])

	assert.Equal(t, 1, logs.FilterMessage("storefront ready").Len())
}

func TestNew_Options(t *testing.T) {
	saw := domain.Item{ID: "saw", Name: "Saw", PriceCents: 1500}
	c, err := catalog.New(saw)
	require.NoError(t, err)

	sess := &session.Session{Email: "buyer@yahoo.com", ID: "s-1"}

	s, err := storefront.New(testConfig(""), diagnostics.Nop{}, nil, storefront.Options{
		Catalog: c,
		Session: sess,
	})
	require.Error(t, err, "no backend configured")
	assert.Nil(t, s)

	s, err = storefront.New(testConfig("http://orders.local"), diagnostics.Nop{}, nil, storefront.Options{
		Catalog: c,
		Session: sess,
	})
	require.NoError(t, err)
	assert.Same(t, sess, s.Session())

	_, err = s.Buy("wrench")
	require.ErrorIs(t, err, domain.ErrUnknownItem)

	item, err := s.Buy("saw")
	require.NoError(t, err)
	assert.Equal(t, saw, item)
}

func TestSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	s, err := storefront.New(testConfig(srv.URL), diagnostics.Nop{}, nil, storefront.Options{})
	require.NoError(t, err)

	summary := s.Summary()
	assert.Equal(t, s.Session().Email, summary.Email)
	assert.True(t, summary.View.IsEmpty())
	assert.False(t, summary.CanCheckout())

	_, err = s.Buy("wrench")
	require.NoError(t, err)
	_, err = s.Buy("wrench")
	require.NoError(t, err)

	summary = s.Summary()
	assert.True(t, summary.CanCheckout())
	require.Len(t, summary.View.Lines, 1)
	assert.Equal(t, 2, summary.View.Lines[0].Quantity)
	assert.Equal(t, "$10.00", summary.View.Total().String())

	assert.Equal(t, domain.CheckoutSuccess, s.PlaceOrder(t.Context()))

	summary = s.Summary()
	assert.Equal(t, domain.CheckoutSuccess, summary.State)
	assert.NoError(t, summary.Err)

	s.EmptyCart()
	summary = s.Summary()
	assert.True(t, summary.View.IsEmpty())
	assert.Equal(t, domain.CheckoutIdle, summary.State)
}
