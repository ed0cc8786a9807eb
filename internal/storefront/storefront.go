// Package storefront wires the catalog, the buyer session, the cart and the
// checkout client for one process lifetime.
package storefront

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/diagnostics"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/session"
	"go.uber.org/zap"
)

type Storefront struct {
	catalog  *catalog.Catalog
	session  *session.Session
	cart     *cart.Store
	checkout *checkout.Client
	logger   *zap.Logger
}

// Options overrides parts of the wiring; zero values use the defaults.
type Options struct {
	Catalog *catalog.Catalog
	Session *session.Session
	// Checkout is merged over the backend settings of the config.
	Checkout checkout.Config
}

func New(cfg config.Config, reporter port.Reporter, l *zap.Logger, opts Options) (*Storefront, error) {
	l = logger.OrNop(l)
	if reporter == nil {
		reporter = diagnostics.Nop{}
	}

	c := opts.Catalog
	if c == nil {
		c = catalog.Default()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}
	session.Bind(sess, reporter, cfg.CustomerType)

	store := cart.NewStore(c, reporter, l)

	checkoutCfg := opts.Checkout
	if checkoutCfg.BaseURL == "" {
		checkoutCfg.BaseURL = cfg.Backend.BaseURL()
	}
	if checkoutCfg.Timeout == 0 {
		checkoutCfg.Timeout = cfg.Backend.CheckoutTimeout
	}

	client, err := checkout.NewClient(checkoutCfg, store, sess, reporter, l)
	if err != nil {
		return nil, fmt.Errorf("checkout.NewClient: %w", err)
	}

	l.Info("storefront ready",
		zap.String("email", sess.Email),
		zap.String("session_id", sess.ID),
		zap.String("endpoint", client.Endpoint()),
	)

	return &Storefront{
		catalog:  c,
		session:  sess,
		cart:     store,
		checkout: client,
		logger:   l,
	}, nil
}

func (s *Storefront) Catalog() *catalog.Catalog { return s.catalog }
func (s *Storefront) Session() *session.Session { return s.session }
func (s *Storefront) Cart() *cart.Store { return s.cart }
func (s *Storefront) Checkout() *checkout.Client { return s.checkout }

// Buy adds the catalog item with the given id to the cart.
func (s *Storefront) Buy(id string) (domain.Item, error) {
	return s.cart.AddByID(id)
}

func (s *Storefront) EmptyCart() {
	s.cart.Empty()
}

func (s *Storefront) PlaceOrder(ctx context.Context) domain.CheckoutState {
	return s.checkout.Checkout(ctx)
}

// Summary is the sidebar of the store: who is buying, what, and how it went.
type Summary struct {
	Email string
	View  domain.CartView
	State domain.CheckoutState
	Err   error
}

func (s *Storefront) Summary() Summary {
	return Summary{
		Email: s.session.Email,
		View:  s.cart.View(),
		State: s.cart.State(),
		Err:   s.cart.Err(),
	}
}

// CanCheckout mirrors the disabled state of the checkout button.
func (s Summary) CanCheckout() bool {
	return !s.View.IsEmpty() && s.State != domain.CheckoutPending
}
