package cart

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

const (
	breadcrumbCategory = "cart"
	extraCart          = "cart"
)

// Store owns the cart entries and the checkout result shown next to them.
// It is safe for concurrent use.
type Store struct {
	catalog  port.Catalog
	reporter port.Reporter
	logger   *zap.Logger

	mu      sync.Mutex
	entries []domain.Item
	state   domain.CheckoutState
	err     error
	attempt uint64
}

func NewStore(catalog port.Catalog, reporter port.Reporter, l *zap.Logger) *Store {
	return &Store{
		catalog:  catalog,
		reporter: reporter,
		logger:   logger.OrNop(l).Named("cart"),
	}
}

// Add appends item. A successful checkout flag is cleared; a failure flag is kept.
func (s *Store) Add(item domain.Item) error {
	if !s.catalog.Contains(item) {
		return fmt.Errorf("item[%s]: %w", item.ID, domain.ErrUnknownItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, item)
	if s.state == domain.CheckoutSuccess {
		s.state = domain.CheckoutIdle
	}

	// reported under the lock so the last report matches the last mutation
	s.reporter.SetExtra(extraCart, encodeEntries(s.entries))
	s.reporter.AddBreadcrumb(domain.Breadcrumb{
		Category: breadcrumbCategory,
		Message:  "added " + item.Name + " to cart",
		Level:    domain.LevelInfo,
	})
	s.logger.Debug("item added", zap.String("item_id", item.ID), zap.Int("entries", len(s.entries)))

	return nil
}

func (s *Store) AddByID(id string) (domain.Item, error) {
	item, ok := s.catalog.Lookup(id)
	if !ok {
		return domain.Item{}, fmt.Errorf("item[%s]: %w", id, domain.ErrUnknownItem)
	}

	if err := s.Add(item); err != nil {
		return domain.Item{}, err
	}

	return item, nil
}

// Empty clears the cart and the checkout result. An in-flight checkout keeps
// running but its result will no longer land.
func (s *Store) Empty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.state = domain.CheckoutIdle
	s.err = nil
	s.attempt++

	s.reporter.SetExtra(extraCart, "")
	s.reporter.AddBreadcrumb(domain.Breadcrumb{
		Category: breadcrumbCategory,
		Message:  "emptied cart",
		Level:    domain.LevelInfo,
	})
	s.logger.Debug("cart emptied")
}

func (s *Store) View() domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.NewCartView(s.entries)
}

func (s *Store) Entries() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.entries)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store) State() domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Err is the error of the last failed checkout, nil otherwise.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// StartCheckout snapshots the entries and marks the cart pending.
func (s *Store) StartCheckout() (domain.CheckoutTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.CheckoutPending {
		return domain.CheckoutTicket{}, domain.ErrCheckoutPending
	}
	if len(s.entries) == 0 {
		return domain.CheckoutTicket{}, domain.ErrEmptyCart
	}

	s.attempt++
	s.state = domain.CheckoutPending
	s.err = nil

	return domain.CheckoutTicket{
		Attempt: s.attempt,
		Entries: slices.Clone(s.entries),
	}, nil
}

// FinishCheckout records the outcome of ticket's attempt. It reports false
// when the cart was emptied after the attempt started.
func (s *Store) FinishCheckout(ticket domain.CheckoutTicket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket.Attempt != s.attempt || s.state != domain.CheckoutPending {
		return false
	}

	if err != nil {
		s.state = domain.CheckoutFailure
		s.err = err
		return true
	}

	s.state = domain.CheckoutSuccess
	s.err = nil
	return true
}

func encodeEntries(entries []domain.Item) string {
	data, err := json.Marshal(entries)
	if err != nil {
		// items are plain strings and integers
		return ""
	}
	return string(data)
}
