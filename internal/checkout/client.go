package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	HeaderSessionID     = "X-Session-ID"
	HeaderTransactionID = "X-Transaction-ID"

	checkoutPath   = "checkout"
	defaultTimeout = 30 * time.Second
	tracerName     = "github.com/nikolayk812/storefront/internal/checkout"
)

type Config struct {
	BaseURL string
	// Timeout bounds one round trip. Ignored when HTTPClient is set.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client posts the cart to the order endpoint. Failures never leave Checkout;
// they end up in the cart state and in the reporter.
type Client struct {
	endpoint   string
	httpClient *http.Client

	cart     port.CheckoutCart
	session  *session.Session
	reporter port.Reporter
	logger   *zap.Logger
}

func NewClient(cfg Config, cart port.CheckoutCart, sess *session.Session, reporter port.Reporter, l *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if sess == nil {
		return nil, fmt.Errorf("session is nil")
	}

	endpoint, err := url.JoinPath(cfg.BaseURL, checkoutPath)
	if err != nil {
		return nil, fmt.Errorf("url.JoinPath: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		cart:       cart,
		session:    sess,
		reporter:   reporter,
		logger:     logger.OrNop(l).Named("checkout"),
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Checkout sends the current cart and blocks until the attempt resolves.
// It returns the cart's checkout state afterwards. A call made while another
// attempt is pending, or on an empty cart, sends nothing. A panic during the
// attempt is recovered and recorded as a failure.
func (c *Client) Checkout(ctx context.Context) (state domain.CheckoutState) {
	ticket, err := c.cart.StartCheckout()
	if err != nil {
		c.logger.Warn("checkout not started", zap.Error(err))
		return c.cart.State()
	}

	finished := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err := panicError(r)
		c.logger.Error("checkout panicked", zap.Error(err), zap.Stack("stack"))
		c.capture(err)
		if !finished {
			c.cart.FinishCheckout(ticket, err)
		}
		state = c.cart.State()
	}()

	transactionID := c.session.NewTransactionID()
	c.reporter.SetTag(session.TagTransaction, transactionID)

	log := c.logger.With(
		zap.String("session_id", c.session.ID),
		zap.String("transaction_id", transactionID),
	)

	start := time.Now()
	err = c.attempt(ctx, transactionID, ticket)
	if err != nil {
		c.capture(err)
		log.Warn("checkout failed",
			zap.Error(err),
			zap.Bool("network", IsNetworkError(err)),
			zap.Duration("took", time.Since(start)),
		)
	} else {
		log.Info("checkout succeeded", zap.Duration("took", time.Since(start)))
	}

	finished = true
	if !c.cart.FinishCheckout(ticket, err) {
		log.Info("cart emptied during checkout, result dropped")
	}

	return c.cart.State()
}

// attempt sends one order inside a client span. A panic while sending is
// returned as an error wrapping domain.ErrCheckoutPanic.
func (c *Client) attempt(ctx context.Context, transactionID string, ticket domain.CheckoutTicket) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "checkout",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("storefront.session_id", c.session.ID),
			attribute.String("storefront.transaction_id", transactionID),
			attribute.Int("storefront.cart.entries", len(ticket.Entries)),
		),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
			c.logger.Error("checkout request panicked", zap.Error(err), zap.Stack("stack"))
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}()

	return c.send(ctx, transactionID, domain.Order{
		Email: c.session.Email,
		Cart:  ticket.Entries,
	})
}

// capture hands err to the reporter; a panicking reporter is only logged.
func (c *Client) capture(err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("reporter panicked", zap.Any("panic", r), zap.NamedError("captured", err))
		}
	}()

	c.reporter.CaptureException(err)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", domain.ErrCheckoutPanic, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrCheckoutPanic, r)
}

// CheckoutAsync runs Checkout on its own goroutine. The channel yields the
// resulting state once and is then closed.
func (c *Client) CheckoutAsync(ctx context.Context) <-chan domain.CheckoutState {
	out := make(chan domain.CheckoutState, 1)
	go func() {
		defer close(out)
		out <- c.Checkout(ctx)
	}()
	return out
}

func (c *Client) send(ctx context.Context, transactionID string, order domain.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSessionID, c.session.ID)
	req.Header.Set(HeaderTransactionID, transactionID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	// only the head of the body is kept for error messages; the rest is drained
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxMessageBytes+1))
	if _, drainErr := io.Copy(io.Discard, resp.Body); readErr == nil {
		readErr = drainErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newStatusError(resp, respBody)
	}

	if readErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, readErr)
	}

	return nil
}

// IsNetworkError reports whether err means the request never completed.
func IsNetworkError(err error) bool {
	return errors.Is(err, domain.ErrNetwork)
}
