package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
	"github.com/google/uuid"
)

// CheckoutSession is the processor handle the server issues for one
// purchase attempt.
type CheckoutSession struct {
	ID  string
	URL string
}

type sessionEnvelope struct {
	Success    bool   `json:"success"`
	SessionURL string `json:"sessionUrl"`
	SessionID  string `json:"sessionId"`
}

type createSessionRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
}

type paymentStatusResponse struct {
	PaymentStatus string `json:"paymentStatus"`
}

// CreateCheckoutSession asks the server to open a payment-processor session
// for the current cart. The server resolves the cart itself; no item or
// price data crosses the wire, so client-controlled fields cannot tamper
// with what is purchased.
func (c *Client) CreateCheckoutSession(ctx context.Context) (*CheckoutSession, error) {
	data, err := c.do(ctx, http.MethodPost, "/create-checkout-session", createSessionRequest{
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	var env sessionEnvelope
	if err := decode(data, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.SessionID == "" || env.SessionURL == "" {
		return nil, fmt.Errorf("%w: session response incomplete", ErrAPIFailure)
	}

	return &CheckoutSession{ID: env.SessionID, URL: env.SessionURL}, nil
}

// CheckPaymentStatus reports the processor outcome for a session. This
// endpoint carries no success envelope; a missing status field is treated
// as a malformed response.
func (c *Client) CheckPaymentStatus(ctx context.Context, sessionID string) (domain.PaymentStatus, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/check-payment-status/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return "", err
	}

	var resp paymentStatusResponse
	if err := decode(data, &resp); err != nil {
		return "", err
	}
	if resp.PaymentStatus == "" {
		return "", fmt.Errorf("%w: missing paymentStatus", ErrAPIFailure)
	}
	return domain.PaymentStatus(resp.PaymentStatus), nil
}
