package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
)

type cartEnvelope struct {
	Success bool         `json:"success"`
	Cart    *domain.Cart `json:"cart"`
}

type statusEnvelope struct {
	Success bool `json:"success"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// FetchCart returns the current server-held cart. Concurrent calls collapse
// into a single request; every caller receives the same snapshot.
func (c *Client) FetchCart(ctx context.Context) (*domain.Cart, error) {
	v, err, _ := c.flight.Do("cart", func() (interface{}, error) {
		return c.fetchCart(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

func (c *Client) fetchCart(ctx context.Context) (*domain.Cart, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		return nil, err
	}
	return cartFromEnvelope(data)
}

// AddItem asks the server to add quantity of the product and returns the
// authoritative updated cart. The cart is never incremented locally, so a
// server-side stock limit cannot cause drift.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/cart", addItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}
	return cartFromEnvelope(data)
}

// RemoveItem removes the product from the cart. Removing an absent product
// is not an error; the server returns the unchanged cart.
func (c *Client) RemoveItem(ctx context.Context, productID int64) (*domain.Cart, error) {
	data, err := c.do(ctx, http.MethodDelete, "/api/cart/"+strconv.FormatInt(productID, 10), nil)
	if err != nil {
		return nil, err
	}
	return cartFromEnvelope(data)
}

// ClearCart empties the server-side cart. Called at most once per confirmed
// payment; by then the purchase has settled, so callers treat a failure here
// as soft and only log it.
func (c *Client) ClearCart(ctx context.Context) error {
	data, err := c.do(ctx, http.MethodPost, "/api/clear-cart", nil)
	if err != nil {
		return err
	}

	var env statusEnvelope
	if err := decode(data, &env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%w: clear-cart rejected", ErrAPIFailure)
	}
	return nil
}

func cartFromEnvelope(data []byte) (*domain.Cart, error) {
	var env cartEnvelope
	if err := decode(data, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Cart == nil {
		return nil, fmt.Errorf("%w: cart response lacks success indicator", ErrAPIFailure)
	}
	return env.Cart, nil
}
