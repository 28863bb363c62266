package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
)

type productsEnvelope struct {
	Success  bool             `json:"success"`
	Products []domain.Product `json:"products"`
}

// FetchProducts lists the catalog. A failure here is terminal for the view;
// the caller renders an error state.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		return nil, err
	}

	var env productsEnvelope
	if err := decode(data, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: products response lacks success indicator", ErrAPIFailure)
	}
	return env.Products, nil
}
