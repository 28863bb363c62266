package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	return New(ts.URL, zap.NewNop()), ts
}

func TestFetchCart_Success(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		w.Write([]byte(`{"success":true,"cart":{"items":[{"productId":101,"title":"MongoDB: The Definitive Guide","author":"Shannon Bradshaw","price":39.99,"quantity":2,"imageUrl":"test-image.jpg"}],"totalItems":2,"total":79.98}}`))
	}))
	defer ts.Close()

	cart, err := client.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 79.98, cart.Total)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Shannon Bradshaw", cart.Items[0].Author)
}

func TestFetchCart_SuccessFalse(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer ts.Close()

	_, err := client.FetchCart(context.Background())
	assert.ErrorIs(t, err, ErrAPIFailure)
}

func TestFetchCart_MissingSuccessIndicator(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"cart":{"items":[],"totalItems":0,"total":0}}`))
	}))
	defer ts.Close()

	_, err := client.FetchCart(context.Background())
	assert.ErrorIs(t, err, ErrAPIFailure)
}

func TestFetchCart_MalformedBody(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer ts.Close()

	_, err := client.FetchCart(context.Background())
	assert.ErrorIs(t, err, ErrAPIFailure)
}

func TestFetchCart_NetworkFailure(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close() // nobody listening

	_, err := client.FetchCart(context.Background())
	assert.ErrorIs(t, err, ErrNetworkFailure)
}

func TestFetchCart_ConcurrentCallsCollapse(t *testing.T) {
	var hits atomic.Int32
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"success":true,"cart":{"items":[],"totalItems":0,"total":0}}`))
	}))
	defer ts.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.FetchCart(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestAddItem_ReturnsAuthoritativeCart(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		// The server may apply stock limits; the client must take this
		// cart verbatim instead of incrementing locally.
		w.Write([]byte(`{"success":true,"cart":{"items":[{"productId":101,"quantity":1}],"totalItems":1,"total":39.99}}`))
	}))
	defer ts.Close()

	cart, err := client.AddItem(context.Background(), 101, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalItems)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	var hits atomic.Int32
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	_, err := client.AddItem(context.Background(), 101, 0)
	require.Error(t, err)
	assert.Equal(t, int32(0), hits.Load(), "no request should be issued")
}

func TestRemoveItem_TargetsProductPath(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/cart/101", r.URL.Path)
		w.Write([]byte(`{"success":true,"cart":{"items":[],"totalItems":0,"total":0}}`))
	}))
	defer ts.Close()

	cart, err := client.RemoveItem(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, 0, cart.TotalItems)
}

func TestClearCart_Success(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clear-cart", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	assert.NoError(t, client.ClearCart(context.Background()))
}

func TestClearCart_Rejected(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false}`))
	}))
	defer ts.Close()

	err := client.ClearCart(context.Background())
	assert.ErrorIs(t, err, ErrAPIFailure)
}

func TestCircuitBreaker_OpensAfterRepeatedTransportFailures(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	// Every call, including those refused by the open breaker, must report
	// a transport-level failure to the caller.
	for i := 0; i < 8; i++ {
		_, err := client.fetchCart(context.Background())
		assert.ErrorIs(t, err, ErrNetworkFailure)
	}
}
