package app

import (
	"context"
	"sync"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/checkout"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/reconcile"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/store"
	"go.uber.org/zap"
)

// CommerceAPI is the slice of the API client the app drives directly.
type CommerceAPI interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, productID int64) (*domain.Cart, error)
}

// App wires the storefront subsystems and exposes the lifecycle entry
// points the host shell invokes: one application-start hook plus the user
// interaction handlers.
type App struct {
	api        CommerceAPI
	store      *store.Store
	checkout   *checkout.Initiator
	reconciler *reconcile.Reconciler
	logger     *zap.Logger
}

func New(api CommerceAPI, cartStore *store.Store, initiator *checkout.Initiator, reconciler *reconcile.Reconciler, logger *zap.Logger) *App {
	return &App{
		api:        api,
		store:      cartStore,
		checkout:   initiator,
		reconciler: reconciler,
		logger:     logger,
	}
}

// StartupResult reports what the mount-time checks concluded.
type StartupResult struct {
	Reconciliation reconcile.Outcome
	Products       []domain.Product
	CatalogErr     error // terminal for the view when non-nil
	BadgeLoaded    bool  // false means the badge kept its previous value
}

// OnApplicationStart runs the page-load side effects: catalog fetch, cart
// (badge) fetch and payment reconciliation, all concurrently with no
// ordering dependency. Snapshot replacement in the cart store makes the
// races safe; the last resolved response wins.
func (a *App) OnApplicationStart(ctx context.Context) StartupResult {
	var result StartupResult
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.Products, result.CatalogErr = a.api.FetchProducts(ctx)
	}()

	go func() {
		defer wg.Done()
		cart, err := a.api.FetchCart(ctx)
		if err != nil {
			// Non-fatal: the badge silently keeps its last-known value.
			a.logger.Warn("cart total fetch failed", zap.Error(err))
			return
		}
		a.store.Replace(cart)
		result.BadgeLoaded = true
	}()

	go func() {
		defer wg.Done()
		result.Reconciliation = a.reconciler.Run(ctx)
	}()

	wg.Wait()
	return result
}

// OpenCartPanel fetches the cart for display. On failure the panel renders
// an empty/error state, never a stale partial view.
func (a *App) OpenCartPanel(ctx context.Context) (*domain.Cart, error) {
	cart, err := a.api.FetchCart(ctx)
	if err != nil {
		return nil, err
	}
	a.store.Replace(cart)
	return cart, nil
}

// CloseCartPanel refreshes the badge after the panel closes.
func (a *App) CloseCartPanel(ctx context.Context) {
	cart, err := a.api.FetchCart(ctx)
	if err != nil {
		a.logger.Warn("badge refresh failed", zap.Error(err))
		return
	}
	a.store.Replace(cart)
}

// AddToCart performs a server-side add and returns the authoritative cart.
// Errors surface to the caller: the user's action had no effect and they
// must be told.
func (a *App) AddToCart(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := a.api.AddItem(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	a.store.Replace(cart)
	return cart, nil
}

// RemoveFromCart removes a product server-side; removing an absent product
// returns the unchanged cart.
func (a *App) RemoveFromCart(ctx context.Context, productID int64) (*domain.Cart, error) {
	cart, err := a.api.RemoveItem(ctx, productID)
	if err != nil {
		return nil, err
	}
	a.store.Replace(cart)
	return cart, nil
}

// BadgeCount is the cart icon counter.
func (a *App) BadgeCount() int {
	return a.store.BadgeCount()
}

// Checkout opens a processor session for the current cart. The displayed
// total is the last fetched snapshot total plus the fixed surcharge.
func (a *App) Checkout(ctx context.Context) error {
	snapshot, _ := a.store.Snapshot()
	return a.checkout.BeginCheckout(ctx, checkout.DisplayTotal(snapshot.Total))
}
