package mockapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server is an in-memory stand-in for the commerce backend, implementing
// the HTTP+JSON contract the storefront consumes. It backs cmd/mockapi for
// local runs and doubles as the black-box server in end-to-end tests.
type Server struct {
	mu           sync.Mutex
	products     []domain.Product
	quantities   map[int64]int
	order        []int64 // insertion order; the server defines cart ordering
	sessions     map[string]domain.PaymentStatus
	processorURL string
	failSessions bool
	clearCalls   int
}

func New(processorURL string) *Server {
	return &Server{
		products:     seedCatalog(),
		quantities:   make(map[int64]int),
		sessions:     make(map[string]domain.PaymentStatus),
		processorURL: processorURL,
	}
}

// Router builds the HTTP surface described by the API contract, plus a
// /internal/pay hook so tests and local runs can flip a session to paid.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/products", s.getProducts)
	r.Get("/api/cart", s.getCart)
	r.Post("/api/cart", s.addItem)
	r.Delete("/api/cart/{productID}", s.removeItem)
	r.Post("/api/clear-cart", s.clearCart)
	r.Post("/create-checkout-session", s.createCheckoutSession)
	r.Get("/api/check-payment-status/{sessionID}", s.checkPaymentStatus)

	r.Post("/internal/pay/{sessionID}", s.settleSession)

	return r
}

// MarkPaid flips a session to paid, simulating a completed processor
// redirect. Returns false for an unknown session.
func (s *Server) MarkPaid(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	s.sessions[sessionID] = domain.PaymentStatusPaid
	return true
}

// FailCheckout makes /create-checkout-session answer success=false, for
// exercising the no-record/no-navigation path.
func (s *Server) FailCheckout(fail bool) {
	s.mu.Lock()
	s.failSessions = fail
	s.mu.Unlock()
}

func (s *Server) getProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	products := append([]domain.Product(nil), s.products...)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
	})
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	cart := s.buildCart()
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cart":    cart,
	})
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondFailure(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.findProduct(req.ProductID)
	if product == nil {
		respondFailure(w, http.StatusNotFound, "product not found")
		return
	}
	if s.quantities[req.ProductID]+req.Quantity > product.Stock {
		respondFailure(w, http.StatusConflict, "insufficient stock")
		return
	}

	if _, ok := s.quantities[req.ProductID]; !ok {
		s.order = append(s.order, req.ProductID)
	}
	s.quantities[req.ProductID] += req.Quantity

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cart":    s.buildCart(),
	})
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondFailure(w, http.StatusBadRequest, "productID must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Removing an absent product is idempotent: the unchanged cart comes
	// back, not an error.
	if _, ok := s.quantities[productID]; ok {
		delete(s.quantities, productID)
		for i, id := range s.order {
			if id == productID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cart":    s.buildCart(),
	})
}

func (s *Server) clearCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.quantities = make(map[int64]int)
	s.order = nil
	s.clearCalls++
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ClearCalls counts /api/clear-cart hits, for asserting the at-most-once
// settlement discipline.
func (s *Server) ClearCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearCalls
}

func (s *Server) createCheckoutSession(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSessions {
		respondFailure(w, http.StatusServiceUnavailable, "payment processor unavailable")
		return
	}
	if len(s.order) == 0 {
		respondFailure(w, http.StatusBadRequest, "cart is empty, nothing to checkout")
		return
	}

	sessionID := "cs_" + uuid.NewString()
	s.sessions[sessionID] = domain.PaymentStatusPending

	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"sessionId":  sessionID,
		"sessionUrl": fmt.Sprintf("%s/pay/%s", s.processorURL, sessionID),
	})
}

func (s *Server) checkPaymentStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	s.mu.Lock()
	status, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]any{"paymentStatus": "unknown"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"paymentStatus": status.String()})
}

func (s *Server) settleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !s.MarkPaid(sessionID) {
		respondFailure(w, http.StatusNotFound, "unknown session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// buildCart derives the cart view from current quantities. Caller holds mu.
func (s *Server) buildCart() *domain.Cart {
	cart := &domain.Cart{Items: []domain.CartItem{}}
	for _, id := range s.order {
		product := s.findProduct(id)
		if product == nil {
			continue
		}
		quantity := s.quantities[id]
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Author:    product.Author,
			Price:     product.Price,
			Quantity:  quantity,
			ImageURL:  product.ImageURL,
		})
		cart.TotalItems += quantity
		cart.Total += product.Price * float64(quantity)
	}
	return cart
}

func (s *Server) findProduct(id int64) *domain.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func seedCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:       101,
			Title:    "MongoDB: The Definitive Guide",
			Author:   "Shannon Bradshaw",
			Price:    39.99,
			ImageURL: "https://images.example.com/books/101.jpg",
			Stock:    12,
			ISBN:     "978-1491954461",
			Rating:   4.5, ReviewCount: 214,
			Specifications: &domain.ProductSpecs{
				Publisher: "O'Reilly Media", PageCount: 514, PublicationYear: 2019,
			},
		},
		{
			ID:       102,
			Title:    "Clean Code",
			Author:   "Robert C. Martin",
			Price:    34.50,
			ImageURL: "https://images.example.com/books/102.jpg",
			Stock:    7,
			ISBN:     "978-0132350884",
			Rating:   4.7, ReviewCount: 982,
			Specifications: &domain.ProductSpecs{
				Publisher: "Prentice Hall", PageCount: 464, PublicationYear: 2008,
			},
		},
		{
			ID:            103,
			Title:         "Designing Data-Intensive Applications",
			Author:        "Martin Kleppmann",
			Price:         54.90,
			DiscountPrice: 49.90,
			ImageURL:      "https://images.example.com/books/103.jpg",
			Stock:         5,
			ISBN:          "978-1449373320",
			Rating:        4.8, ReviewCount: 1530,
			Specifications: &domain.ProductSpecs{
				Publisher: "O'Reilly Media", PageCount: 616, PublicationYear: 2017,
			},
		},
		{
			ID:       104,
			Title:    "The Go Programming Language",
			Author:   "Alan A. A. Donovan",
			Price:    44.99,
			ImageURL: "https://images.example.com/books/104.jpg",
			Stock:    0, // sold out, adds must be refused
			ISBN:     "978-0134190440",
			Specifications: &domain.ProductSpecs{
				Publisher: "Addison-Wesley", PageCount: 380, PublicationYear: 2015,
			},
		},
	}
}
