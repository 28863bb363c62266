package domain

// CartItem is a read-through copy of one line in the server-held cart.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

// Cart mirrors the server's cart exactly as last fetched. Totals are owned
// by the server and never recomputed on this side; item order is the
// server's order.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	Total      float64    `json:"total"`
}
