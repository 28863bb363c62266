package domain

// Product is a catalog entry as the commerce API reports it.
type Product struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Author         string        `json:"author"`
	Price          float64       `json:"price"`
	DiscountPrice  float64       `json:"discountPrice,omitempty"`
	ImageURL       string        `json:"imageUrl"`
	Stock          int           `json:"stock"`
	ISBN           string        `json:"isbn,omitempty"`
	Description    string        `json:"description,omitempty"`
	Rating         float64       `json:"rating,omitempty"`
	ReviewCount    int           `json:"reviewCount,omitempty"`
	Specifications *ProductSpecs `json:"specifications,omitempty"`
}

type ProductSpecs struct {
	Publisher       string `json:"publisher,omitempty"`
	PageCount       int    `json:"pageCount,omitempty"`
	PublicationYear int    `json:"publicationYear,omitempty"`
}
