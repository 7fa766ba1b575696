package domain

import "context"

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	IsFeatured  bool    `json:"isFeatured"`
}

// RawProduct is a single entry of a bulk-import payload. Every field is
// optional on the wire; missing values are defaulted, not rejected.
type RawProduct struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	IsFeatured  bool    `json:"isFeatured"`
}

// WithDefaults resolves a raw import entry into a full product record.
func (r RawProduct) WithDefaults() Product {
	p := Product{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		IsFeatured:  r.IsFeatured,
	}
	if p.Name == "" {
		p.Name = "Unnamed Product"
	}
	if p.Category == "" {
		p.Category = "Uncategorized"
	}
	if p.Price < 0 {
		p.Price = 0
	}
	return p
}

// ProductExport is a product record with the id stripped, so that a
// re-import always inserts fresh rows instead of colliding with
// store-assigned ids. JSON keys match what import accepts.
type ProductExport struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	IsFeatured  bool    `json:"isFeatured"`
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id int) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id int) error
	// ImportProducts inserts every product inside a single transaction.
	// If any insert fails the whole batch is rolled back.
	ImportProducts(ctx context.Context, products []Product) (int, error)
}

// ImageUploader converts raw image bytes into a durable, publicly
// resolvable URL on the image host.
type ImageUploader interface {
	UploadImage(ctx context.Context, data []byte) (string, error)
}
