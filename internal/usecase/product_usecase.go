package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// ProductInput carries the mutable product fields of a create or update
// request. The image payload travels separately because it is optional on
// update.
type ProductInput struct {
	Name        string
	Category    string
	Price       float64
	Description string
	IsFeatured  bool
}

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput, imageData []byte) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, input ProductInput, imageData []byte) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ImportProducts(ctx context.Context, raw []domain.RawProduct) (int, error)
	ExportProducts(ctx context.Context) ([]domain.ProductExport, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	uploader    domain.ImageUploader
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, uploader domain.ImageUploader, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		uploader:    uploader,
		log:         logger,
	}
}

func validateInput(input ProductInput) error {
	if input.Name == "" {
		return fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
	}
	if input.Category == "" {
		return fmt.Errorf("product category cannot be empty: %w", domain.ErrValidation)
	}
	if input.Price < 0 {
		return fmt.Errorf("product price cannot be negative: %w", domain.ErrValidation)
	}
	return nil
}

// roundPrice keeps prices at the fixed 2-digit precision of the store's
// NUMERIC(10,2) column.
func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return uc.productRepo.ListProducts(ctx)
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	return uc.productRepo.GetProductByID(ctx, id)
}

// CreateProduct uploads the image before touching the store: a failed
// upload means no row is ever written. The reverse failure (row insert
// after a successful upload) orphans the uploaded image; there is no
// cleanup path for that case.
func (uc *productUseCase) CreateProduct(ctx context.Context, input ProductInput, imageData []byte) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		uc.log.Warnf("Use Case: Invalid create product request: %v", err)
		return nil, err
	}
	if len(imageData) == 0 {
		uc.log.Warn("Use Case: Attempted to create product without an image")
		return nil, fmt.Errorf("product image is required: %w", domain.ErrValidation)
	}

	imageURL, err := uc.uploader.UploadImage(ctx, imageData)
	if err != nil {
		uc.log.Errorf("Use Case: Image upload failed for product '%s': %v", input.Name, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	product := &domain.Product{
		Name:        input.Name,
		Category:    input.Category,
		Price:       roundPrice(input.Price),
		Description: input.Description,
		ImageURL:    imageURL,
		IsFeatured:  input.IsFeatured,
	}
	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", input.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

// UpdateProduct is an image-preserving merge: without a new image payload
// the existing image reference is kept unchanged.
func (uc *productUseCase) UpdateProduct(ctx context.Context, id int, input ProductInput, imageData []byte) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		uc.log.Warnf("Use Case: Invalid update request for product ID %d: %v", id, err)
		return nil, err
	}

	existing, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	if len(imageData) > 0 {
		imageURL, err = uc.uploader.UploadImage(ctx, imageData)
		if err != nil {
			uc.log.Errorf("Use Case: Image upload failed while updating product ID %d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
	}

	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Price:       roundPrice(input.Price),
		Description: input.Description,
		ImageURL:    imageURL,
		IsFeatured:  input.IsFeatured,
	}
	if err := uc.productRepo.UpdateProduct(ctx, product); err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product ID %d updated", id)
	return product, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int) error {
	return uc.productRepo.DeleteProduct(ctx, id)
}

// ImportProducts resolves missing fields to defaults instead of rejecting
// rows; the only validation is that the batch itself is non-empty. All rows
// are inserted as one transaction.
func (uc *productUseCase) ImportProducts(ctx context.Context, raw []domain.RawProduct) (int, error) {
	if len(raw) == 0 {
		uc.log.Warn("Use Case: Rejected empty import batch")
		return 0, fmt.Errorf("import expects a non-empty array of products: %w", domain.ErrValidation)
	}

	products := make([]domain.Product, 0, len(raw))
	for _, entry := range raw {
		product := entry.WithDefaults()
		product.Price = roundPrice(product.Price)
		products = append(products, product)
	}

	count, err := uc.productRepo.ImportProducts(ctx, products)
	if err != nil {
		uc.log.Errorf("Use Case: Import of %d products failed: %v", len(products), err)
		return 0, err
	}

	uc.log.Infof("Use Case: Imported %d products", count)
	return count, nil
}

// ExportProducts strips store-assigned ids so an exported file can be
// re-imported without colliding with existing rows.
func (uc *productUseCase) ExportProducts(ctx context.Context) ([]domain.ProductExport, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	exported := make([]domain.ProductExport, 0, len(products))
	for _, p := range products {
		exported = append(exported, domain.ProductExport{
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			IsFeatured:  p.IsFeatured,
		})
	}
	return exported, nil
}
