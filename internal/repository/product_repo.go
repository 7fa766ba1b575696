package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

const productColumns = "id, name, category, price, description, image_url, is_featured"

func scanProduct(row interface{ Scan(...interface{}) error }) (domain.Product, error) {
	var p domain.Product
	var description, imageURL sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &description, &imageURL, &p.IsFeatured)
	if err != nil {
		return domain.Product{}, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	return p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM products
        ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE id = $1`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found", id)
			return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return &product, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, category, price, description, image_url, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Category, product.Price,
		product.Description, product.ImageURL, product.IsFeatured,
	).Scan(&product.ID)
	if err != nil {
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Product created with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `
        UPDATE products
        SET name = $1, category = $2, price = $3, description = $4, image_url = $5, is_featured = $6
        WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.Category, product.Price,
		product.Description, product.ImageURL, product.IsFeatured,
		product.ID,
	)
	if err != nil {
		r.log.Errorf("Failed to update product ID %d: %v", product.ID, err)
		return fmt.Errorf("could not update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after updating product ID %d: %v", product.ID, err)
		return fmt.Errorf("could not confirm product update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Product with ID %d not found for update", product.ID)
		return fmt.Errorf("product with id %d: %w", product.ID, domain.ErrNotFound)
	}

	r.log.Infof("Product updated with ID: %d", product.ID)
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}

	r.log.Infof("Product deleted with ID: %d", id)
	return nil
}

// ImportProducts inserts the whole batch inside one transaction. A failure
// on any row rolls back every row, leaving the store untouched.
func (r *postgresProductRepository) ImportProducts(ctx context.Context, products []domain.Product) (count int, importErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Failed to begin import transaction: %v", err)
		return 0, fmt.Errorf("could not begin import transaction: %w", err)
	}

	defer func() {
		if importErr == nil {
			if err := tx.Commit(); err != nil {
				count = 0
				importErr = fmt.Errorf("could not commit import transaction: %w", err)
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			r.log.Errorf("Failed to roll back import transaction: %v", err)
		}
	}()

	query := `
        INSERT INTO products (name, category, price, description, image_url, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("could not prepare import statement: %w", err)
	}
	defer stmt.Close()

	for i, product := range products {
		_, err := stmt.ExecContext(ctx,
			product.Name, product.Category, product.Price,
			product.Description, product.ImageURL, product.IsFeatured,
		)
		if err != nil {
			r.log.Errorf("Import failed at row %d of %d, rolling back: %v", i+1, len(products), err)
			return 0, fmt.Errorf("import failed at row %d: %w", i+1, err)
		}
	}

	r.log.Infof("Imported %d products in a single transaction", len(products))
	return len(products), nil
}
