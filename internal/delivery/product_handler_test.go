package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type fakeProductUseCase struct {
	products    []domain.Product
	importedRaw []domain.RawProduct
	created     *usecase.ProductInput
	createdImg  []byte
}

func (f *fakeProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductUseCase) CreateProduct(ctx context.Context, input usecase.ProductInput, imageData []byte) (*domain.Product, error) {
	if len(imageData) == 0 {
		return nil, domain.ErrValidation
	}
	f.created = &input
	f.createdImg = imageData
	return &domain.Product{ID: 99, Name: input.Name}, nil
}

func (f *fakeProductUseCase) UpdateProduct(ctx context.Context, id int, input usecase.ProductInput, imageData []byte) (*domain.Product, error) {
	return &domain.Product{ID: id, Name: input.Name}, nil
}

func (f *fakeProductUseCase) DeleteProduct(ctx context.Context, id int) error {
	return nil
}

func (f *fakeProductUseCase) ImportProducts(ctx context.Context, raw []domain.RawProduct) (int, error) {
	if len(raw) == 0 {
		return 0, domain.ErrValidation
	}
	f.importedRaw = raw
	return len(raw), nil
}

func (f *fakeProductUseCase) ExportProducts(ctx context.Context) ([]domain.ProductExport, error) {
	exported := make([]domain.ProductExport, 0, len(f.products))
	for _, p := range f.products {
		exported = append(exported, domain.ProductExport{Name: p.Name, Category: p.Category, Price: p.Price})
	}
	return exported, nil
}

func setupProductRouter(uc usecase.ProductUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	router := gin.New()
	handler := NewProductHandler(uc, logger)
	noAuth := func(c *gin.Context) { c.Next() }
	handler.RegisterRoutes(router, noAuth)
	return router
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: 3, Name: "Oak Table", Category: "Furniture", Price: 450},
		{ID: 2, Name: "Brass Lamp", Category: "Lighting", Price: 80},
		{ID: 1, Name: "Ceramic Vase", Category: "Decor", Price: 35},
	}
}

func TestListProducts(t *testing.T) {
	router := setupProductRouter(&fakeProductUseCase{products: catalogFixture()})

	listNames := func(target string) []string {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, w.Code)

		data, err := json.Marshal(decodeData(t, w).Data)
		require.NoError(t, err)
		var products []domain.Product
		require.NoError(t, json.Unmarshal(data, &products))

		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.Name)
		}
		return names
	}

	t.Run("Unfiltered", func(t *testing.T) {
		assert.Equal(t, []string{"Oak Table", "Brass Lamp", "Ceramic Vase"}, listNames("/products"))
	})

	t.Run("SearchFilter", func(t *testing.T) {
		assert.Equal(t, []string{"Brass Lamp"}, listNames("/products?search=lamp"))
	})

	t.Run("MaxPriceFilter", func(t *testing.T) {
		assert.Equal(t, []string{"Brass Lamp", "Ceramic Vase"}, listNames("/products?max_price=80"))
	})

	t.Run("SortByPrice", func(t *testing.T) {
		assert.Equal(t, []string{"Ceramic Vase", "Brass Lamp", "Oak Table"}, listNames("/products?sort=price-asc"))
	})

	t.Run("OutOfRangePageClamps", func(t *testing.T) {
		assert.Equal(t, []string{"Oak Table", "Brass Lamp", "Ceramic Vase"}, listNames("/products?page=42"))
	})

	t.Run("InvalidMaxPrice", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?max_price=abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProductByID(t *testing.T) {
	router := setupProductRouter(&fakeProductUseCase{products: catalogFixture()})

	t.Run("Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/2", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/404", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MalformedID", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateProduct_Multipart(t *testing.T) {
	uc := &fakeProductUseCase{}
	router := setupProductRouter(uc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Oak Table"))
	require.NoError(t, writer.WriteField("category", "Furniture"))
	require.NoError(t, writer.WriteField("price", "450.00"))
	require.NoError(t, writer.WriteField("isFeatured", "true"))
	part, err := writer.CreateFormFile("image", "oak.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.created)
	assert.Equal(t, "Oak Table", uc.created.Name)
	assert.True(t, uc.created.IsFeatured)
	assert.Equal(t, []byte("jpeg-bytes"), uc.createdImg)
}

func TestCreateProduct_MissingPrice(t *testing.T) {
	router := setupProductRouter(&fakeProductUseCase{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Oak Table"))
	require.NoError(t, writer.WriteField("category", "Furniture"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportProducts(t *testing.T) {
	t.Run("AcceptsArray", func(t *testing.T) {
		uc := &fakeProductUseCase{}
		router := setupProductRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/products/import",
			strings.NewReader(`[{"name":"Oak Table","price":450},{}]`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, uc.importedRaw, 2)
	})

	t.Run("RejectsNonArray", func(t *testing.T) {
		router := setupProductRouter(&fakeProductUseCase{})

		req := httptest.NewRequest(http.MethodPost, "/products/import",
			strings.NewReader(`{"name":"Oak Table"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RejectsEmptyArray", func(t *testing.T) {
		router := setupProductRouter(&fakeProductUseCase{})

		req := httptest.NewRequest(http.MethodPost, "/products/import", strings.NewReader(`[]`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListCategories(t *testing.T) {
	router := setupProductRouter(&fakeProductUseCase{products: catalogFixture()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data, err := json.Marshal(decodeData(t, w).Data)
	require.NoError(t, err)
	var categories []string
	require.NoError(t, json.Unmarshal(data, &categories))
	assert.Equal(t, []string{"Furniture", "Lighting", "Decor"}, categories)
}
