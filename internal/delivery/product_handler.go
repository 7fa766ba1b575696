package delivery

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/usecase"
)

// adminPageSize is the fixed page size of the admin product table.
const adminPageSize = 10

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter, authRequired gin.HandlerFunc) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)

		secured := products.Group("", authRequired)
		{
			secured.POST("", h.CreateProduct)
			secured.PUT("/:id", h.UpdateProduct)
			secured.DELETE("/:id", h.DeleteProduct)
			secured.POST("/import", h.ImportProducts)
		}
	}

	router.GET("/categories", h.ListCategories)
	router.GET("/export", authRequired, h.ExportProducts)
}

// ListProducts serves the full newest-first snapshot and optionally runs
// the query engine over it: search, category, max_price and sort filter the
// view, page applies the admin panel's fixed-size pagination.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}

	spec := catalog.FilterSpec{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortKey:  c.Query("sort"),
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			h.log.Warnf("Invalid max_price parameter: %s", maxPriceStr)
			ErrorResponse(c, http.StatusBadRequest, "Invalid max_price format")
			return
		}
		spec.MaxPrice = &maxPrice
	}

	view := catalog.Apply(products, spec)

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			h.log.Warnf("Invalid page parameter: %s", pageStr)
			ErrorResponse(c, http.StatusBadRequest, "Invalid page format")
			return
		}
		view = catalog.Paginate(view, page, adminPageSize)
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", view)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	input, ok := bindProductForm(c, h.log)
	if !ok {
		return
	}
	imageData, ok := readImageFile(c, h.log)
	if !ok {
		return
	}

	created, err := h.useCase.CreateProduct(c.Request.Context(), input, imageData)
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", input.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	h.log.Infof("Product created: ID %d, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, "Product added successfully", gin.H{"productId": created.ID})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	input, ok := bindProductForm(c, h.log)
	if !ok {
		return
	}
	imageData, ok := readImageFile(c, h.log)
	if !ok {
		return
	}

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), id, input, imageData)
	if err != nil {
		h.log.Errorf("Failed to update product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	h.log.Infof("Product updated: ID %d", id)
	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	h.log.Infof("Product deleted: ID %d", id)
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) ImportProducts(c *gin.Context) {
	var raw []domain.RawProduct
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.log.Warnf("Invalid import payload: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid data format. Expected an array of products.")
		return
	}

	count, err := h.useCase.ImportProducts(c.Request.Context(), raw)
	if err != nil {
		h.log.Errorf("Product import failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to import products: "+err.Error())
		return
	}

	h.log.Infof("Imported %d products", count)
	SuccessResponse(c, http.StatusCreated, "Products imported successfully", gin.H{"count": count})
}

func (h *ProductHandler) ExportProducts(c *gin.Context) {
	exported, err := h.useCase.ExportProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Product export failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to export products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products exported successfully", exported)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve categories: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", catalog.Categories(products))
}

func parseID(c *gin.Context, log *logrus.Logger) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warnf("Invalid product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return 0, false
	}
	return id, true
}

func bindProductForm(c *gin.Context, log *logrus.Logger) (usecase.ProductInput, bool) {
	priceStr := c.PostForm("price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil && priceStr != "" {
		log.Warnf("Invalid price field: %s", priceStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid price format")
		return usecase.ProductInput{}, false
	}
	if priceStr == "" {
		log.Warn("Missing required price field")
		ErrorResponse(c, http.StatusBadRequest, "Name, category, and price are required")
		return usecase.ProductInput{}, false
	}

	return usecase.ProductInput{
		Name:        c.PostForm("name"),
		Category:    c.PostForm("category"),
		Price:       price,
		Description: c.PostForm("description"),
		IsFeatured:  c.PostForm("isFeatured") == "true",
	}, true
}

// readImageFile reads the optional multipart image payload. A missing file
// yields nil bytes; create vs update decide whether that is acceptable.
func readImageFile(c *gin.Context, log *logrus.Logger) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// An absent file is acceptable here; CreateProduct rejects it in
		// the usecase where the image is mandatory.
		return nil, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("Failed to open uploaded image: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Could not read uploaded image")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("Failed to read uploaded image: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Could not read uploaded image")
		return nil, false
	}
	return data, true
}
