// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/merchio-backend/internal/i18n"
	"github.com/javajoker/merchio-backend/internal/models"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

type ProductHandler struct {
	catalog   *services.CatalogService
	favorites *services.FavoriteService
}

// ProductView is a product as seen by one user.
type ProductView struct {
	models.Product
	IsFavorite bool `json:"is_favorite"`
}

func NewProductHandler(catalog *services.CatalogService, favorites *services.FavoriteService) *ProductHandler {
	return &ProductHandler{
		catalog:   catalog,
		favorites: favorites,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := parseProductQuery(c, h.catalog.DefaultPageSize())

	page, err := h.catalog.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.annotate(c, page.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.PaginationResult{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Data:       views,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.FetchAndRecordView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.annotate(c, []models.Product{*product})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": views[0],
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.ProductInput
	if !bindJSON(c, &req) {
		return
	}
	req.ID = ""

	product, err := h.catalog.Upsert(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.ProductInput
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("id")

	product, err := h.catalog.Upsert(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.catalog.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// GET /products/:id/related
func (h *ProductHandler) GetRelatedProducts(c *gin.Context) {
	limit := queryInt(c, "limit", services.DefaultRelatedLimit)

	products, err := h.catalog.RelatedProducts(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.annotate(c, products)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": views,
	})
}

// GET /products/compare?ids=a,b
func (h *ProductHandler) CompareProducts(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	if len(ids) == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "ids"), nil)
		return
	}

	products, err := h.catalog.Compare(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// annotate marks which products are favorites of the requesting user.
func (h *ProductHandler) annotate(c *gin.Context, products []models.Product) ([]ProductView, error) {
	userID, _ := utils.GetUserIDFromContext(c)
	favorites, err := h.favorites.FavoriteSet(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, IsFavorite: favorites[p.ID]})
	}
	return views, nil
}
