// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/merchio-backend/internal/i18n"
	"github.com/javajoker/merchio-backend/internal/models"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

type ReviewHandler struct {
	catalog *services.CatalogService
}

func NewReviewHandler(catalog *services.CatalogService) *ReviewHandler {
	return &ReviewHandler{catalog: catalog}
}

// GET /products/:id/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.catalog.Reviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
	})
}

// POST /products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	req.ProductID = c.Param("id")

	review, err := h.catalog.AttachReview(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  review,
	})
}

// POST /reviews/:id/helpful
func (h *ReviewHandler) VoteHelpful(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.catalog.VoteHelpful(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewVoted),
	})
}
