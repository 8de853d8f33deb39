// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/merchio-backend/internal/i18n"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// GET /favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	products, err := h.favorites.FavoriteProducts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, IsFavorite: true})
	}

	utils.SuccessResponse(c, gin.H{
		"products": views,
	})
}

// POST /favorites/:productId
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, _ := utils.GetUserIDFromContext(c)

	favorite, err := h.favorites.AddFavorite(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFavoriteAdded),
		"favorite": favorite,
	})
}

// DELETE /favorites/:productId
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, _ := utils.GetUserIDFromContext(c)

	if err := h.favorites.RemoveFavorite(c.Request.Context(), userID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFavoriteRemoved),
	})
}

// POST /favorites/:productId/toggle
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, _ := utils.GetUserIDFromContext(c)

	isFavorite, err := h.favorites.ToggleFavorite(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyFavoriteRemoved)
	if isFavorite {
		message = i18n.T(lang, i18n.KeyFavoriteAdded)
	}
	utils.SuccessResponse(c, gin.H{
		"message":     message,
		"is_favorite": isFavorite,
	})
}
