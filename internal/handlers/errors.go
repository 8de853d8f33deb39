// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/merchio-backend/internal/i18n"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

// respondError maps service errors onto the API envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrUserRequired):
		utils.UnauthorizedResponse(c, "")
	default:
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		_ = c.Error(err)
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Catalog operation failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON binds the request body and writes the 400 itself on failure.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}
