package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/cloudpulse-dev/cloudpulse/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps service-layer error kinds onto HTTP statuses: NotFound
// to 404, validation to 400, everything else to 500.
func respondError(ctx *gin.Context, err error) {
	var notFound *apperrors.NotFoundError
	var validation *apperrors.ValidationError

	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
