package controller

import (
	"errors"
	"net/http"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// respondError translates service/repository errors into the envelope.
// Unrecognized errors become a generic 500; the detail stays in the server
// log only.
func respondError(c *gin.Context, err error) {
	var missing *service.ErrMissingAnswers

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, service.ErrFormInactive):
		c.JSON(http.StatusNotFound, dto.Fail("not found"))
	case errors.Is(err, repository.ErrSlugTaken):
		c.JSON(http.StatusConflict, dto.Fail("slug already used"))
	case errors.Is(err, service.ErrOwnership):
		c.JSON(http.StatusForbidden, dto.Fail("forbidden"))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.Fail("email already registered"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid email or password"))
	case errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.Fail("session expired"))
	case errors.Is(err, service.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid token"))
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, dto.Envelope{
			Success: false,
			Message: "required questions unanswered",
			Data:    gin.H{"question_ids": missing.QuestionIDs},
		})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.Fail("internal server error"))
	}
}
