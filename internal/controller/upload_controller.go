package controller

import (
	"net/http"
	"path/filepath"

	"github.com/arphatra/arphatra/config"
	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UploadController struct {
	uploadSvc service.UploadService
	maxBytes  int64
}

func NewUploadController(uploadSvc service.UploadService, cfg *config.Config) *UploadController {
	return &UploadController{uploadSvc: uploadSvc, maxBytes: cfg.Upload.MaxBytes}
}

// Upload godoc
// @Summary Upload a single file to object storage
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.Envelope{data=dto.UploadResponse}
// @Failure 400 {object} dto.Envelope
// @Router /upload [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("missing file field"))
		return
	}
	if header.Size > ctrl.maxBytes {
		c.JSON(http.StatusBadRequest, dto.Fail("file too large"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	url, err := ctrl.uploadSvc.Upload(
		c.Request.Context(),
		file,
		header.Size,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().Str("name", header.Filename).Int64("size", header.Size).Msg("File uploaded")
	c.JSON(http.StatusCreated, dto.OK(dto.UploadResponse{
		URL:  url,
		Name: filepath.Base(header.Filename),
	}))
}
