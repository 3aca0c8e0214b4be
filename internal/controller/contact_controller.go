package controller

import (
	"net/http"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contactSvc service.ContactService
}

func NewContactController(contactSvc service.ContactService) *ContactController {
	return &ContactController{contactSvc: contactSvc}
}

// Submit godoc
// @Summary Send a message to the operators
// @Tags contact
// @Accept json
// @Produce json
// @Param body body dto.ContactRequest true "Message"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /contact [post]
func (ctrl *ContactController) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	if err := ctrl.contactSvc.Submit(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OKMessage("message received", nil))
}
