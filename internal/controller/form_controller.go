package controller

import (
	"net/http"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/metrics"
	"github.com/arphatra/arphatra/internal/middleware"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
)

type FormController struct {
	formSvc     service.FormService
	responseSvc service.ResponseService
}

func NewFormController(formSvc service.FormService, responseSvc service.ResponseService) *FormController {
	return &FormController{formSvc: formSvc, responseSvc: responseSvc}
}

// CreateForm godoc
// @Summary Create a form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SaveFormRequest true "Form document"
// @Success 201 {object} dto.Envelope{data=dto.FormResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope "Slug already used"
// @Router /forms [post]
func (ctrl *FormController) CreateForm(c *gin.Context) {
	var req dto.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.formSvc.CreateForm(middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

// ListForms godoc
// @Summary List the caller's forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=[]dto.FormSummary}
// @Router /forms [get]
func (ctrl *FormController) ListForms(c *gin.Context) {
	forms, err := ctrl.formSvc.ListForms(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(forms))
}

// GetForm godoc
// @Summary Get one of the caller's forms by id or slug
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id or slug"
// @Success 200 {object} dto.Envelope{data=dto.FormResponse}
// @Failure 404 {object} dto.Envelope
// @Router /forms/{id} [get]
func (ctrl *FormController) GetForm(c *gin.Context) {
	resp, err := ctrl.formSvc.GetForm(middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// GetPublicForm godoc
// @Summary Fetch a published form for filling in
// @Tags public
// @Produce json
// @Param id path string true "Form id or slug"
// @Success 200 {object} dto.Envelope{data=dto.PublicFormResponse}
// @Failure 404 {object} dto.Envelope
// @Router /public/forms/{id} [get]
func (ctrl *FormController) GetPublicForm(c *gin.Context) {
	resp, err := ctrl.formSvc.GetPublicForm(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// UpdateForm godoc
// @Summary Update a form (autosave target)
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id or slug"
// @Param body body dto.SaveFormRequest true "Form document"
// @Success 200 {object} dto.Envelope{data=dto.FormResponse}
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope "Slug already used"
// @Router /forms/{id} [put]
func (ctrl *FormController) UpdateForm(c *gin.Context) {
	var req dto.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.formSvc.UpdateForm(middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// DeleteForm godoc
// @Summary Delete a form together with all its responses
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id or slug"
// @Success 200 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /forms/{id} [delete]
func (ctrl *FormController) DeleteForm(c *gin.Context) {
	if err := ctrl.formSvc.DeleteForm(middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("form deleted", nil))
}

// CheckSlug godoc
// @Summary Check slug availability
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param slug query string true "Candidate slug"
// @Success 200 {object} dto.Envelope{data=dto.CheckSlugResponse}
// @Router /forms/check-slug [get]
func (ctrl *FormController) CheckSlug(c *gin.Context) {
	resp, err := ctrl.formSvc.CheckSlug(c.Query("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// SubmitResponse godoc
// @Summary Submit a response to a published form
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "Form id or slug"
// @Param body body dto.SubmitResponseRequest true "Answers keyed by question id"
// @Success 201 {object} dto.Envelope{data=dto.ResponseItem}
// @Failure 400 {object} dto.Envelope "Required questions unanswered"
// @Failure 404 {object} dto.Envelope
// @Router /forms/{id}/submit [post]
func (ctrl *FormController) SubmitResponse(c *gin.Context) {
	var req dto.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	item, err := ctrl.responseSvc.Submit(c.Param("id"), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.CountSubmission()
	c.JSON(http.StatusCreated, dto.OK(item))
}

// ListResponses godoc
// @Summary List responses for one of the caller's forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id or slug"
// @Success 200 {object} dto.Envelope{data=[]dto.ResponseItem}
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /forms/{id}/responses [get]
func (ctrl *FormController) ListResponses(c *gin.Context) {
	items, err := ctrl.responseSvc.ListResponses(middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(items))
}
