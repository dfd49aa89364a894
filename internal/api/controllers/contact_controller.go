package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/utils"
)

type ContactController struct {
	contactService    services.ContactServiceInterface
	newsletterService services.NewsletterServiceInterface
	logger            *zap.Logger
}

func NewContactController(
	contactService services.ContactServiceInterface,
	newsletterService services.NewsletterServiceInterface,
	logger *zap.Logger,
) *ContactController {
	return &ContactController{
		contactService:    contactService,
		newsletterService: newsletterService,
		logger:            logger,
	}
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body request_models.ContactRequest true "Contact form"
// @Success 201 {object} db_models.ContactSubmission
// @Failure 400 {object} utils.APIError
// @Router /contact [post]
func (ctl *ContactController) SubmitContact(c *gin.Context) {
	var req request_models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	submission, err := ctl.contactService.SubmitContact(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, ctl.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, gin.H{"submission": submission})
}

// ListContact godoc
// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Success 200 {array} db_models.ContactSubmission
// @Router /contact [get]
func (ctl *ContactController) ListContact(c *gin.Context) {
	submissions, err := ctl.contactService.ListSubmissions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, ctl.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"submissions": submissions})
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body request_models.NewsletterRequest true "Email"
// @Success 201 {object} db_models.NewsletterSubscription
// @Failure 400 {object} utils.APIError
// @Router /newsletter [post]
func (ctl *ContactController) Subscribe(c *gin.Context) {
	var req request_models.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	subscription, err := ctl.newsletterService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		utils.HandleServiceError(c, ctl.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, gin.H{"subscription": subscription})
}
