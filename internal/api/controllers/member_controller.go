package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/middleware"
	"groundedwarriors/pkg/utils"
)

// MemberController serves the member portal. Every route sits behind RequireAuth.
type MemberController struct {
	memberService  services.MemberServiceInterface
	accountService services.AccountServiceInterface
	logger         *zap.Logger
}

func NewMemberController(
	memberService services.MemberServiceInterface,
	accountService services.AccountServiceInterface,
	logger *zap.Logger,
) *MemberController {
	return &MemberController{
		memberService:  memberService,
		accountService: accountService,
		logger:         logger,
	}
}

// ListRegistrations godoc
// @Summary The caller's retreat registrations
// @Tags Member
// @Produce json
// @Success 200 {array} db_models.RetreatRegistration
// @Failure 401 {object} utils.APIError
// @Router /member/registrations [get]
func (m *MemberController) ListRegistrations(c *gin.Context) {
	registrations, err := m.memberService.ListRegistrations(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"registrations": registrations})
}

// ListDiscussions godoc
// @Summary List discussions
// @Tags Member
// @Produce json
// @Success 200 {array} db_models.Discussion
// @Router /discussions [get]
func (m *MemberController) ListDiscussions(c *gin.Context) {
	discussions, err := m.memberService.ListDiscussions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"discussions": discussions})
}

// CreateDiscussion godoc
// @Summary Start a discussion
// @Tags Member
// @Accept json
// @Produce json
// @Param request body request_models.CreateDiscussionRequest true "Discussion"
// @Success 201 {object} db_models.Discussion
// @Router /discussions [post]
func (m *MemberController) CreateDiscussion(c *gin.Context) {
	var req request_models.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	author, ok := m.currentUser(c)
	if !ok {
		return
	}

	discussion, err := m.memberService.CreateDiscussion(c.Request.Context(), author, req)
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, gin.H{"discussion": discussion})
}

// GetDiscussion godoc
// @Summary A discussion with its replies
// @Tags Member
// @Produce json
// @Param id path int true "Discussion id"
// @Success 200 {object} db_models.Discussion
// @Failure 404 {object} utils.APIError
// @Router /discussions/{id} [get]
func (m *MemberController) GetDiscussion(c *gin.Context) {
	id, ok := discussionID(c)
	if !ok {
		return
	}

	discussion, replies, err := m.memberService.GetDiscussion(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"discussion": discussion, "replies": replies})
}

// CreateReply godoc
// @Summary Reply to a discussion
// @Tags Member
// @Accept json
// @Produce json
// @Param id path int true "Discussion id"
// @Param request body request_models.CreateReplyRequest true "Reply"
// @Success 201 {object} db_models.DiscussionReply
// @Failure 404 {object} utils.APIError
// @Router /discussions/{id}/replies [post]
func (m *MemberController) CreateReply(c *gin.Context) {
	id, ok := discussionID(c)
	if !ok {
		return
	}

	var req request_models.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	author, ok := m.currentUser(c)
	if !ok {
		return
	}

	reply, err := m.memberService.CreateReply(c.Request.Context(), author, id, req)
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, gin.H{"reply": reply})
}

func (m *MemberController) currentUser(c *gin.Context) (*db_models.User, bool) {
	user, err := m.accountService.CurrentUser(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return nil, false
	}
	return user, true
}

func discussionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid discussion id")
		return 0, false
	}
	return id, true
}
