package handler

import (
	"errors"
	"net/http"

	"github.com/Siva2k2k/ES-TM-sub001/internal/middleware"
	"github.com/Siva2k2k/ES-TM-sub001/internal/model"
	"github.com/Siva2k2k/ES-TM-sub001/internal/service"
	"github.com/Siva2k2k/ES-TM-sub001/pkg/pagination"
	"github.com/Siva2k2k/ES-TM-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

type TeamReviewHandler struct {
	approvalService service.ApprovalService
	auditService    service.AuditService
	jwtSecret       []byte
}

func NewTeamReviewHandler(approvalService service.ApprovalService, auditService service.AuditService, jwtSecret []byte) *TeamReviewHandler {
	return &TeamReviewHandler{
		approvalService: approvalService,
		auditService:    auditService,
		jwtSecret:       jwtSecret,
	}
}

func (h *TeamReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviewers := middleware.RequireRole(h.jwtSecret, model.RoleLead, model.RoleManager, model.RoleManagement, model.RoleSuperAdmin)
	finance := middleware.RequireRole(h.jwtSecret, model.RoleManagement, model.RoleSuperAdmin)

	group := router.Group("/api/team-review")
	{
		group.POST("/timesheets/:id/projects/:projectId/approve", reviewers, h.ApproveTimesheetForProject)
		group.POST("/timesheets/:id/projects/:projectId/reject", reviewers, h.RejectTimesheetForProject)
		group.POST("/projects/:projectId/weeks/approve", reviewers, h.ApproveProjectWeek)
		group.POST("/projects/:projectId/weeks/reject", reviewers, h.RejectProjectWeek)
		group.POST("/timesheets/verify", finance, h.BulkVerifyTimesheets)
		group.POST("/timesheets/bill", finance, h.BulkBillTimesheets)
		group.GET("/timesheets/:id/history", reviewers, h.GetApprovalHistory)
	}
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ProjectWeekBody struct {
	WeekStart string `json:"week_start" binding:"required" example:"2025-03-03"`
	WeekEnd   string `json:"week_end" binding:"required" example:"2025-03-09"`
	Reason    string `json:"reason,omitempty"`
}

type BatchRequest struct {
	TimesheetIDs []string `json:"timesheet_ids" binding:"required"`
}

// ApproveTimesheetForProject records the caller's approval of one project on one timesheet
// @Summary      Approve a timesheet for a project
// @Description  Marks the caller's approval axis on the (timesheet, project) record and moves the timesheet to manager_approved once every project has signed off
// @Tags         team-review
// @Security     BearerAuth
// @Produce      json
// @Param        id         path      string  true  "Timesheet ID"
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Router       /api/team-review/timesheets/{id}/projects/{projectId}/approve [post]
func (h *TeamReviewHandler) ApproveTimesheetForProject(c *gin.Context) {
	approverID, role := middleware.Approver(c)

	result, err := h.approvalService.ApproveTimesheetForProject(c.Request.Context(), c.Param("id"), c.Param("projectId"), approverID, role)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RejectTimesheetForProject rejects one project on one timesheet and resets the other projects
// @Summary      Reject a timesheet for a project
// @Tags         team-review
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id         path      string         true  "Timesheet ID"
// @Param        projectId  path      string         true  "Project ID"
// @Param        payload    body      RejectRequest  true  "Rejection reason"
// @Success      200        {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /api/team-review/timesheets/{id}/projects/{projectId}/reject [post]
func (h *TeamReviewHandler) RejectTimesheetForProject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Rejection reason is required"))
		return
	}
	approverID, role := middleware.Approver(c)

	result, err := h.approvalService.RejectTimesheetForProject(c.Request.Context(), c.Param("id"), c.Param("projectId"), approverID, role, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ApproveProjectWeek approves every timesheet of a project in one week
// @Summary      Approve a project-week
// @Description  All-or-nothing approval of every approval record of the project in the given week
// @Tags         team-review
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        projectId  path      string           true  "Project ID"
// @Param        payload    body      ProjectWeekBody  true  "Week range"
// @Success      200        {object}  response.Response{data=service.ProjectWeekResponse}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Router       /api/team-review/projects/{projectId}/weeks/approve [post]
func (h *TeamReviewHandler) ApproveProjectWeek(c *gin.Context) {
	req, ok := h.bindProjectWeek(c)
	if !ok {
		return
	}

	result, err := h.approvalService.ApproveProjectWeek(c.Request.Context(), req.ProjectWeekRequest)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RejectProjectWeek rejects every timesheet of a project in one week
// @Summary      Reject a project-week
// @Tags         team-review
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        projectId  path      string           true  "Project ID"
// @Param        payload    body      ProjectWeekBody  true  "Week range and reason"
// @Success      200        {object}  response.Response{data=service.ProjectWeekResponse}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /api/team-review/projects/{projectId}/weeks/reject [post]
func (h *TeamReviewHandler) RejectProjectWeek(c *gin.Context) {
	req, ok := h.bindProjectWeek(c)
	if !ok {
		return
	}

	result, err := h.approvalService.RejectProjectWeek(c.Request.Context(), req.ProjectWeekRequest, req.reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// BulkVerifyTimesheets freezes timesheets one by one
// @Summary      Bulk verify timesheets
// @Tags         team-review
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      BatchRequest  true  "Timesheet IDs"
// @Success      200      {object}  response.Response{data=service.BatchResult}
// @Failure      400      {object}  response.Response
// @Router       /api/team-review/timesheets/verify [post]
func (h *TeamReviewHandler) BulkVerifyTimesheets(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "timesheet_ids is required"))
		return
	}
	verifierID, _ := middleware.Approver(c)

	result, err := h.approvalService.BulkVerifyTimesheets(c.Request.Context(), req.TimesheetIDs, verifierID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// BulkBillTimesheets marks timesheets billed one by one
// @Summary      Bulk bill timesheets
// @Tags         team-review
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      BatchRequest  true  "Timesheet IDs"
// @Success      200      {object}  response.Response{data=service.BatchResult}
// @Failure      400      {object}  response.Response
// @Router       /api/team-review/timesheets/bill [post]
func (h *TeamReviewHandler) BulkBillTimesheets(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "timesheet_ids is required"))
		return
	}
	billerID, _ := middleware.Approver(c)

	result, err := h.approvalService.BulkBillTimesheets(c.Request.Context(), req.TimesheetIDs, billerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetApprovalHistory retrieves one timesheet's audit trail with approvers pre-loaded
// @Summary      Get approval history
// @Tags         team-review
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Timesheet ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Router       /api/team-review/timesheets/{id}/history [get]
func (h *TeamReviewHandler) GetApprovalHistory(c *gin.Context) {
	p := pagination.Parse(c)

	entries, total, err := h.auditService.GetApprovalHistory(c.Request.Context(), c.Param("id"), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"history": entries,
		"total":   total,
		"page":    p.Page,
		"limit":   p.Limit,
	}))
}

type projectWeekInput struct {
	service.ProjectWeekRequest
	reason string
}

func (h *TeamReviewHandler) bindProjectWeek(c *gin.Context) (projectWeekInput, bool) {
	var body ProjectWeekBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "week_start and week_end are required"))
		return projectWeekInput{}, false
	}
	approverID, role := middleware.Approver(c)

	return projectWeekInput{
		ProjectWeekRequest: service.ProjectWeekRequest{
			ProjectID:    c.Param("projectId"),
			WeekStart:    body.WeekStart,
			WeekEnd:      body.WeekEnd,
			ApproverID:   approverID,
			ApproverRole: role,
		},
		reason: body.Reason,
	}, true
}

// writeError maps workflow errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoMatchingRecords):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	c.JSON(status, response.ErrorWithCode(status, service.ErrorCode(err), msg))
}
