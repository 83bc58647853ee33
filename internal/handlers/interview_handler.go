package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mockinsight/interview-service/internal/errors"
	"github.com/mockinsight/interview-service/internal/interview"
	"github.com/mockinsight/interview-service/internal/models"
	"github.com/mockinsight/interview-service/internal/services"
	"github.com/mockinsight/interview-service/internal/utils"
)

// AnswerRequest replaces the answer being edited
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// NavigateRequest optionally carries the current answer along with Next/Previous
type NavigateRequest struct {
	Answer *string `json:"answer"`
}

type InterviewHandler struct {
	BaseHandler
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService, logger utils.Logger) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      NewBaseHandler(logger),
		interviewService: interviewService,
	}
}

// GetLanding returns the landing page copy
// @Summary Landing content
// @Tags landing
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.LandingContent}
// @Router /landing [get]
func (h *InterviewHandler) GetLanding(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Landing content retrieved", h.interviewService.Landing())
}

// PreviewQuestions lists the questions generated for a job position
// @Summary Preview questions
// @Tags questions
// @Produce json
// @Param position query string true "Job position"
// @Success 200 {object} SuccessResponse{data=[]models.Question}
// @Failure 400 {object} ErrorResponse
// @Router /questions [get]
func (h *InterviewHandler) PreviewQuestions(c *gin.Context) {
	questions, err := h.interviewService.PreviewQuestions(c.Request.Context(), c.Query("position"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Questions generated", questions)
}

// GetStats returns the activity counters
// @Summary Activity stats
// @Tags stats
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.ActivityStats}
// @Router /stats [get]
func (h *InterviewHandler) GetStats(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Stats retrieved", h.interviewService.Stats())
}

// CreateSession opens a new session on the landing page
// @Summary Create session
// @Tags sessions
// @Produce json
// @Success 201 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *InterviewHandler) CreateSession(c *gin.Context) {
	h.LogRequest(c, "Creating session")

	snap, err := h.interviewService.CreateSession(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Session created", snap)
}

// GetSession returns the current state of a session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *InterviewHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	snap, err := h.interviewService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session retrieved", snap)
}

// EndSession tears a session down and stops its timer
// @Summary End session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *InterviewHandler) EndSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.interviewService.EndSession(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetStarted moves from the landing page to the form
// @Summary Get started
// @Tags flow
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/start [post]
func (h *InterviewHandler) GetStarted(c *gin.Context) {
	h.transition(c, "Form opened", h.interviewService.GetStarted)
}

// BackToLanding leaves the form
// @Summary Back to landing
// @Tags flow
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/landing [post]
func (h *InterviewHandler) BackToLanding(c *gin.Context) {
	h.transition(c, "Returned to landing", h.interviewService.BackToLanding)
}

// Restart discards the results and returns to an empty form
// @Summary Start new interview
// @Tags flow
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/restart [post]
func (h *InterviewHandler) Restart(c *gin.Context) {
	h.transition(c, "Interview restarted", h.interviewService.Restart)
}

// SubmitInterview validates the form and starts the interview
// @Summary Start interview
// @Tags flow
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.InterviewRequest true "Job details"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/interview [post]
func (h *InterviewHandler) SubmitInterview(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req models.InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
			Code:    "invalid_payload",
		}, err)
		return
	}

	snap, err := h.interviewService.SubmitRequest(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Interview started", snap)
}

// UpdateAnswer stores the answer being edited for the current question
// @Summary Update answer
// @Tags interview
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body AnswerRequest true "Answer"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/answer [put]
func (h *InterviewHandler) UpdateAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
			Code:    "invalid_payload",
		}, err)
		return
	}

	snap, err := h.interviewService.UpdateAnswer(c.Request.Context(), id, req.Answer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Answer saved", snap)
}

// NextQuestion stores the answer and moves forward, completing the interview
// on the last question
// @Summary Next question
// @Tags interview
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body NavigateRequest false "Answer"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/next [post]
func (h *InterviewHandler) NextQuestion(c *gin.Context) {
	h.navigate(c, h.interviewService.Next)
}

// PreviousQuestion moves back one question
// @Summary Previous question
// @Tags interview
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body NavigateRequest false "Answer"
// @Success 200 {object} SuccessResponse{data=models.FlowSnapshot}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/previous [post]
func (h *InterviewHandler) PreviousQuestion(c *gin.Context) {
	h.navigate(c, h.interviewService.Previous)
}

// GetResults scores the completed interview
// @Summary Interview results
// @Tags results
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.InterviewReport}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/results [get]
func (h *InterviewHandler) GetResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	report, err := h.interviewService.GetResults(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Results retrieved", report)
}

// DownloadReport returns the results as an Excel workbook
// @Summary Download report
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/report [get]
func (h *InterviewHandler) DownloadReport(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	data, err := h.interviewService.ExportReport(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ReportFilename(id)))
	c.Data(http.StatusOK, services.ReportContentType, data)
}

// ===== HELPERS =====

type transitionFunc func(ctx context.Context, sessionID string) (*models.FlowSnapshot, error)

func (h *InterviewHandler) transition(c *gin.Context, message string, fn transitionFunc) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	snap, err := fn(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, message, snap)
}

type navigateFunc func(ctx context.Context, sessionID string, answer *string) (*models.FlowSnapshot, error)

func (h *InterviewHandler) navigate(c *gin.Context, fn navigateFunc) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req NavigateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	snap, err := fn(c.Request.Context(), id, req.Answer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "Question changed"
	if snap.State == models.StateResults {
		message = "Interview completed"
	}
	h.RespondWithSuccess(c, http.StatusOK, message, snap)
}

func (h *InterviewHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, ErrorResponse{
			Message: "Session not found",
			Code:    "session_not_found",
		}, err)
	case errors.Is(err, interview.ErrAnswerRequired):
		h.RespondWithError(c, http.StatusBadRequest, ErrorResponse{
			Message: "Please provide an answer before proceeding.",
			Code:    "answer_required",
		}, err)
	case errors.Is(err, interview.ErrMissingInformation):
		resp := ErrorResponse{
			Message: "Please fill in all required fields.",
			Code:    "missing_information",
		}
		var validationErrors apperrors.ValidationErrors
		if errors.As(err, &validationErrors) {
			resp.Details = validationErrors
		}
		h.RespondWithError(c, http.StatusBadRequest, resp, err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
			Code:    "validation_failed",
		}, err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, ErrorResponse{
			Message: "Action not allowed in the current step",
			Details: err.Error(),
			Code:    "invalid_transition",
		}, err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		}, err)
	}
}
