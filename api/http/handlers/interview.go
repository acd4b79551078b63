package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/api/http/presenter"
	"github.com/artem13815/mockinterview/pkg/interview"
)

type InterviewHandler struct {
	useCase interview.UseCase
	log     *zap.Logger
}

func NewInterviewHandler(useCase interview.UseCase, log *zap.Logger) *InterviewHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InterviewHandler{useCase: useCase, log: log}
}

type startInterviewRequest struct {
	Role          string   `json:"role"`
	Difficulty    string   `json:"difficulty"`
	QuestionCount int      `json:"questionCount"`
	ResumeText    string   `json:"resumeText"`
	Questions     []string `json:"questions"`
}

type answerRequest struct {
	InterviewID   string `json:"interviewId"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	QuestionIndex *int   `json:"questionIndex"`
}

type interviewIDRequest struct {
	InterviewID string `json:"interviewId"`
}

type idealAnswersResponse struct {
	IdealAnswers []interview.IdealAnswer `json:"idealAnswers"`
}

// Start creates a new interview session.
// @Summary Start interview
// @Description Generates questions (optionally grounded in resume text) or reuses the supplied list.
// @Tags    interview
// @Accept  json
// @Produce json
// @Param   input body startInterviewRequest true "interview settings"
// @Security BearerAuth
// @Success 200 {object} interview.StartResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /start-interview [post]
func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	ownerID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req startInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	res, err := h.useCase.Start(c.UserContext(), ownerID, interview.StartParams{
		Role:              req.Role,
		Difficulty:        req.Difficulty,
		QuestionCount:     req.QuestionCount,
		ResumeContext:     req.ResumeText,
		SuppliedQuestions: req.Questions,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// Answer scores one answer and stores it.
// @Summary Submit answer
// @Tags    interview
// @Accept  json
// @Produce json
// @Param   input body answerRequest true "answer"
// @Security BearerAuth
// @Success 200 {object} interview.Feedback
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /answer [post]
func (h *InterviewHandler) Answer(c *fiber.Ctx) error {
	ownerID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	id, err := uuid.Parse(strings.TrimSpace(req.InterviewID))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "interview not found")
	}
	fb, err := h.useCase.SubmitAnswer(c.UserContext(), ownerID, interview.AnswerParams{
		SessionID:     id,
		Question:      req.Question,
		Answer:        req.Answer,
		QuestionIndex: req.QuestionIndex,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fb)
}

// Summary returns the score summary of a session.
// @Summary Interview summary
// @Tags    interview
// @Accept  json
// @Produce json
// @Param   input body interviewIDRequest true "interview id"
// @Security BearerAuth
// @Success 200 {object} interview.Summary
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interview-summary [post]
func (h *InterviewHandler) Summary(c *fiber.Ctx) error {
	ownerID, id, ok := h.target(c)
	if !ok {
		return nil
	}
	sum, err := h.useCase.Summary(c.UserContext(), ownerID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sum)
}

// IdealAnswers returns model-written ideal answers for a completed session.
// @Summary Ideal answers
// @Tags    interview
// @Accept  json
// @Produce json
// @Param   input body interviewIDRequest true "interview id"
// @Security BearerAuth
// @Success 200 {object} idealAnswersResponse
// @Failure 403 {object} presenter.ErrorResponse "interview not completed"
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse "raw carries the unparsable model output"
// @Router  /ideal-answers [post]
func (h *InterviewHandler) IdealAnswers(c *fiber.Ctx) error {
	ownerID, id, ok := h.target(c)
	if !ok {
		return nil
	}
	items, err := h.useCase.IdealAnswers(c.UserContext(), ownerID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, idealAnswersResponse{IdealAnswers: items})
}

// ListMine lists the caller's sessions, newest first.
// @Summary My interviews
// @Tags    interview
// @Produce json
// @Param   limit  query int false "page size (default 50, max 200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} interview.Overview
// @Router  /my-interviews [get]
func (h *InterviewHandler) ListMine(c *fiber.Ctx) error {
	ownerID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := page(c)
	items, err := h.useCase.ListMine(c.UserContext(), ownerID, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// target resolves the caller and the interviewId body field. When it returns
// false the error response has already been written.
func (h *InterviewHandler) target(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := currentUser(c)
	if !ok {
		_ = presenter.Error(c, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	var req interviewIDRequest
	if err := c.BodyParser(&req); err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(req.InterviewID))
	if err != nil {
		_ = presenter.Error(c, http.StatusNotFound, "interview not found")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

func (h *InterviewHandler) fail(c *fiber.Ctx, err error) error {
	status := interviewStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("interview request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	if raw := interview.Raw(err); raw != "" {
		return presenter.ErrorWithRaw(c, status, msg, raw)
	}
	return presenter.Error(c, status, msg)
}

// interviewStatus maps domain errors onto HTTP status codes.
func interviewStatus(err error) int {
	switch {
	case errors.Is(err, interview.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, interview.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, interview.ErrIncompleteSession):
		return http.StatusForbidden
	case errors.Is(err, interview.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, interview.ErrUpstreamUnavailable),
		errors.Is(err, interview.ErrEmptyGeneration),
		errors.Is(err, interview.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func currentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
