package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/api/http/presenter"
	"github.com/artem13815/mockinterview/pkg/nlp"
	"github.com/artem13815/mockinterview/pkg/resume"
)

type ResumeHandler struct {
	svc resume.Service
	log *zap.Logger
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(svc resume.Service, maxBytes int64, log *zap.Logger) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = 15 << 20
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ResumeHandler{svc: svc, log: log, maxBytes: maxBytes}
}

// Extract returns the plain text of an uploaded resume, ready to be sent as
// resumeText to start-interview.
// @Summary Extract resume text
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "resume (pdf or docx)"
// @Security BearerAuth
// @Success 200 {object} resume.Extraction
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resume/extract [post]
func (h *ResumeHandler) Extract(c *fiber.Ctx) error {
	name, data, err := h.upload(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	ex, err := h.svc.Extract(name, data)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, ex)
}

// Analyze runs an ATS-style critique of the uploaded resume.
// @Summary Resume critique
// @Description Scores the resume 0-100 for ATS readiness. When keywords are given they are matched against the text directly.
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file     formData file   true  "resume (pdf or docx)"
// @Param   role     formData string false "target role"
// @Param   keywords formData string false "comma separated keywords"
// @Security BearerAuth
// @Success 200 {object} resume.Critique
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /resume/analyze [post]
func (h *ResumeHandler) Analyze(c *fiber.Ctx) error {
	name, data, err := h.upload(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	crit, err := h.svc.Analyze(c.UserContext(), resume.AnalyzeParams{
		Filename: name,
		Data:     data,
		Role:     c.FormValue("role"),
		Keywords: nlp.SplitKeywords(c.FormValue("keywords")),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, crit)
}

func (h *ResumeHandler) upload(c *fiber.Ctx) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return "", nil, errors.New("file is required (pdf or docx)")
	}
	file, err := fh.Open()
	if err != nil {
		return "", nil, errors.New("failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func (h *ResumeHandler) fail(c *fiber.Ctx, err error) error {
	var pe *resume.ParseError
	switch {
	case errors.As(err, &pe):
		return presenter.ErrorWithRaw(c, http.StatusBadGateway, "could not parse resume critique", pe.Raw)
	case errors.Is(err, resume.ErrCompletion):
		h.log.Error("resume critique failed", zap.Error(err))
		return presenter.Error(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, resume.ErrUnsupportedFormat),
		errors.Is(err, resume.ErrImageNotSupported),
		errors.Is(err, resume.ErrEmptyResume):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	default:
		// unreadable pdf/docx bytes
		return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to read resume: %v", err))
	}
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
