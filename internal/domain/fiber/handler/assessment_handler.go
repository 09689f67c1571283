package handler

import (
	"time"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/adityarahmanda/careerisk/internal/dto"
	"github.com/adityarahmanda/careerisk/internal/middleware"
	"github.com/adityarahmanda/careerisk/internal/risk"
	"github.com/adityarahmanda/careerisk/internal/usecase"
	"github.com/adityarahmanda/careerisk/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	research *usecase.ResearchUsecase
	analysis *usecase.AnalysisUsecase
	reports  *usecase.ReportUsecase
}

func NewAssessmentHandler(research *usecase.ResearchUsecase, analysis *usecase.AnalysisUsecase, reports *usecase.ReportUsecase) *AssessmentHandler {
	return &AssessmentHandler{research: research, analysis: analysis, reports: reports}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App, authRequired, authOptional fiber.Handler) {
	app.Post("/research", middleware.RateLimiter(5, 1*time.Minute), authOptional, h.Research)
	app.Post("/analyze", h.Analyze)
	app.Get("/reports/:profileId", h.GetReport)
	app.Delete("/reports/:reportId", authRequired, h.DeleteReport)
}

// Research accepts an intake submission and responds as soon as the profile
// row exists; the pipeline continues in the background and the client polls
// GET /reports/:profileId for the result.
func (h *AssessmentHandler) Research(c *fiber.Ctx) error {
	var req dto.ResearchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	profileID, err := h.research.Submit(c.UserContext(), req, middleware.UserIDFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Research started",
		Data:    fiber.Map{"status": "processing", "profile_id": profileID},
	})
}

// Analyze runs the analysis half synchronously for a profile with already
// extracted evidence.
func (h *AssessmentHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.ProfileID == "" {
		return respondError(c, apperrors.Validation("profile_id is required"))
	}
	if len(req.Evidence) == 0 {
		return respondError(c, apperrors.Validation("evidence is required"))
	}

	evidence, err := risk.DecodeEvidence(req.Evidence)
	if err != nil {
		return respondError(c, apperrors.Validation("evidence is not valid JSON"))
	}

	reportID, err := h.analysis.Analyze(c.UserContext(), req.ProfileID, evidence)
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Analysis completed",
		Data:    fiber.Map{"ok": true, "report_id": reportID},
	})
}

func (h *AssessmentHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.reports.GetByProfileID(c.Params("profileId"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get report",
		Data:    report,
	})
}

func (h *AssessmentHandler) DeleteReport(c *fiber.Ctx) error {
	userID := ""
	if id := middleware.UserIDFromCtx(c); id != nil {
		userID = *id
	}
	if err := h.reports.Delete(c.Params("reportId"), userID); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success delete report",
		Data:    fiber.Map{"success": true},
	})
}

// respondError maps typed pipeline errors onto the response envelope.
func respondError(c *fiber.Ctx, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    apperrors.HTTPStatus(err),
		Message: apperrors.MessageOf(err),
	}, err)
}
