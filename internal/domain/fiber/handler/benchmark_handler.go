package handler

import (
	"github.com/adityarahmanda/careerisk/internal/usecase"
	"github.com/adityarahmanda/careerisk/internal/util"
	"github.com/gofiber/fiber/v2"
)

type BenchmarkHandler struct {
	benchmarks *usecase.BenchmarkUsecase
}

func NewBenchmarkHandler(benchmarks *usecase.BenchmarkUsecase) *BenchmarkHandler {
	return &BenchmarkHandler{benchmarks: benchmarks}
}

func (h *BenchmarkHandler) RegisterRoutes(app *fiber.App, authRequired fiber.Handler) {
	app.Post("/admin/benchmarks/seed", authRequired, h.Seed)
}

// Seed embeds and stores occupation benchmarks. An empty body loads the
// built-in defaults.
func (h *BenchmarkHandler) Seed(c *fiber.Ctx) error {
	var seeds []usecase.BenchmarkSeed
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&seeds); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "invalid request body",
			}, err)
		}
	}

	count, err := h.benchmarks.Seed(c.UserContext(), seeds)
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success seed benchmarks",
		Data:    fiber.Map{"count": count},
	})
}
