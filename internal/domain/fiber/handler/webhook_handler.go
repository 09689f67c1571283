package handler

import (
	"github.com/adityarahmanda/careerisk/internal/usecase"
	"github.com/adityarahmanda/careerisk/internal/util"
	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives signed user-lifecycle events from the
// authentication provider and mirrors them into the users table.
type WebhookHandler struct {
	users  *usecase.UserUsecase
	secret string
}

func NewWebhookHandler(users *usecase.UserUsecase, secret string) *WebhookHandler {
	return &WebhookHandler{users: users, secret: secret}
}

func (h *WebhookHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/webhooks/users", h.HandleUserEvent)
}

func (h *WebhookHandler) HandleUserEvent(c *fiber.Ctx) error {
	payload := c.Body()

	err := util.VerifyWebhookSignature(
		h.secret,
		c.Get("svix-id"),
		c.Get("svix-timestamp"),
		c.Get("svix-signature"),
		payload,
	)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "invalid webhook signature",
		}, err)
	}

	if err := h.users.ProcessEvent(payload); err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Webhook processed",
	})
}
