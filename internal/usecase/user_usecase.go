package usecase

import (
	"strings"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// UserUsecase mirrors the authentication provider's user lifecycle into the
// local users table. Events arrive via signed webhooks.
type UserUsecase struct {
	users UserStore
	log   *zap.Logger
}

func NewUserUsecase(users UserStore, log *zap.Logger) *UserUsecase {
	return &UserUsecase{users: users, log: log}
}

// ProcessEvent applies one user.created / user.updated / user.deleted event.
// Payload is the raw webhook body; field paths follow the provider's event
// envelope {type, data:{id, email_addresses, first_name, last_name}}.
func (uc *UserUsecase) ProcessEvent(payload []byte) error {
	doc := gjson.ParseBytes(payload)
	eventType := doc.Get("type").String()
	userID := doc.Get("data.id").String()
	if userID == "" {
		return apperrors.Validation("webhook payload has no user id")
	}

	switch eventType {
	case "user.created", "user.updated":
		name := strings.TrimSpace(doc.Get("data.first_name").String() + " " + doc.Get("data.last_name").String())
		user := &model.User{
			ID:    userID,
			Email: doc.Get("data.email_addresses.0.email_address").String(),
			Name:  name,
		}
		if err := uc.users.Upsert(user); err != nil {
			return apperrors.Persistence("failed to upsert user", err)
		}
	case "user.deleted":
		if err := uc.users.Delete(userID); err != nil {
			return apperrors.Persistence("failed to delete user", err)
		}
	default:
		// Unknown event types are acknowledged so the provider stops
		// retrying them.
		uc.log.Info("ignoring webhook event", zap.String("type", eventType))
	}

	uc.log.Info("processed user webhook",
		zap.String("type", eventType),
		zap.String("user_id", userID))
	return nil
}
