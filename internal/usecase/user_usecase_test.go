package usecase

import (
	"testing"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProcessEvent_UserCreated(t *testing.T) {
	users := newFakeUserStore()
	uc := NewUserUsecase(users, zap.NewNop())

	payload := []byte(`{
		"type": "user.created",
		"data": {
			"id": "user_42",
			"first_name": "Ada",
			"last_name": "Lovelace",
			"email_addresses": [{"email_address": "ada@example.org"}]
		}
	}`)
	require.NoError(t, uc.ProcessEvent(payload))

	user := users.users["user_42"]
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.org", user.Email)
	assert.Equal(t, "Ada Lovelace", user.Name)
}

func TestProcessEvent_UserDeleted(t *testing.T) {
	users := newFakeUserStore()
	uc := NewUserUsecase(users, zap.NewNop())

	require.NoError(t, uc.ProcessEvent([]byte(`{"type":"user.created","data":{"id":"user_9"}}`)))
	require.NotNil(t, users.users["user_9"])

	require.NoError(t, uc.ProcessEvent([]byte(`{"type":"user.deleted","data":{"id":"user_9"}}`)))
	assert.Nil(t, users.users["user_9"])
}

func TestProcessEvent_UnknownTypeAcknowledged(t *testing.T) {
	uc := NewUserUsecase(newFakeUserStore(), zap.NewNop())
	assert.NoError(t, uc.ProcessEvent([]byte(`{"type":"session.created","data":{"id":"user_1"}}`)))
}

func TestProcessEvent_MissingUserID(t *testing.T) {
	uc := NewUserUsecase(newFakeUserStore(), zap.NewNop())
	err := uc.ProcessEvent([]byte(`{"type":"user.created","data":{}}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
