package middleware

import (
	"fmt"
	"strings"

	"github.com/adityarahmanda/careerisk/internal/config"
	"github.com/adityarahmanda/careerisk/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// UserIDKey is the locals key handlers read the authenticated user id from.
const UserIDKey = "userID"

// AuthMiddleware verifies bearer session tokens against the authentication
// provider and caches verified tokens so polling traffic does not hammer it.
type AuthMiddleware struct {
	client    *resty.Client
	cache     *expirable.LRU[string, string]
	verifyURL string
	log       *zap.Logger
}

func NewAuthMiddleware(cfg *config.AuthConfig, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		client:    resty.New(),
		cache:     expirable.NewLRU[string, string](1024, nil, cfg.CacheTTL),
		verifyURL: cfg.VerifyURL,
		log:       log,
	}
}

// Required rejects requests without a valid session.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := m.identify(c)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "authentication required",
			}, err)
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// Optional attaches an identity when a valid session is present and lets
// anonymous requests through untouched.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := m.identify(c); err == nil {
			c.Locals(UserIDKey, userID)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) identify(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return "", fmt.Errorf("missing bearer token")
	}

	if userID, ok := m.cache.Get(token); ok {
		return userID, nil
	}

	resp, err := m.client.R().
		SetContext(c.UserContext()).
		SetHeader(fiber.HeaderAuthorization, "Bearer "+token).
		Get(m.verifyURL)
	if err != nil {
		m.log.Warn("session verification failed", zap.Error(err))
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("session rejected with status %d", resp.StatusCode())
	}

	userID := gjson.Get(resp.String(), "id").String()
	if userID == "" {
		userID = gjson.Get(resp.String(), "user_id").String()
	}
	if userID == "" {
		return "", fmt.Errorf("verification response has no user id")
	}

	m.cache.Add(token, userID)
	return userID, nil
}

// UserIDFromCtx returns the authenticated user id, or nil for anonymous
// requests.
func UserIDFromCtx(c *fiber.Ctx) *string {
	if v, ok := c.Locals(UserIDKey).(string); ok && v != "" {
		return &v
	}
	return nil
}
