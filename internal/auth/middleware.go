package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/repository"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// SessionMiddleware validates bearer tokens and attaches the caller's
// session to the request. The user is re-read from the store so a removed
// account cannot keep acting on a stale token.
type SessionMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	session, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.UserContext(), session.UserID)
	if err != nil {
		if apperrors.StoreKindOf(err) == apperrors.StoreNotFound {
			return apperrors.NewUnauthorized("user not found")
		}
		return err
	}
	// Role comes from the store, not the token, so a role claim forged or
	// stale in the JWT cannot widen access.
	session.Name = user.Name
	session.Role = user.Role

	c.Locals(sessionKey, session)
	return c.Next()
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return domain.Session{}, false
	}
	session, ok := val.(domain.Session)
	return session, ok
}
