package vitals

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoginPayload carries local credentials
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type userProfile struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	StorageQuotaMB int        `json:"storage_quota_mb"`
	StorageUsedMB  float64    `json:"storage_used_mb"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

func profileFromUser(user *User) userProfile {
	return userProfile{
		ID:             user.ID.String(),
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		DateOfBirth:    user.DateOfBirth,
		StorageQuotaMB: user.StorageQuotaMB,
		StorageUsedMB:  user.StorageUsedMB,
		CreatedAt:      user.CreatedAt,
	}
}

// RegisterAccount creates a local account. A taken email renders the same
// as a transient failure so the endpoint never confirms what is registered.
func (a *API) RegisterAccount(c *fiber.Ctx) error {
	var payload RegisterUserMessage
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := a.registrar.Execute(c.UserContext(), payload)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(profileFromUser(user))
}

// Login exchanges local credentials for a signed token
func (a *API) Login(c *fiber.Ctx) error {
	var payload LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	token, err := a.auth.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(loginResponse{
		Token:     token,
		TokenType: a.cfg.GetAuthScheme(),
		ExpiresIn: int64(a.cfg.GetTokenExpiration().Seconds()),
	})
}

// Me returns the profile behind the validated token
func (a *API) Me(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(profileFromUser(user))
}
