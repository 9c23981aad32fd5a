package vitals

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"

	"github.com/goliatone/go-vitals/middleware/jwtware"
	"github.com/goliatone/go-vitals/storage"
)

// API wires the HTTP surface: authentication endpoints, the profile view,
// readings, and media. Every route except health and the auth endpoints
// sits behind the bearer-token gate.
type API struct {
	auth      Authenticator
	registrar *Registrar
	repo      RepositoryManager
	store     storage.ObjectStore
	validator TokenValidator
	cfg       Config
	logger    Logger
}

func NewAPI(auth Authenticator, registrar *Registrar, repo RepositoryManager, store storage.ObjectStore, validator TokenValidator, cfg Config) *API {
	return &API{
		auth:      auth,
		registrar: registrar,
		repo:      repo,
		store:     store,
		validator: validator,
		cfg:       cfg,
		logger:    defLogger{},
	}
}

func (a *API) WithLogger(l Logger) *API {
	if l != nil {
		a.logger = l
	}
	return a
}

// Register attaches the token gate and all routes to the app
func (a *API) Register(app *fiber.App) {
	app.Use(jwtware.New(jwtware.Config{
		Filter:         a.publicRoute,
		TokenValidator: gateValidator{inner: a.validator},
		ContextKey:     a.cfg.GetContextKey(),
		TokenLookup:    a.cfg.GetTokenLookup(),
		AuthScheme:     a.cfg.GetAuthScheme(),
		Logger:         a.logger.Warn,
	}))

	app.Get("/health", a.Health)
	app.Post("/auth/register", a.RegisterAccount)
	app.Post("/auth/login", a.Login)

	app.Get("/me", a.Me)

	app.Post("/readings", a.CreateReading)
	app.Get("/readings", a.ListReadings)
	app.Get("/readings/:id", a.GetReading)
	app.Put("/readings/:id", a.UpdateReading)
	app.Delete("/readings/:id", a.DeleteReading)

	app.Post("/images", a.UploadImage)
	app.Get("/images", a.ListImages)
	app.Get("/images/:id/url", a.ImageURL)
	app.Delete("/images/:id", a.DeleteImage)

	app.Post("/albums", a.CreateAlbum)
	app.Get("/albums", a.ListAlbums)
	app.Get("/albums/:id", a.GetAlbum)
	app.Delete("/albums/:id", a.DeleteAlbum)
	app.Post("/albums/:id/images/:imageID", a.AddAlbumImage)
	app.Delete("/albums/:id/images/:imageID", a.RemoveAlbumImage)
}

// gateValidator adapts a TokenValidator to the middleware's narrower
// claims interface. AuthClaims is a superset, so the value passes through.
type gateValidator struct {
	inner TokenValidator
}

func (g gateValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := g.inner.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// publicRoute reports whether the request can skip the token gate
func (a *API) publicRoute(c *fiber.Ctx) bool {
	switch c.Path() {
	case "/health", "/auth/register", "/auth/login":
		return true
	}
	return false
}

// currentUser resolves the validated token to a local user record. The gate
// already ran, so a missing claims object is a programming error and renders
// as unauthorized rather than a panic.
func (a *API) currentUser(c *fiber.Ctx) (*User, error) {
	claims, ok := c.Locals(a.cfg.GetContextKey()).(AuthClaims)
	if !ok || claims == nil {
		return nil, ErrIdentityNotFound
	}

	user, err := a.repo.Users().GetByIdentifier(c.UserContext(), claims.UserID())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return user, nil
}

// renderError maps domain errors to HTTP responses. Credential failures
// stay deliberately vague; validation failures name the offending field.
func (a *API) renderError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var richErr *errors.Error
	switch {
	case errors.Is(err, ErrMismatchedHashAndPassword),
		errors.Is(err, ErrAccountInactive),
		errors.Is(err, ErrIdentityNotFound):
		status = fiber.StatusUnauthorized
		message = ErrMismatchedHashAndPassword.Message
	case IsAuthValidationError(err):
		status = fiber.StatusUnauthorized
		message = "invalid or expired token"
	case errors.Is(err, ErrRecordNotOwned):
		// do not reveal that the record exists for another user
		status = fiber.StatusNotFound
		message = "record not found"
	case errors.Is(err, ErrRegistrationUnavailable):
		status = fiber.StatusServiceUnavailable
		message = ErrRegistrationUnavailable.Message
	case errors.Is(err, ErrStorageQuotaExceeded):
		status = fiber.StatusConflict
		message = ErrStorageQuotaExceeded.Message
	case repository.IsRecordNotFound(err) || errors.IsNotFound(err):
		status = fiber.StatusNotFound
		message = "record not found"
	case errors.As(err, &richErr) &&
		(richErr.Category == errors.CategoryValidation || richErr.Category == errors.CategoryBadInput):
		status = fiber.StatusBadRequest
		message = richErr.Message
	}

	if status == fiber.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Health reports liveness. This route bypasses the token gate.
func (a *API) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "vitals",
	})
}
