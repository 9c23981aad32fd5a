package vitals

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RegisterUserMessage carries the attributes of a new local account
type RegisterUserMessage struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Registrar creates local accounts. Validation runs email first,
// then password, so the caller always sees the earliest failure.
type Registrar struct {
	repo   RepositoryManager
	logger Logger
}

func NewRegistrar(repo RepositoryManager) *Registrar {
	return &Registrar{
		repo:   repo,
		logger: defLogger{},
	}
}

func (r *Registrar) WithLogger(l Logger) *Registrar {
	if l != nil {
		r.logger = l
	}
	return r
}

func (r *Registrar) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return r.execute(ctx, event)
	}
}

func (r *Registrar) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	if err := ValidateEmail(event.Email); err != nil {
		return nil, err
	}

	if err := ValidatePassword(event.Password); err != nil {
		return nil, err
	}

	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := r.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.PasswordHash = hash
		user.Email = event.Email
		user.FirstName = event.FirstName
		user.LastName = event.LastName
		user.DateOfBirth = event.DateOfBirth

		if user, err = r.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			if IsUniqueViolation(err) {
				// never confirm to the caller that the email exists
				r.logger.Warn("registration rejected for existing email")
				return ErrRegistrationUnavailable
			}
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return user, nil
}
