package vitals

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Readings() Readings
	Images() Images
	Albums() Albums
}

type mngr struct {
	db       *bun.DB
	users    Users
	readings Readings
	images   Images
	albums   Albums
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		readings: NewReadingsRepository(db),
		images:   NewImagesRepository(db),
		albums:   NewAlbumsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.readings == nil {
		return errors.New("repository readings should be initialized")
	}

	if m.images == nil {
		return errors.New("repository images should be initialized")
	}

	if m.albums == nil {
		return errors.New("repository albums should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Readings() Readings {
	return m.readings
}

func (m mngr) Images() Images {
	return m.images
}

func (m mngr) Albums() Albums {
	return m.albums
}
