package vitals

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Images stores image metadata. Quota accounting lives here so the check
// and the counter update commit with the insert as one logical unit.
type Images interface {
	repository.Repository[*Image]

	CreateWithQuotaTx(ctx context.Context, tx bun.IDB, image *Image) (*Image, error)
	GetOwned(ctx context.Context, userID, imageID uuid.UUID) (*Image, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Image, error)
	DeleteWithQuotaTx(ctx context.Context, tx bun.IDB, userID, imageID uuid.UUID) (*Image, error)
}

// Albums groups images per user
type Albums interface {
	repository.Repository[*Album]

	CreateOwned(ctx context.Context, album *Album) (*Album, error)
	GetOwned(ctx context.Context, userID, albumID uuid.UUID) (*Album, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Album, error)
	AddImage(ctx context.Context, userID, albumID, imageID uuid.UUID) error
	RemoveImage(ctx context.Context, userID, albumID, imageID uuid.UUID) error
	DeleteOwned(ctx context.Context, userID, albumID uuid.UUID) error
}

type images struct {
	repository.Repository[*Image]
	db *bun.DB
}

var _ Images = (*images)(nil)

func NewImagesRepository(db *bun.DB) Images {
	repo := repository.NewRepository[*Image](db, repository.ModelHandlers[*Image]{
		NewRecord: func() *Image { return &Image{} },
		GetID: func(i *Image) uuid.UUID {
			if i == nil {
				return uuid.Nil
			}
			return i.ID
		},
		SetID: func(i *Image, id uuid.UUID) {
			if i != nil {
				i.ID = id
			}
		},
	})

	return &images{
		Repository: repo,
		db:         db,
	}
}

// CreateWithQuotaTx inserts the image and bumps the owner's usage counter,
// rejecting the whole transaction when the upload would exceed the quota.
func (a *images) CreateWithQuotaTx(ctx context.Context, tx bun.IDB, image *Image) (*Image, error) {
	owner := &User{}
	err := tx.NewSelect().
		Model(owner).
		Where("?TableAlias.id = ?", image.UserID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	if owner.StorageUsedMB+image.SizeMB > float64(owner.StorageQuotaMB) {
		return nil, sentinelWithMetadata(ErrStorageQuotaExceeded, map[string]any{
			"quota_mb":  owner.StorageQuotaMB,
			"used_mb":   owner.StorageUsedMB,
			"upload_mb": image.SizeMB,
			"user_id":   owner.ID.String(),
		})
	}

	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}

	record, err := a.Repository.CreateTx(ctx, tx, image)
	if err != nil {
		return nil, err
	}

	if err := adjustStorageUsed(ctx, tx, image.UserID, image.SizeMB); err != nil {
		return nil, err
	}

	return record, nil
}

func (a *images) GetOwned(ctx context.Context, userID, imageID uuid.UUID) (*Image, error) {
	record := &Image{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", imageID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": imageID.String()})
		}
		return nil, err
	}

	if record.UserID != userID {
		return nil, ErrRecordNotOwned
	}

	return record, nil
}

func (a *images) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Image, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []*Image
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteWithQuotaTx removes the metadata row and releases the owner's quota.
// Callers delete the object-store bytes after the transaction commits.
func (a *images) DeleteWithQuotaTx(ctx context.Context, tx bun.IDB, userID, imageID uuid.UUID) (*Image, error) {
	record := &Image{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", imageID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": imageID.String()})
		}
		return nil, err
	}

	if record.UserID != userID {
		return nil, ErrRecordNotOwned
	}

	if _, err := tx.NewDelete().
		Model(record).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx); err != nil {
		return nil, err
	}

	if err := adjustStorageUsed(ctx, tx, userID, -record.SizeMB); err != nil {
		return nil, err
	}

	return record, nil
}

// adjustStorageUsed floors the counter at zero with a CASE guard; scalar MAX
// is sqlite-only and GREATEST is missing from sqlite, CASE works on both.
func adjustStorageUsed(ctx context.Context, tx bun.IDB, userID uuid.UUID, deltaMB float64) error {
	_, err := tx.NewRaw(`
		UPDATE "users" AS "usr"
		SET
			"storage_used_mb" = CASE
				WHEN "storage_used_mb" + ? < 0 THEN 0
				ELSE "storage_used_mb" + ?
			END,
			"updated_at" = CURRENT_TIMESTAMP
		WHERE
			("usr".id = ?)
			AND "usr"."deleted_at" IS NULL;
	`, deltaMB, deltaMB, userID).Exec(ctx)

	return err
}

type albums struct {
	repository.Repository[*Album]
	db *bun.DB
}

var _ Albums = (*albums)(nil)

func NewAlbumsRepository(db *bun.DB) Albums {
	repo := repository.NewRepository[*Album](db, repository.ModelHandlers[*Album]{
		NewRecord: func() *Album { return &Album{} },
		GetID: func(a *Album) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Album, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &albums{
		Repository: repo,
		db:         db,
	}
}

func (a *albums) CreateOwned(ctx context.Context, album *Album) (*Album, error) {
	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	return a.Repository.Create(ctx, album)
}

func (a *albums) GetOwned(ctx context.Context, userID, albumID uuid.UUID) (*Album, error) {
	record := &Album{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Images").
		Where("?TableAlias.id = ?", albumID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": albumID.String()})
		}
		return nil, err
	}

	if record.UserID != userID {
		return nil, ErrRecordNotOwned
	}

	return record, nil
}

func (a *albums) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Album, error) {
	var records []*Album
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// AddImage links an image into an album; both records must belong to userID
func (a *albums) AddImage(ctx context.Context, userID, albumID, imageID uuid.UUID) error {
	if _, err := a.GetOwned(ctx, userID, albumID); err != nil {
		return err
	}

	image := &Image{}
	err := a.db.NewSelect().
		Model(image).
		Where("?TableAlias.id = ?", imageID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return err
	}
	if image.UserID != userID {
		return ErrRecordNotOwned
	}

	_, err = a.db.NewInsert().
		Model(&AlbumImage{AlbumID: albumID, ImageID: imageID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)

	return err
}

func (a *albums) RemoveImage(ctx context.Context, userID, albumID, imageID uuid.UUID) error {
	if _, err := a.GetOwned(ctx, userID, albumID); err != nil {
		return err
	}

	_, err := a.db.NewDelete().
		Model((*AlbumImage)(nil)).
		Where("album_id = ?", albumID).
		Where("image_id = ?", imageID).
		Exec(ctx)

	return err
}

func (a *albums) DeleteOwned(ctx context.Context, userID, albumID uuid.UUID) error {
	record, err := a.GetOwned(ctx, userID, albumID)
	if err != nil {
		return err
	}

	_, err = a.db.NewDelete().
		Model(record).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx)

	return err
}
