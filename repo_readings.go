package vitals

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Readings stores blood-pressure readings, always scoped to an owner
type Readings interface {
	repository.Repository[*BloodPressureReading]

	Record(ctx context.Context, reading *BloodPressureReading) (*BloodPressureReading, error)
	RecordTx(ctx context.Context, tx bun.IDB, reading *BloodPressureReading) (*BloodPressureReading, error)
	GetOwned(ctx context.Context, userID, readingID uuid.UUID) (*BloodPressureReading, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BloodPressureReading, error)
	UpdateOwned(ctx context.Context, reading *BloodPressureReading) (*BloodPressureReading, error)
	DeleteOwned(ctx context.Context, userID, readingID uuid.UUID) error
}

type readings struct {
	repository.Repository[*BloodPressureReading]
	db *bun.DB
}

var _ Readings = (*readings)(nil)

func NewReadingsRepository(db *bun.DB) Readings {
	repo := repository.NewRepository[*BloodPressureReading](db, repository.ModelHandlers[*BloodPressureReading]{
		NewRecord: func() *BloodPressureReading { return &BloodPressureReading{} },
		GetID: func(r *BloodPressureReading) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *BloodPressureReading, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})

	return &readings{
		Repository: repo,
		db:         db,
	}
}

func (a *readings) Record(ctx context.Context, reading *BloodPressureReading) (*BloodPressureReading, error) {
	return a.RecordTx(ctx, a.db, reading)
}

func (a *readings) RecordTx(ctx context.Context, tx bun.IDB, reading *BloodPressureReading) (*BloodPressureReading, error) {
	prepareReadingDefaults(reading)
	return a.Repository.CreateTx(ctx, tx, reading)
}

func (a *readings) GetOwned(ctx context.Context, userID, readingID uuid.UUID) (*BloodPressureReading, error) {
	record := &BloodPressureReading{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", readingID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": readingID.String()})
		}
		return nil, err
	}

	if record.UserID != userID {
		return nil, ErrRecordNotOwned
	}

	return record, nil
}

func (a *readings) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BloodPressureReading, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []*BloodPressureReading
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("reading_date DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *readings) UpdateOwned(ctx context.Context, reading *BloodPressureReading) (*BloodPressureReading, error) {
	existing, err := a.GetOwned(ctx, reading.UserID, reading.ID)
	if err != nil {
		return nil, err
	}

	reading.UserID = existing.UserID
	reading.Flag()
	now := time.Now()
	reading.UpdatedAt = &now

	return a.Repository.Update(ctx, reading, repository.UpdateByID(reading.ID.String()))
}

func (a *readings) DeleteOwned(ctx context.Context, userID, readingID uuid.UUID) error {
	record, err := a.GetOwned(ctx, userID, readingID)
	if err != nil {
		return err
	}

	_, err = a.db.NewDelete().
		Model(record).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx)

	return err
}

func prepareReadingDefaults(record *BloodPressureReading) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.ReadingDate.IsZero() {
		record.ReadingDate = time.Now()
	}

	if record.IsManualEntry {
		record.OcrConfidence = nil
	}

	record.Flag()
}
