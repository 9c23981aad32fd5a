package vitals

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Clinical bounds used to flag out-of-range readings. Values outside these
// windows are stored regardless, only marked for review.
const (
	SystolicMin  = 70
	SystolicMax  = 250
	DiastolicMin = 40
	DiastolicMax = 150
	PulseMin     = 30
	PulseMax     = 220
)

// BloodPressureReading is owned by exactly one user. PulseValue is optional;
// not every cuff reports it. OcrConfidence is nil for manual entries.
type BloodPressureReading struct {
	bun.BaseModel  `bun:"table:readings,alias:rdg"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID         uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	PrimaryImageID *uuid.UUID `bun:"primary_image_id,nullzero,type:uuid" json:"primary_image_id,omitempty"`
	SystolicValue  int        `bun:"systolic_value,notnull" json:"systolic_value"`
	DiastolicValue int        `bun:"diastolic_value,notnull" json:"diastolic_value"`
	PulseValue     *int       `bun:"pulse_value,nullzero" json:"pulse_value,omitempty"`
	ReadingDate    time.Time  `bun:"reading_date,notnull" json:"reading_date"`
	Notes          string     `bun:"notes" json:"notes,omitempty"`
	IsManualEntry  bool       `bun:"is_manual_entry,notnull,default:false" json:"is_manual_entry"`
	OcrConfidence  *float64   `bun:"ocr_confidence,nullzero" json:"ocr_confidence,omitempty"`
	IsFlagged      bool       `bun:"is_flagged,notnull,default:false" json:"is_flagged"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// OutOfRange reports whether any value falls outside the clinical bounds
func (r *BloodPressureReading) OutOfRange() bool {
	if r.SystolicValue < SystolicMin || r.SystolicValue > SystolicMax {
		return true
	}
	if r.DiastolicValue < DiastolicMin || r.DiastolicValue > DiastolicMax {
		return true
	}
	if r.PulseValue != nil && (*r.PulseValue < PulseMin || *r.PulseValue > PulseMax) {
		return true
	}
	return false
}

// Flag recomputes IsFlagged from the stored values
func (r *BloodPressureReading) Flag() {
	r.IsFlagged = r.OutOfRange()
}
