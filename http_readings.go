package vitals

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ReadingPayload carries the writable fields of a blood pressure reading
type ReadingPayload struct {
	SystolicValue  int        `json:"systolic_value"`
	DiastolicValue int        `json:"diastolic_value"`
	PulseValue     *int       `json:"pulse_value,omitempty"`
	ReadingDate    *time.Time `json:"reading_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	IsManualEntry  bool       `json:"is_manual_entry"`
	OcrConfidence  *float64   `json:"ocr_confidence,omitempty"`
	PrimaryImageID *uuid.UUID `json:"primary_image_id,omitempty"`
}

func (p ReadingPayload) validate() error {
	if p.SystolicValue <= 0 || p.DiastolicValue <= 0 {
		return errors.New("systolic and diastolic values are required", errors.CategoryValidation)
	}
	if p.DiastolicValue >= p.SystolicValue {
		return errors.New("diastolic value must be below systolic value", errors.CategoryValidation)
	}
	return nil
}

// CreateReading stores a reading for the authenticated user. Values outside
// the clinical bounds are accepted and flagged, not rejected.
func (a *API) CreateReading(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	var payload ReadingPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := payload.validate(); err != nil {
		return a.renderError(c, err)
	}

	reading := &BloodPressureReading{
		UserID:         user.ID,
		SystolicValue:  payload.SystolicValue,
		DiastolicValue: payload.DiastolicValue,
		PulseValue:     payload.PulseValue,
		Notes:          payload.Notes,
		IsManualEntry:  payload.IsManualEntry,
		OcrConfidence:  payload.OcrConfidence,
		PrimaryImageID: payload.PrimaryImageID,
	}
	if payload.ReadingDate != nil {
		reading.ReadingDate = *payload.ReadingDate
	}

	record, err := a.repo.Readings().Record(c.UserContext(), reading)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListReadings returns the user's readings, newest first
func (a *API) ListReadings(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	records, err := a.repo.Readings().ListByUser(c.UserContext(), user.ID, limit, offset)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"readings": records,
		"count":    len(records),
	})
}

func (a *API) GetReading(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	readingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reading id",
		})
	}

	record, err := a.repo.Readings().GetOwned(c.UserContext(), user.ID, readingID)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(record)
}

// UpdateReading replaces the writable fields of an owned reading. The
// flagged state is recomputed from the new values.
func (a *API) UpdateReading(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	readingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reading id",
		})
	}

	var payload ReadingPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := payload.validate(); err != nil {
		return a.renderError(c, err)
	}

	record, err := a.repo.Readings().GetOwned(c.UserContext(), user.ID, readingID)
	if err != nil {
		return a.renderError(c, err)
	}

	record.SystolicValue = payload.SystolicValue
	record.DiastolicValue = payload.DiastolicValue
	record.PulseValue = payload.PulseValue
	record.Notes = payload.Notes
	record.IsManualEntry = payload.IsManualEntry
	record.OcrConfidence = payload.OcrConfidence
	record.PrimaryImageID = payload.PrimaryImageID
	if payload.ReadingDate != nil {
		record.ReadingDate = *payload.ReadingDate
	}

	updated, err := a.repo.Readings().UpdateOwned(c.UserContext(), record)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(updated)
}

func (a *API) DeleteReading(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	readingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reading id",
		})
	}

	if err := a.repo.Readings().DeleteOwned(c.UserContext(), user.ID, readingID); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
