package vitals

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vitals/storage"
)

const bytesPerMB = 1024 * 1024

// UploadImage accepts a multipart file, reserves quota transactionally,
// then ships the bytes to the object store. If the store write fails the
// metadata row and the quota reservation are rolled back.
func (a *API) UploadImage(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file field is required",
		})
	}

	var readingID *uuid.UUID
	if raw := c.FormValue("reading_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid reading id",
			})
		}
		readingID = &id
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	image := &Image{
		ID:          uuid.New(),
		UserID:      user.ID,
		ReadingID:   readingID,
		ContentType: contentType,
		SizeMB:      float64(fileHeader.Size) / bytesPerMB,
	}
	image.ObjectKey = storage.ObjectKey(user.ID.String(), image.ID.String())

	if readingID != nil {
		if _, err := a.repo.Readings().GetOwned(c.UserContext(), user.ID, *readingID); err != nil {
			return a.renderError(c, err)
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open upload"))
	}
	defer file.Close()

	var record *Image
	err = a.repo.RunInTx(c.UserContext(), nil, func(ctx context.Context, tx bun.Tx) error {
		record, err = a.repo.Images().CreateWithQuotaTx(ctx, tx, image)
		if err != nil {
			return err
		}

		// ship the bytes while the reservation is still uncommitted so a
		// store failure rolls everything back
		if err := a.store.Put(ctx, image.ObjectKey, file, fileHeader.Size, contentType); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store image bytes")
		}

		return nil
	})
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListImages returns the user's image metadata, newest first
func (a *API) ListImages(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	records, err := a.repo.Images().ListByUser(c.UserContext(), user.ID, limit, offset)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"images": records,
		"count":  len(records),
	})
}

// ImageURL returns a time limited download link for an owned image
func (a *API) ImageURL(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	imageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid image id",
		})
	}

	record, err := a.repo.Images().GetOwned(c.UserContext(), user.ID, imageID)
	if err != nil {
		return a.renderError(c, err)
	}

	url, err := a.store.PresignedGetURL(c.UserContext(), record.ObjectKey, storage.DefaultPresignExpiry)
	if err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to presign image URL"))
	}

	return c.JSON(fiber.Map{
		"url":        url,
		"expires_in": int64(storage.DefaultPresignExpiry.Seconds()),
	})
}

// DeleteImage releases the quota and removes the stored bytes. The object
// store delete runs after commit; an orphaned object is recoverable, a
// wrong quota counter is not.
func (a *API) DeleteImage(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	imageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid image id",
		})
	}

	var record *Image
	err = a.repo.RunInTx(c.UserContext(), nil, func(ctx context.Context, tx bun.Tx) error {
		record, err = a.repo.Images().DeleteWithQuotaTx(ctx, tx, user.ID, imageID)
		return err
	})
	if err != nil {
		return a.renderError(c, err)
	}

	if err := a.store.Delete(c.UserContext(), record.ObjectKey); err != nil {
		a.logger.Error("failed to delete stored object %s: %v", record.ObjectKey, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AlbumPayload carries the writable fields of an album
type AlbumPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (a *API) CreateAlbum(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	var payload AlbumPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if strings.TrimSpace(payload.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "album name is required",
		})
	}

	album := &Album{
		UserID:      user.ID,
		Name:        payload.Name,
		Description: payload.Description,
	}

	record, err := a.repo.Albums().CreateOwned(c.UserContext(), album)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (a *API) ListAlbums(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	records, err := a.repo.Albums().ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"albums": records,
		"count":  len(records),
	})
}

func (a *API) GetAlbum(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	albumID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid album id",
		})
	}

	record, err := a.repo.Albums().GetOwned(c.UserContext(), user.ID, albumID)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(record)
}

func (a *API) DeleteAlbum(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	albumID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid album id",
		})
	}

	if err := a.repo.Albums().DeleteOwned(c.UserContext(), user.ID, albumID); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *API) AddAlbumImage(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	albumID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid album id",
		})
	}

	imageID, err := uuid.Parse(c.Params("imageID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid image id",
		})
	}

	if err := a.repo.Albums().AddImage(c.UserContext(), user.ID, albumID, imageID); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *API) RemoveAlbumImage(c *fiber.Ctx) error {
	user, err := a.currentUser(c)
	if err != nil {
		return a.renderError(c, err)
	}

	albumID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid album id",
		})
	}

	imageID, err := uuid.Parse(c.Params("imageID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid image id",
		})
	}

	if err := a.repo.Albums().RemoveImage(c.UserContext(), user.ID, albumID, imageID); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
