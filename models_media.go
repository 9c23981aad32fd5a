package vitals

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Image is the metadata record for an uploaded photo; the bytes live in the
// object store under ObjectKey. SizeMB participates in quota accounting.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:img"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	ReadingID     *uuid.UUID `bun:"reading_id,nullzero,type:uuid" json:"reading_id,omitempty"`
	ObjectKey     string     `bun:"object_key,notnull,unique" json:"object_key,omitempty"`
	ContentType   string     `bun:"content_type,notnull" json:"content_type,omitempty"`
	SizeMB        float64    `bun:"size_mb,notnull" json:"size_mb"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Album groups images for one user
type Album struct {
	bun.BaseModel `bun:"table:albums,alias:alb"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Images        []*Image   `bun:"m2m:album_images,join:Album=Image" json:"images,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// AlbumImage is the join table between albums and images
type AlbumImage struct {
	bun.BaseModel `bun:"table:album_images,alias:ai"`
	AlbumID       uuid.UUID `bun:"album_id,pk,type:uuid" json:"album_id"`
	Album         *Album    `bun:"rel:belongs-to,join:album_id=id" json:"-"`
	ImageID       uuid.UUID `bun:"image_id,pk,type:uuid" json:"image_id"`
	Image         *Image    `bun:"rel:belongs-to,join:image_id=id" json:"-"`
}
