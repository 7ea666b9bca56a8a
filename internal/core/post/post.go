package post

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

// ErrPostNotFound is returned by stores when no post has the requested id.
var ErrPostNotFound = errors.New("post not found")

// Post is the single record kept by the board.
// Seq only orders rows in the SQL store; the other backends leave it zero.
type Post struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	Username  string    `gorm:"type:varchar(255);not null;default:''"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// NewID returns a fresh random post id.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}
