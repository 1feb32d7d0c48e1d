package collab

import (
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// Room holds the persisted state of a collaboration room: the current
// code blob and the language it was written for. Live membership is not
// persisted; it exists only in the relay while connections are joined.
type Room struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Language string `gorm:"default:javascript" json:"language"`
	Code     string `json:"code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID, err = nanoid.New(6)
	}
	return
}
