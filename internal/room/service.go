package room

import (
	"errors"

	"gorm.io/gorm"

	"coderoom/pkg/collab"
)

// Service persists room state. The relay never touches this package;
// clients fetch the current code once at startup and push edits here
// independently of the broadcast path.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(name, language string) (*collab.Room, error) {
	room := collab.Room{
		Name:     name,
		Language: language,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Service) Get(roomID string) (*collab.Room, error) {
	var room collab.Room
	err := s.db.First(&room, "id = ?", roomID).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetCode returns the persisted code blob for a room. Rooms exist
// implicitly, so an unknown ID yields empty code rather than an error.
func (s *Service) GetCode(roomID string) (string, error) {
	room, err := s.Get(roomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return room.Code, nil
}

// SaveCode upserts the code blob for a room. A room that was only ever
// joined over the websocket gets its row created on the first save.
func (s *Service) SaveCode(roomID, code string) error {
	if roomID == "" {
		return errors.New("room id cannot be empty")
	}

	var room collab.Room
	err := s.db.First(&room, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&collab.Room{ID: roomID, Code: code}).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&room).Update("code", code).Error
}

func (s *Service) List(limit int) ([]collab.Room, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rooms []collab.Room
	err := s.db.Order("updated_at DESC").Limit(limit).Find(&rooms).Error
	return rooms, err
}
