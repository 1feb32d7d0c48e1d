package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coderoom/pkg/collab"
)

func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&collab.Room{}); err != nil {
		return nil, err
	}

	return db, nil
}
