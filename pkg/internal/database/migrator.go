package database

import (
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Follow{},
	&models.Post{},
	&models.Hashtag{},
	&models.PostHashtag{},
	&models.Mention{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PostView{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
