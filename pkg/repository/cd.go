package repository

import (
	"gorm.io/gorm"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
)

type CDRepository struct {
	db *gorm.DB
}

func NewCDRepository(db *gorm.DB) *CDRepository {
	return &CDRepository{db: db}
}

func (r *CDRepository) Add(cd *models.CD) error {
	return r.db.Create(cd).Error
}

func (r *CDRepository) FindByID(discID string) (*models.CD, error) {
	var cd models.CD
	if err := r.db.Where("disc_id = ?", discID).First(&cd).Error; err != nil {
		return nil, err
	}
	return &cd, nil
}

func (r *CDRepository) All() ([]models.CD, error) {
	var cds []models.CD
	err := r.db.Order("id").Find(&cds).Error
	return cds, err
}

func (r *CDRepository) Save(cd *models.CD) error {
	return r.db.Save(cd).Error
}
