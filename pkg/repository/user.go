package repository

import (
	"gorm.io/gorm"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Add(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(userID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Remove(user *models.User) error {
	return r.db.Delete(user).Error
}

func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}
