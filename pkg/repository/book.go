package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Add stores a new book or, when the ISBN is already in the catalog, merges
// the incoming quantity into the existing row.
func (r *BookRepository) Add(book *models.Book) error {
	if book.Quantity < 1 {
		return models.ErrInvalidQuantity
	}

	var existing models.Book
	err := r.db.Where("isbn = ?", book.ISBN).First(&existing).Error
	if err == nil {
		existing.Quantity += book.Quantity
		return r.db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(book).Error
}

func (r *BookRepository) FindByISBN(isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.db.Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Search matches the keyword as a case-sensitive substring of title, author
// or ISBN. sqlite LIKE is case-insensitive for ASCII, so matching happens
// here instead of in SQL.
func (r *BookRepository) Search(keyword string) ([]models.Book, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Book, 0)
	for _, b := range all {
		if strings.Contains(b.Title, keyword) ||
			strings.Contains(b.Author, keyword) ||
			strings.Contains(b.ISBN, keyword) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (r *BookRepository) All() ([]models.Book, error) {
	var books []models.Book
	err := r.db.Order("id").Find(&books).Error
	return books, err
}

func (r *BookRepository) Save(book *models.Book) error {
	return r.db.Save(book).Error
}
