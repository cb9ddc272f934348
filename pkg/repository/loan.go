package repository

import (
	"gorm.io/gorm"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
)

// LoanRepository is the loan ledger. Rows are only ever appended; there is
// no update or delete, and listings follow insertion order.
type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Add(loan *models.Loan) error {
	return r.db.Create(loan).Error
}

func (r *LoanRepository) FindByUID(loanUID string) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.Where("loan_uid = ?", loanUID).First(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) AllByKind(kind string) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Where("kind = ?", kind).Order("id").Find(&loans).Error
	return loans, err
}

func (r *LoanRepository) ByUser(userID string) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&loans).Error
	return loans, err
}
