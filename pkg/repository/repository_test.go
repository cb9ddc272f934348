package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/database"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
)

func TestBookAddMergesQuantity(t *testing.T) {
	repo := NewBookRepository(database.InitTestDB())

	assert.NoError(t, repo.Add(&models.Book{Title: "Java", Author: "Gosling", ISBN: "111", Quantity: 1}))
	assert.NoError(t, repo.Add(&models.Book{Title: "Java", Author: "Gosling", ISBN: "111", Quantity: 2}))

	book, err := repo.FindByISBN("111")
	assert.NoError(t, err)
	assert.Equal(t, 3, book.Quantity)

	all, err := repo.All()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookAddRejectsInvalidQuantity(t *testing.T) {
	repo := NewBookRepository(database.InitTestDB())

	err := repo.Add(&models.Book{Title: "Java", ISBN: "111", Quantity: 0})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestBookSearchIsCaseSensitiveSubstring(t *testing.T) {
	repo := NewBookRepository(database.InitTestDB())

	assert.NoError(t, repo.Add(&models.Book{Title: "Java", Author: "James Gosling", ISBN: "111", Quantity: 1}))
	assert.NoError(t, repo.Add(&models.Book{Title: "Effective Java", Author: "Joshua Bloch", ISBN: "222", Quantity: 1}))
	assert.NoError(t, repo.Add(&models.Book{Title: "javascript basics", Author: "Someone", ISBN: "333", Quantity: 1}))

	byTitle, err := repo.Search("Java")
	assert.NoError(t, err)
	assert.Len(t, byTitle, 2)

	lower, err := repo.Search("java")
	assert.NoError(t, err)
	assert.Len(t, lower, 1)
	assert.Equal(t, "333", lower[0].ISBN)

	byISBN, err := repo.Search("22")
	assert.NoError(t, err)
	assert.Len(t, byISBN, 1)

	byAuthor, err := repo.Search("Bloch")
	assert.NoError(t, err)
	assert.Len(t, byAuthor, 1)
}

func TestCDRepository(t *testing.T) {
	repo := NewCDRepository(database.InitTestDB())

	assert.NoError(t, repo.Add(&models.CD{Title: "Abbey Road", Artist: "The Beatles", DiscID: "CD-1"}))

	cd, err := repo.FindByID("CD-1")
	assert.NoError(t, err)
	assert.False(t, cd.Borrowed)

	cd.Borrowed = true
	assert.NoError(t, repo.Save(cd))

	again, err := repo.FindByID("CD-1")
	assert.NoError(t, err)
	assert.True(t, again.Borrowed)
}

func TestUserRepositoryRemove(t *testing.T) {
	repo := NewUserRepository(database.InitTestDB())

	assert.NoError(t, repo.Add(&models.User{UserID: "u1", Name: "Alice", Email: "a@example.com"}))

	user, err := repo.FindByID("u1")
	assert.NoError(t, err)

	assert.NoError(t, repo.Remove(user))
	_, err = repo.FindByID("u1")
	assert.Error(t, err)
}

func TestLoanLedgerOrderAndFilters(t *testing.T) {
	repo := NewLoanRepository(database.InitTestDB())

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, repo.Add(&models.Loan{LoanUID: "l1", Kind: models.KindBook, UserID: "u1", MediaID: "111", BorrowDate: now, DueDate: now.AddDate(0, 0, 28)}))
	assert.NoError(t, repo.Add(&models.Loan{LoanUID: "l2", Kind: models.KindCD, UserID: "u1", MediaID: "CD-1", BorrowDate: now, DueDate: now.AddDate(0, 0, 7)}))
	assert.NoError(t, repo.Add(&models.Loan{LoanUID: "l3", Kind: models.KindBook, UserID: "u2", MediaID: "222", BorrowDate: now, DueDate: now.AddDate(0, 0, 28)}))

	books, err := repo.AllByKind(models.KindBook)
	assert.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, "l1", books[0].LoanUID)
	assert.Equal(t, "l3", books[1].LoanUID)

	byUser, err := repo.ByUser("u1")
	assert.NoError(t, err)
	assert.Len(t, byUser, 2)

	loan, err := repo.FindByUID("l2")
	assert.NoError(t, err)
	assert.Equal(t, models.KindCD, loan.Kind)
}
