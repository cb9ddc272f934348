package reminder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/clock"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/database"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/loans"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/repository"
)

type recordingSender struct {
	sent map[string]string
	fail bool
}

func (r *recordingSender) Send(email, message string) error {
	if r.fail {
		return errors.New("smtp unreachable")
	}
	if r.sent == nil {
		r.sent = make(map[string]string)
	}
	r.sent[email] = message
	return nil
}

func setup(t *testing.T, sender NotificationSender) (*Service, *repository.LoanRepository) {
	t.Helper()
	db := database.InitTestDB()
	bookRepo := repository.NewBookRepository(db)
	cdRepo := repository.NewCDRepository(db)
	userRepo := repository.NewUserRepository(db)
	loanRepo := repository.NewLoanRepository(db)

	today := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	engine := loans.NewService(bookRepo, cdRepo, userRepo, loanRepo, clock.Fixed{Date: today}, loans.DefaultPolicy())

	assert.NoError(t, userRepo.Add(&models.User{UserID: "u1", Name: "Alice", Email: "alice@example.com"}))
	assert.NoError(t, bookRepo.Add(&models.Book{Title: "Java", Author: "Gosling", ISBN: "111", Quantity: 1}))
	assert.NoError(t, cdRepo.Add(&models.CD{Title: "Abbey Road", Artist: "The Beatles", DiscID: "CD-1"}))

	return NewService(userRepo, bookRepo, cdRepo, engine, sender), loanRepo
}

func overdueLoan(uid, kind, userID, mediaID string) *models.Loan {
	return &models.Loan{
		LoanUID: uid, Kind: kind, UserID: userID, MediaID: mediaID,
		BorrowDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestSendOverdueRemindersGroupsPerUser(t *testing.T) {
	sender := &recordingSender{}
	svc, ledger := setup(t, sender)

	assert.NoError(t, ledger.Add(overdueLoan("l1", models.KindBook, "u1", "111")))
	assert.NoError(t, ledger.Add(overdueLoan("l2", models.KindCD, "u1", "CD-1")))

	svc.SendOverdueReminders()

	assert.Len(t, sender.sent, 1)
	msg := sender.sent["alice@example.com"]
	assert.True(t, strings.HasPrefix(msg, "Dear Alice,"))
	assert.Contains(t, msg, "You have 2 overdue item(s)")
	assert.Contains(t, msg, "Title: Java")
	assert.Contains(t, msg, "Title: Abbey Road")
	assert.Contains(t, msg, "Due Date: 2023-01-10")
	assert.Contains(t, msg, "Days Overdue: 5")
	// 5 days at 10/day for the book, 20/day for the CD.
	assert.Contains(t, msg, "Current Fine: 50 NIS")
	assert.Contains(t, msg, "Current Fine: 100 NIS")
}

func TestSendOverdueRemindersSkipsCurrentLoans(t *testing.T) {
	sender := &recordingSender{}
	svc, ledger := setup(t, sender)

	assert.NoError(t, ledger.Add(&models.Loan{
		LoanUID: "l1", Kind: models.KindBook, UserID: "u1", MediaID: "111",
		BorrowDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2023, 2, 7, 0, 0, 0, 0, time.UTC),
	}))

	svc.SendOverdueReminders()
	assert.Empty(t, sender.sent)
}

func TestSendFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{fail: true}
	svc, ledger := setup(t, sender)

	assert.NoError(t, ledger.Add(overdueLoan("l1", models.KindBook, "u1", "111")))

	// Must not panic or propagate the transport error.
	svc.SendOverdueReminders()
}
