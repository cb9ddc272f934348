package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/admin"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/database"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/repository"
)

func setup(t *testing.T) (*Service, *repository.UserRepository, *repository.LoanRepository, *admin.Session) {
	t.Helper()
	db := database.InitTestDB()
	userRepo := repository.NewUserRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	session := admin.NewSession("admin", "1234")
	return NewService(userRepo, loanRepo), userRepo, loanRepo, session
}

func TestRegisterRequiresAdmin(t *testing.T) {
	svc, _, _, session := setup(t)

	_, err := svc.Register(session, "Alice", "u1", "alice@example.com")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.True(t, session.Login("admin", "1234"))
	user, err := svc.Register(session, "Alice", "u1", "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, 0, user.FineBalance)
}

func TestUnregisterRequiresAdmin(t *testing.T) {
	svc, userRepo, _, session := setup(t)
	assert.NoError(t, userRepo.Add(&models.User{UserID: "u1", Name: "Alice", Email: "a@example.com"}))

	err := svc.Unregister(session, "u1")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUnregisterUnknownUser(t *testing.T) {
	svc, _, _, session := setup(t)
	session.Login("admin", "1234")

	err := svc.Unregister(session, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnregisterBlockedByAnyLoan(t *testing.T) {
	svc, userRepo, loanRepo, session := setup(t)
	session.Login("admin", "1234")

	assert.NoError(t, userRepo.Add(&models.User{UserID: "u1", Name: "Alice", Email: "a@example.com"}))
	// The loan is not even overdue; any ledger entry blocks unregistration.
	assert.NoError(t, loanRepo.Add(&models.Loan{
		LoanUID: "l1", Kind: models.KindBook, UserID: "u1", MediaID: "111",
		BorrowDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 28),
	}))

	err := svc.Unregister(session, "u1")
	assert.ErrorIs(t, err, ErrActiveLoanExists)
}

func TestUnregisterBlockedByUnpaidFine(t *testing.T) {
	svc, userRepo, _, session := setup(t)
	session.Login("admin", "1234")

	assert.NoError(t, userRepo.Add(&models.User{UserID: "u1", Name: "Alice", Email: "a@example.com", FineBalance: 40}))

	err := svc.Unregister(session, "u1")
	assert.ErrorIs(t, err, ErrUnpaidFine)
}

func TestUnregisterRemovesUser(t *testing.T) {
	svc, userRepo, _, session := setup(t)
	session.Login("admin", "1234")

	assert.NoError(t, userRepo.Add(&models.User{UserID: "u1", Name: "Alice", Email: "a@example.com"}))

	assert.NoError(t, svc.Unregister(session, "u1"))

	_, err := userRepo.FindByID("u1")
	assert.Error(t, err)
}
