package users

import (
	"errors"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/admin"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/repository"
)

var (
	ErrNotAuthorized    = errors.New("only admins can manage users")
	ErrUserNotFound     = errors.New("user not found")
	ErrActiveLoanExists = errors.New("user has active loans")
	ErrUnpaidFine       = errors.New("user has unpaid fines")
)

// Service enforces the user management rules, in particular the
// unregistration gates.
type Service struct {
	users  *repository.UserRepository
	ledger *repository.LoanRepository
}

func NewService(users *repository.UserRepository, ledger *repository.LoanRepository) *Service {
	return &Service{users: users, ledger: ledger}
}

// Register creates a user with a zero fine balance. Admin only.
func (s *Service) Register(session *admin.Session, name, userID, email string) (*models.User, error) {
	if !session.IsLoggedIn() {
		return nil, ErrNotAuthorized
	}
	user := &models.User{UserID: userID, Name: name, Email: email}
	if err := s.users.Add(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Unregister removes a user once nothing ties them to the library: no loan
// of either kind may reference the user id (the ledger is append-only, so
// any loan counts as active) and the fine balance must be zero.
func (s *Service) Unregister(session *admin.Session, userID string) error {
	if !session.IsLoggedIn() {
		return ErrNotAuthorized
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	loans, err := s.ledger.ByUser(userID)
	if err != nil {
		return err
	}
	if len(loans) > 0 {
		return ErrActiveLoanExists
	}

	if user.FineBalance > 0 {
		return ErrUnpaidFine
	}

	return s.users.Remove(user)
}
