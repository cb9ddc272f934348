package loans

import (
	"errors"

	"github.com/google/uuid"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/clock"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/repository"
)

var (
	ErrFineOutstanding = errors.New("user must pay all fines first")
	ErrItemUnavailable = errors.New("no available copies")
)

// Service enforces the borrowing and fine rules. It is the only writer to
// loan creation and fine balances; fines are always computed fresh from the
// due date and never accumulated into stored state.
type Service struct {
	books  *repository.BookRepository
	cds    *repository.CDRepository
	users  *repository.UserRepository
	ledger *repository.LoanRepository
	clock  clock.Clock
	policy Policy
}

func NewService(
	books *repository.BookRepository,
	cds *repository.CDRepository,
	users *repository.UserRepository,
	ledger *repository.LoanRepository,
	clk clock.Clock,
	policy Policy,
) *Service {
	return &Service{
		books:  books,
		cds:    cds,
		users:  users,
		ledger: ledger,
		clock:  clk,
		policy: policy,
	}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// BorrowBook lends one copy of a book to the user. An unpaid fine blocks
// borrowing; overdue items alone do not.
func (s *Service) BorrowBook(user *models.User, book *models.Book) (*models.Loan, error) {
	if user.FineBalance > 0 {
		return nil, ErrFineOutstanding
	}
	if !book.HasAvailableCopy() {
		return nil, ErrItemUnavailable
	}

	book.BorrowedCount++
	if err := s.books.Save(book); err != nil {
		return nil, err
	}

	return s.createLoan(models.KindBook, user.UserID, book.ISBN)
}

// BorrowCD lends a CD to the user. CDs are single-copy items.
func (s *Service) BorrowCD(user *models.User, cd *models.CD) (*models.Loan, error) {
	if user.FineBalance > 0 {
		return nil, ErrFineOutstanding
	}
	if cd.Borrowed {
		return nil, ErrItemUnavailable
	}

	cd.Borrowed = true
	if err := s.cds.Save(cd); err != nil {
		return nil, err
	}

	return s.createLoan(models.KindCD, user.UserID, cd.DiscID)
}

func (s *Service) createLoan(kind, userID, mediaID string) (*models.Loan, error) {
	borrowDate := s.clock.Today()
	loan := &models.Loan{
		LoanUID:    uuid.New().String(),
		Kind:       kind,
		UserID:     userID,
		MediaID:    mediaID,
		BorrowDate: borrowDate,
		DueDate:    borrowDate.AddDate(0, 0, s.policy.BorrowDays(kind)),
	}
	if err := s.ledger.Add(loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// IsOverdue reports whether the loan is past its due date. The due date
// itself is not overdue.
func (s *Service) IsOverdue(loan *models.Loan) bool {
	return s.clock.Today().After(clock.Truncate(loan.DueDate))
}

// OverdueDays returns the number of calendar days past the due date, or 0.
func (s *Service) OverdueDays(loan *models.Loan) int {
	if !s.IsOverdue(loan) {
		return 0
	}
	return clock.DaysBetween(loan.DueDate, s.clock.Today())
}

// CalculateFine computes the current fine without touching any balance.
// Repeated calls recompute from the due date, so fines never stack.
func (s *Service) CalculateFine(loan *models.Loan) int {
	return s.OverdueDays(loan) * s.policy.DailyFine(loan.Kind)
}

// PayFine reduces the user's balance by the payment. Overpayment is accepted
// and the balance floors at zero; the engine never represents credit.
func (s *Service) PayFine(user *models.User, amount int) error {
	if amount > user.FineBalance {
		user.FineBalance = 0
	} else {
		user.FineBalance -= amount
	}
	return s.users.Save(user)
}

// OverdueLoans lists overdue loans of the given kind in ledger order.
func (s *Service) OverdueLoans(kind string) ([]models.Loan, error) {
	all, err := s.ledger.AllByKind(kind)
	if err != nil {
		return nil, err
	}
	overdue := make([]models.Loan, 0)
	for i := range all {
		if s.IsOverdue(&all[i]) {
			overdue = append(overdue, all[i])
		}
	}
	return overdue, nil
}

// UserHasAnyOverdue reports whether any book or CD loan for the user is
// overdue, independent of their fine balance.
func (s *Service) UserHasAnyOverdue(user *models.User) (bool, error) {
	all, err := s.ledger.ByUser(user.UserID)
	if err != nil {
		return false, err
	}
	for i := range all {
		if s.IsOverdue(&all[i]) {
			return true, nil
		}
	}
	return false, nil
}
