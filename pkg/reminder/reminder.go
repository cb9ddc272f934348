package reminder

import (
	"fmt"
	"log"
	"strings"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/loans"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/repository"
)

// NotificationSender delivers a message to an email address.
type NotificationSender interface {
	Send(email, message string) error
}

// Service composes overdue reminders from the engine's overdue report and
// hands them to the sender. Delivery failures are logged and swallowed; they
// never surface as domain errors.
type Service struct {
	users  *repository.UserRepository
	books  *repository.BookRepository
	cds    *repository.CDRepository
	engine *loans.Service
	sender NotificationSender
}

func NewService(
	users *repository.UserRepository,
	books *repository.BookRepository,
	cds *repository.CDRepository,
	engine *loans.Service,
	sender NotificationSender,
) *Service {
	return &Service{users: users, books: books, cds: cds, engine: engine, sender: sender}
}

// SendOverdueReminders emails every user with overdue items one message
// listing all of their overdue books and CDs.
func (s *Service) SendOverdueReminders() {
	overdueBooks, err := s.engine.OverdueLoans(models.KindBook)
	if err != nil {
		log.Printf("Failed to load overdue book loans: %v", err)
		return
	}
	overdueCDs, err := s.engine.OverdueLoans(models.KindCD)
	if err != nil {
		log.Printf("Failed to load overdue CD loans: %v", err)
		return
	}

	all := append(overdueBooks, overdueCDs...)

	byUser := make(map[string][]models.Loan)
	order := make([]string, 0)
	for _, l := range all {
		if _, seen := byUser[l.UserID]; !seen {
			order = append(order, l.UserID)
		}
		byUser[l.UserID] = append(byUser[l.UserID], l)
	}

	for _, userID := range order {
		user, err := s.users.FindByID(userID)
		if err != nil {
			log.Printf("Skipping reminder, user %s not found: %v", userID, err)
			continue
		}
		msg := s.composeMessage(user, byUser[userID])
		if err := s.sender.Send(user.Email, msg); err != nil {
			log.Printf("Failed to send reminder to %s: %v", user.Email, err)
		} else {
			log.Printf("Reminder sent to %s (%d overdue items)", user.Email, len(byUser[userID]))
		}
	}
}

func (s *Service) composeMessage(user *models.User, overdue []models.Loan) string {
	currency := s.engine.Policy().Currency

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", user.Name)
	fmt.Fprintf(&b, "You have %d overdue item(s):\n\n", len(overdue))
	for i := range overdue {
		loan := &overdue[i]
		fmt.Fprintf(&b, "Title: %s\n", s.titleOf(loan))
		fmt.Fprintf(&b, "Due Date: %s\n", loan.DueDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "Days Overdue: %d\n", s.engine.OverdueDays(loan))
		fmt.Fprintf(&b, "Current Fine: %d %s\n", s.engine.CalculateFine(loan), currency)
		b.WriteString("-------------------------------------\n")
	}
	b.WriteString("\nPlease return the overdue items as soon as possible.\n")
	b.WriteString("Library System")
	return b.String()
}

func (s *Service) titleOf(loan *models.Loan) string {
	if loan.Kind == models.KindCD {
		if cd, err := s.cds.FindByID(loan.MediaID); err == nil {
			return cd.Title
		}
	} else {
		if book, err := s.books.FindByISBN(loan.MediaID); err == nil {
			return book.Title
		}
	}
	return loan.MediaID
}
