package loans

import "github.com/LibrarySystemTeam/Softwareproject/pkg/models"

// Policy holds the circulation constants for a deployment. The defaults
// match the original library rules; cmd/library can override them from env.
type Policy struct {
	BookLoanDays  int
	CDLoanDays    int
	BookDailyFine int
	CDDailyFine   int
	Currency      string
}

func DefaultPolicy() Policy {
	return Policy{
		BookLoanDays:  28,
		CDLoanDays:    7,
		BookDailyFine: 10,
		CDDailyFine:   20,
		Currency:      "NIS",
	}
}

// BorrowDays returns the loan duration for a media kind.
func (p Policy) BorrowDays(kind string) int {
	if kind == models.KindCD {
		return p.CDLoanDays
	}
	return p.BookLoanDays
}

// DailyFine returns the per-day overdue fine for a media kind.
func (p Policy) DailyFine(kind string) int {
	if kind == models.KindCD {
		return p.CDDailyFine
	}
	return p.BookDailyFine
}
