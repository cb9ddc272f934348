package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/admin"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/clock"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/database"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/loans"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/models"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/reminder"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/repository"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/users"
)

var (
	db          *gorm.DB
	bookRepo    *repository.BookRepository
	cdRepo      *repository.CDRepository
	userRepo    *repository.UserRepository
	loanRepo    *repository.LoanRepository
	loanService *loans.Service
	userService *users.Service
	reminders   *reminder.Service
	session     *admin.Session
)

func main() {
	log.Println("Starting library service...")

	db = database.InitLibraryDB()

	bookRepo = repository.NewBookRepository(db)
	cdRepo = repository.NewCDRepository(db)
	userRepo = repository.NewUserRepository(db)
	loanRepo = repository.NewLoanRepository(db)

	loanService = loans.NewService(bookRepo, cdRepo, userRepo, loanRepo, clock.System(), policyFromEnv())
	userService = users.NewService(userRepo, loanRepo)
	session = admin.NewSession(getEnv("ADMIN_USER", "admin"), getEnv("ADMIN_PASSWORD", "1234"))

	sender := reminder.NewEmailSender(
		getEnv("SMTP_HOST", "smtp.gmail.com"),
		getEnv("SMTP_PORT", "587"),
		getEnv("SMTP_FROM", "library@example.com"),
		getEnv("EMAIL_APP_PASSWORD", ""),
	)
	reminders = reminder.NewService(userRepo, bookRepo, cdRepo, loanService, sender)

	seedTestData()

	server := gin.Default()
	server.POST("/api/v1/admin/login", adminLogin)
	server.POST("/api/v1/admin/logout", adminLogout)
	server.GET("/api/v1/books", getBooks)
	server.POST("/api/v1/books", addBook)
	server.GET("/api/v1/cds", getCDs)
	server.POST("/api/v1/cds", addCD)
	server.POST("/api/v1/users", registerUser)
	server.DELETE("/api/v1/users/:userId", unregisterUser)
	server.GET("/api/v1/users/:userId/loans", getUserLoans)
	server.GET("/api/v1/users/:userId/overdue", getUserOverdue)
	server.POST("/api/v1/loans/books", borrowBook)
	server.POST("/api/v1/loans/cds", borrowCD)
	server.GET("/api/v1/loans/overdue", getOverdueLoans)
	server.GET("/api/v1/loans/:loanUid/fine", getLoanFine)
	server.POST("/api/v1/fines/pay", payFine)
	server.POST("/api/v1/reminders/send", sendReminders)
	server.GET("/manage/health", healthCheck)

	log.Println("Library service starting on :8060")
	if err := server.Run(":8060"); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func adminLogin(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if !session.Login(request.Username, request.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func adminLogout(c *gin.Context) {
	session.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func getBooks(c *gin.Context) {
	keyword, hasKeyword := c.GetQuery("keyword")

	var books []models.Book
	var err error
	if hasKeyword {
		books, err = bookRepo.Search(keyword)
	} else {
		books, err = bookRepo.All()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, len(books))
	for i, b := range books {
		items[i] = gin.H{
			"isbn":           b.ISBN,
			"title":          b.Title,
			"author":         b.Author,
			"quantity":       b.Quantity,
			"borrowedCount":  b.BorrowedCount,
			"availableCount": b.Quantity - b.BorrowedCount,
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func addBook(c *gin.Context) {
	if !session.IsLoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin login required"})
		return
	}
	var request struct {
		Title    string `json:"title" binding:"required"`
		Author   string `json:"author"`
		ISBN     string `json:"isbn" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if request.Quantity == 0 {
		request.Quantity = 1
	}

	book := &models.Book{
		Title:    request.Title,
		Author:   request.Author,
		ISBN:     request.ISBN,
		Quantity: request.Quantity,
	}
	if err := bookRepo.Add(book); err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isbn": book.ISBN, "title": book.Title})
}

func getCDs(c *gin.Context) {
	cds, err := cdRepo.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := make([]gin.H, len(cds))
	for i, cd := range cds {
		items[i] = gin.H{
			"id":       cd.DiscID,
			"title":    cd.Title,
			"artist":   cd.Artist,
			"borrowed": cd.Borrowed,
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func addCD(c *gin.Context) {
	if !session.IsLoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin login required"})
		return
	}
	var request struct {
		Title  string `json:"title" binding:"required"`
		Artist string `json:"artist"`
		ID     string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cd := &models.CD{Title: request.Title, Artist: request.Artist, DiscID: request.ID}
	if err := cdRepo.Add(cd); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add CD"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cd.DiscID, "title": cd.Title})
}

func registerUser(c *gin.Context) {
	var request struct {
		Name   string `json:"name" binding:"required"`
		UserID string `json:"userId" binding:"required"`
		Email  string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := userService.Register(session, request.Name, request.UserID, request.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotAuthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": user.UserID, "name": user.Name, "email": user.Email})
}

func unregisterUser(c *gin.Context) {
	userID := c.Param("userId")

	err := userService.Unregister(session, userID)
	switch {
	case err == nil:
		c.Data(http.StatusNoContent, "application/json", nil)
	case errors.Is(err, users.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrActiveLoanExists), errors.Is(err, users.ErrUnpaidFine):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func getUserLoans(c *gin.Context) {
	userID := c.Param("userId")

	if _, err := userRepo.FindByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	userLoans, err := loanRepo.ByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loanItems(userLoans))
}

func getUserOverdue(c *gin.Context) {
	userID := c.Param("userId")

	user, err := userRepo.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	hasOverdue, err := loanService.UserHasAnyOverdue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "hasOverdue": hasOverdue})
}

func borrowBook(c *gin.Context) {
	var request struct {
		UserID string `json:"userId" binding:"required"`
		ISBN   string `json:"isbn" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := userRepo.FindByID(request.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	book, err := bookRepo.FindByISBN(request.ISBN)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	loan, err := loanService.BorrowBook(user, book)
	if err != nil {
		renderBorrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanItem(loan))
}

func borrowCD(c *gin.Context) {
	var request struct {
		UserID string `json:"userId" binding:"required"`
		ID     string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := userRepo.FindByID(request.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	cd, err := cdRepo.FindByID(request.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "CD not found"})
		return
	}

	loan, err := loanService.BorrowCD(user, cd)
	if err != nil {
		renderBorrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanItem(loan))
}

func renderBorrowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, loans.ErrFineOutstanding), errors.Is(err, loans.ErrItemUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func getOverdueLoans(c *gin.Context) {
	kind := c.DefaultQuery("kind", models.KindBook)
	if kind != models.KindBook && kind != models.KindCD {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be BOOK or CD"})
		return
	}

	overdue, err := loanService.OverdueLoans(kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	currency := loanService.Policy().Currency
	items := make([]gin.H, len(overdue))
	for i := range overdue {
		loan := &overdue[i]
		items[i] = gin.H{
			"loanUid":     loan.LoanUID,
			"userId":      loan.UserID,
			"mediaId":     loan.MediaID,
			"dueDate":     loan.DueDate.Format("2006-01-02"),
			"daysOverdue": loanService.OverdueDays(loan),
			"fine":        loanService.CalculateFine(loan),
			"currency":    currency,
		}
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "items": items})
}

func getLoanFine(c *gin.Context) {
	loanUID := c.Param("loanUid")

	loan, err := loanRepo.FindByUID(loanUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loanUid":     loan.LoanUID,
		"daysOverdue": loanService.OverdueDays(loan),
		"fine":        loanService.CalculateFine(loan),
		"currency":    loanService.Policy().Currency,
	})
}

func payFine(c *gin.Context) {
	var request struct {
		UserID string `json:"userId" binding:"required"`
		Amount int    `json:"amount"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if request.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be >= 0"})
		return
	}

	user, err := userRepo.FindByID(request.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := loanService.PayFine(user, request.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": user.UserID, "fineBalance": user.FineBalance})
}

func sendReminders(c *gin.Context) {
	reminders.SendOverdueReminders()
	c.JSON(http.StatusOK, gin.H{"message": "Reminders dispatched"})
}

func loanItem(loan *models.Loan) gin.H {
	return gin.H{
		"loanUid":    loan.LoanUID,
		"kind":       loan.Kind,
		"userId":     loan.UserID,
		"mediaId":    loan.MediaID,
		"borrowDate": loan.BorrowDate.Format("2006-01-02"),
		"dueDate":    loan.DueDate.Format("2006-01-02"),
	}
}

func loanItems(all []models.Loan) []gin.H {
	items := make([]gin.H, len(all))
	for i := range all {
		items[i] = loanItem(&all[i])
	}
	return items
}

func healthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Host localhost:8060 is active",
	})
}

func policyFromEnv() loans.Policy {
	p := loans.DefaultPolicy()
	p.BookLoanDays = getEnvInt("LOAN_BOOK_DAYS", p.BookLoanDays)
	p.CDLoanDays = getEnvInt("LOAN_CD_DAYS", p.CDLoanDays)
	p.BookDailyFine = getEnvInt("FINE_BOOK_PER_DAY", p.BookDailyFine)
	p.CDDailyFine = getEnvInt("FINE_CD_PER_DAY", p.CDDailyFine)
	p.Currency = getEnv("FINE_CURRENCY", p.Currency)
	return p
}

func seedTestData() {
	books := []models.Book{
		{Title: "Java", Author: "James Gosling", ISBN: "111", Quantity: 1},
		{Title: "The Go Programming Language", Author: "Donovan and Kernighan", ISBN: "978-0134190440", Quantity: 3},
	}
	for _, b := range books {
		if _, err := bookRepo.FindByISBN(b.ISBN); err != nil {
			book := b
			if err := bookRepo.Add(&book); err != nil {
				log.Printf("Failed to seed book %s: %v", b.ISBN, err)
			}
		}
	}

	if _, err := cdRepo.FindByID("CD-1"); err != nil {
		cd := models.CD{Title: "Abbey Road", Artist: "The Beatles", DiscID: "CD-1"}
		if err := cdRepo.Add(&cd); err != nil {
			log.Printf("Failed to seed CD: %v", err)
		}
	}

	seedUsers := []models.User{
		{UserID: "u1", Name: "Alice", Email: "alice@example.com"},
		{UserID: "u2", Name: "Bob", Email: "bob@example.com"},
	}
	for _, u := range seedUsers {
		if _, err := userRepo.FindByID(u.UserID); err != nil {
			user := u
			if err := userRepo.Add(&user); err != nil {
				log.Printf("Failed to seed user %s: %v", u.UserID, err)
			}
		}
	}
	log.Println("Library test data seeded")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
