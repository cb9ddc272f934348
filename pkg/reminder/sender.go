package reminder

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/google/uuid"

	"github.com/LibrarySystemTeam/Softwareproject/pkg/circuitbreaker"
	"github.com/LibrarySystemTeam/Softwareproject/pkg/queue"
)

const maxSendAttempts = 5

// EmailSender delivers reminders over SMTP. A circuit breaker guards the
// mail server; failed messages are parked on a retry queue and re-attempted
// by Flush.
type EmailSender struct {
	host     string
	port     string
	from     string
	password string
	breaker  *circuitbreaker.CircuitBreaker
	pending  *queue.Queue
}

func NewEmailSender(host, port, from, password string) *EmailSender {
	return &EmailSender{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		breaker:  circuitbreaker.NewCircuitBreaker(3, 30*time.Second),
		pending:  queue.NewQueue(),
	}
}

func (e *EmailSender) Send(email, message string) error {
	err := e.breaker.Execute(func() error {
		return e.deliver(email, message)
	}, nil)
	if err != nil {
		e.park(email, message, 0)
	}
	return err
}

// Flush retries every parked notification whose retry time has arrived.
func (e *EmailSender) Flush() {
	for {
		item := e.pending.Dequeue()
		if item == nil {
			return
		}
		err := e.breaker.Execute(func() error {
			return e.deliver(item.Email, item.Body)
		}, nil)
		if err == nil {
			log.Printf("Retried reminder delivered to %s", item.Email)
			continue
		}
		if item.RetryCount+1 >= item.MaxRetries {
			log.Printf("Dropping reminder for %s after %d attempts: %v", item.Email, item.RetryCount+1, err)
			continue
		}
		e.park(item.Email, item.Body, item.RetryCount+1)
	}
}

// Pending returns the number of parked notifications.
func (e *EmailSender) Pending() int {
	return e.pending.Size()
}

func (e *EmailSender) park(email, body string, retryCount int) {
	e.pending.Enqueue(&queue.PendingNotification{
		ID:         uuid.New().String(),
		Email:      email,
		Body:       body,
		RetryAt:    time.Now().Add(30 * time.Second * time.Duration(retryCount+1)),
		RetryCount: retryCount,
		MaxRetries: maxSendAttempts,
	})
}

func (e *EmailSender) deliver(email, message string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Library Notification\r\n\r\n%s",
		e.from, email, message))
	auth := smtp.PlainAuth("", e.from, e.password, e.host)
	return smtp.SendMail(e.host+":"+e.port, auth, e.from, []string{email}, msg)
}
