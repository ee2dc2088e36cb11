package email

import (
	"fmt"
	"net/smtp"
)

// Service sends plain-text order emails via SMTP.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{host: host, port: port, from: from}
}

// OrderLine is one line of an order summary.
type OrderLine struct {
	Name     string
	Quantity int
}

// SendOrderConfirmation sends the initial confirmation after an order is
// placed.
func (s *Service) SendOrderConfirmation(to, orderID string, total float64, lines []OrderLine) error {
	subject := fmt.Sprintf("Order confirmed (#%s)", shortID(orderID))
	return s.send(to, subject, buildConfirmationBody(orderID, total, lines))
}

// SendStatusUpdate tells the customer their order moved to a new status.
func (s *Service) SendStatusUpdate(to, orderID, status string) error {
	subject := fmt.Sprintf("Order #%s is now %s", shortID(orderID), status)
	return s.send(to, subject, buildStatusBody(orderID, status))
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

func shortID(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}
