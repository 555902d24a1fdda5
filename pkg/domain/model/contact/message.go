package contact

import (
	"errors"
	"strings"
)

var ErrIncompleteMessage = errors.New("all contact fields are required")

// Message is one contact-form submission. Messages are logged, not stored.
type Message struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Body       string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// Validate checks that all required fields are filled.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)

	if m.Name == "" || m.Email == "" || m.Subject == "" || m.Body == "" {
		return ErrIncompleteMessage
	}
	return nil
}
