package usecase

import (
	"context"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/contact"
	"github.com/m-mizutani/ctxlog"
)

// Contact handles contact-form submissions. Messages are logged for the site
// owner to follow up, not persisted.
type Contact struct{}

// NewContact creates the contact use case.
func NewContact() *Contact {
	return &Contact{}
}

// SubmitContact validates and records one contact message.
func (u *Contact) SubmitContact(ctx context.Context, msg *contact.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	ctxlog.From(ctx).Info("contact message received",
		"name", msg.Name,
		"email", msg.Email,
		"subject", msg.Subject,
		"newsletter", msg.Newsletter,
	)

	return nil
}

var _ interfaces.ContactUseCases = (*Contact)(nil)
