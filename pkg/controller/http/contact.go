package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/contact"
	"github.com/m-mizutani/ctxlog"
)

// ContactController receives contact-form submissions.
type ContactController struct {
	contact interfaces.ContactUseCases
}

func NewContactController(uc interfaces.ContactUseCases) *ContactController {
	return &ContactController{contact: uc}
}

type contactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Body       string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// HandleSubmit accepts a contact message as JSON or a classic form post.
func (c *ContactController) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msg, err := parseContactRequest(r)
	if err != nil {
		writeFailure(ctx, w, "invalid request body")
		return
	}

	if err := c.contact.SubmitContact(ctx, msg); err != nil {
		if errors.Is(err, contact.ErrIncompleteMessage) {
			writeFailure(ctx, w, err.Error())
			return
		}
		ctxlog.From(ctx).Error("failed to handle contact message", "error", err)
		writeFailure(ctx, w, "failed to send message")
		return
	}

	writeSuccess(ctx, w, nil)
}

func parseContactRequest(r *http.Request) (*contact.Message, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &contact.Message{
			Name:       req.Name,
			Email:      req.Email,
			Subject:    req.Subject,
			Body:       req.Body,
			Newsletter: req.Newsletter,
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &contact.Message{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Subject:    r.FormValue("subject"),
		Body:       r.FormValue("message"),
		Newsletter: r.FormValue("newsletter") == "on" || r.FormValue("newsletter") == "true",
	}, nil
}
