package reddit

import (
	"net/url"
	"strings"
)

// PostKind is the provider-defined post type discriminator.
type PostKind string

const (
	PostKindSelf PostKind = "self"
	PostKindLink PostKind = "link"
)

// Submission describes one post to be created on a subreddit. Exactly one of
// Content/URL is used depending on Kind.
type Submission struct {
	Subreddit string
	Title     string
	Kind      PostKind
	Content   string
	URL       string
}

// Validate checks required fields and the kind/payload combination. Any
// invalid combination must be rejected before a network call is made.
func (s *Submission) Validate() error {
	s.Subreddit = strings.TrimSpace(s.Subreddit)
	if s.Subreddit == "" || s.Title == "" {
		return ErrInvalidSubmission
	}

	switch s.Kind {
	case PostKindSelf:
		if s.Content == "" {
			return ErrInvalidSubmission
		}
	case PostKindLink:
		if s.URL == "" {
			return ErrInvalidSubmission
		}
	default:
		return ErrInvalidSubmission
	}

	return nil
}

// FormValues builds the provider submission payload.
func (s *Submission) FormValues() url.Values {
	values := url.Values{
		"sr":    {s.Subreddit},
		"title": {s.Title},
		"kind":  {string(s.Kind)},
	}

	switch s.Kind {
	case PostKindSelf:
		values.Set("text", s.Content)
	case PostKindLink:
		values.Set("url", s.URL)
	}

	return values
}
