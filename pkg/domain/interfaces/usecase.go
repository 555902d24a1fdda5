package interfaces

import (
	"context"
	"encoding/json"

	"github.com/glockstar/fanpage/pkg/domain/model/contact"
	"github.com/glockstar/fanpage/pkg/domain/model/memory"
	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/glockstar/fanpage/pkg/domain/types"
)

// RedditAuthUseCases covers the OAuth token lifecycle of one session.
type RedditAuthUseCases interface {
	// AuthorizationURL issues a fresh anti-CSRF state for the session and
	// returns the provider authorization URL embedding it.
	AuthorizationURL(ctx context.Context, id types.SessionID) (string, error)

	// HandleCallback consumes the pending state and exchanges the
	// authorization code for a token set.
	HandleCallback(ctx context.Context, id types.SessionID, code, state string) (*reddit.TokenSet, error)

	// RefreshToken performs one refresh grant. Failure clears the whole
	// token set from the session.
	RefreshToken(ctx context.Context, id types.SessionID) error

	// CurrentIdentity reports the display-facing authentication status,
	// attempting at most one refresh when the token is expired.
	CurrentIdentity(ctx context.Context, id types.SessionID) (*reddit.Identity, error)

	// Logout clears the reserved Reddit session keys and nothing else.
	Logout(ctx context.Context, id types.SessionID) error
}

// RedditPostUseCases covers the proxied provider operations.
type RedditPostUseCases interface {
	ListSubredditPosts(ctx context.Context, id types.SessionID, name string, limit int) (json.RawMessage, error)
	CreatePost(ctx context.Context, id types.SessionID, sub *reddit.Submission) (json.RawMessage, error)
}

// CreateMemoryInput is the input for creating a gallery memory.
type CreateMemoryInput struct {
	Title     string
	Text      string
	ImageName string
	ImageData []byte
}

// MemoryUseCases manages the memories gallery.
type MemoryUseCases interface {
	CreateMemory(ctx context.Context, input *CreateMemoryInput) (*memory.Memory, error)
	ListMemories(ctx context.Context, offset, limit int) ([]*memory.Memory, int, error)
	GetImage(ctx context.Context, key string) ([]byte, error)
}

// ContactUseCases handles contact-form submissions.
type ContactUseCases interface {
	SubmitContact(ctx context.Context, msg *contact.Message) error
}
