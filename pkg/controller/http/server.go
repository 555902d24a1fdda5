package http

import (
	"net/http"

	"github.com/glockstar/fanpage/pkg/domain/model/site"
	"github.com/go-chi/chi/v5"
)

// Server represents the HTTP server
type Server struct {
	router       *chi.Mux
	redditCtrl   *RedditController
	memoriesCtrl *MemoriesController
	contactCtrl  *ContactController
	siteInfo     *site.Site
	staticDir    string
	sessionOpts  []SessionOption
}

// Options is a functional option for Server
type Options func(*Server)

// WithRedditController sets the Reddit integration controller
func WithRedditController(ctrl *RedditController) Options {
	return func(s *Server) {
		s.redditCtrl = ctrl
	}
}

// WithMemoriesController sets the memories gallery controller
func WithMemoriesController(ctrl *MemoriesController) Options {
	return func(s *Server) {
		s.memoriesCtrl = ctrl
	}
}

// WithContactController sets the contact form controller
func WithContactController(ctrl *ContactController) Options {
	return func(s *Server) {
		s.contactCtrl = ctrl
	}
}

// WithSiteInfo sets the site metadata served at /api/site
func WithSiteInfo(info *site.Site) Options {
	return func(s *Server) {
		s.siteInfo = info
	}
}

// WithStaticDir serves static files from the given directory
func WithStaticDir(dir string) Options {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithSessionOptions configures the session cookie middleware
func WithSessionOptions(opts ...SessionOption) Options {
	return func(s *Server) {
		s.sessionOpts = opts
	}
}

// New creates a new HTTP server
func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Apply middleware
	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)
	r.Use(sessionMiddleware(s.sessionOpts...))

	if s.redditCtrl != nil {
		r.Route("/api/reddit", func(r chi.Router) {
			r.Get("/auth-url", s.redditCtrl.HandleAuthURL)
			r.Get("/user", s.redditCtrl.HandleUser)
			r.Get("/posts/{subreddit}", s.redditCtrl.HandlePosts)
			r.Post("/submit", s.redditCtrl.HandleSubmit)
			r.Post("/logout", s.redditCtrl.HandleLogout)
		})
		// The provider redirects the browser here after authorization.
		r.Get("/reddit-callback", s.redditCtrl.HandleCallback)
	}

	if s.memoriesCtrl != nil {
		r.Route("/api/memories", func(r chi.Router) {
			r.Get("/", s.memoriesCtrl.HandleList)
			r.Post("/", s.memoriesCtrl.HandleCreate)
		})
		r.Get("/images/*", s.memoriesCtrl.HandleImage)
	}

	if s.contactCtrl != nil {
		r.Post("/api/contact", s.contactCtrl.HandleSubmit)
	}

	if s.siteInfo != nil {
		r.Get("/api/site", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(r.Context(), w, http.StatusOK, s.siteInfo)
		})
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
