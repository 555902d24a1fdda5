package site

// Page is one navigation entry of the site.
type Page struct {
	Label string `yaml:"label" json:"label"`
	Path  string `yaml:"path" json:"path"`
}

// Site holds the static-ish site metadata served to the frontend.
type Site struct {
	Title            string `yaml:"title" json:"title"`
	Description      string `yaml:"description" json:"description"`
	DefaultSubreddit string `yaml:"default_subreddit" json:"default_subreddit"`
	Nav              []Page `yaml:"nav" json:"nav"`
}
