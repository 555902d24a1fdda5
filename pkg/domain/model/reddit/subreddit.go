package reddit

import "strings"

// DefaultListingLimit is the number of posts fetched when no limit is given.
const DefaultListingLimit = 10

// NormalizeSubreddit trims and lowercases a subreddit name and rejects
// anything that is not nonempty ASCII alphanumeric. The filter is stricter
// than the provider's own rules: underscores and hyphens are rejected.
func NormalizeSubreddit(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", ErrInvalidSubreddit
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return "", ErrInvalidSubreddit
		}
	}
	return name, nil
}
