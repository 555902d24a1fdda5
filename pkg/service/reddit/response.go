package reddit

// TokenResponse represents the response from the provider's token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
	Error        string `json:"error,omitempty"`
}

// Account represents the identity endpoint response. Only the username is
// consumed; the rest of the payload is ignored.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
