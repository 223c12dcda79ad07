package models

// TokenSet holds the credentials issued together with a User.
// ExpiresIn is kept exactly as the server sends it and is not enforced.
type TokenSet struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// Session pairs a user with its tokens. The zero value is an inactive session.
type Session struct {
	User   *User     `json:"user"`
	Tokens *TokenSet `json:"tokens"`
}

// Active reports whether both halves of the session are present.
func (s Session) Active() bool {
	return s.User != nil && s.Tokens != nil
}

// AccessToken returns the bearer credential, or "" when inactive.
func (s Session) AccessToken() string {
	if s.Tokens == nil {
		return ""
	}
	return s.Tokens.AccessToken
}
