package ports

import "context"

// AuthService implements signup and signin. Both return a signed bearer
// token on success; neither ever reveals whether an email is registered.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (token string, err error)
	Signin(ctx context.Context, email, password string) (token string, err error)
}

// TokenIssuer produces signed, time-limited bearer tokens for a user identity.
type TokenIssuer interface {
	IssueToken(userID int64, email string) (string, error)
}
