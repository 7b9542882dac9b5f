// Package identity resolves bearer credentials to the owner identity that
// scopes every record operation.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultVerifyTimeout bounds a single identity-provider lookup.
const DefaultVerifyTimeout = 5 * time.Second

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	errDeadlineExceeded      = errors.New("deadline exceeded")
	errInvalidToken          = errors.New("invalid token")
	errProviderNotConfigured = errors.New("identity provider not configured")
)

// Identity is the owner reference attached to records: the user's email.
type Identity string

func (i Identity) String() string {
	return string(i)
}

// User is what an identity provider resolves a token to.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider resolves an access token to a user.
type Provider interface {
	ResolveUser(ctx context.Context, token string) (*User, error)
}

// Verifier turns the raw Authorization header value into an Identity.
type Verifier interface {
	Verify(ctx context.Context, authorization string) (Identity, error)
}

// BypassVerifier accepts every request as the same sentinel identity.
// Only for non-production use.
type BypassVerifier struct {
	identity Identity
}

func NewBypassVerifier(identity string) *BypassVerifier {
	return &BypassVerifier{identity: Identity(strings.TrimSpace(identity))}
}

func (v *BypassVerifier) Verify(_ context.Context, _ string) (Identity, error) {
	return v.identity, nil
}

// ProviderVerifier checks the bearer token against an identity provider,
// giving up once the timeout elapses.
type ProviderVerifier struct {
	provider Provider
	timeout  time.Duration
}

func NewProviderVerifier(provider Provider, timeout time.Duration) *ProviderVerifier {
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	return &ProviderVerifier{
		provider: provider,
		timeout:  timeout,
	}
}

type lookupResult struct {
	user *User
	err  error
}

func (v *ProviderVerifier) Verify(ctx context.Context, authorization string) (Identity, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return "", ErrUnauthenticated
	}
	if v.provider == nil {
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, errProviderNotConfigured)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	// buffered so the goroutine never blocks after the deadline wins
	done := make(chan lookupResult, 1)
	go func() {
		user, err := v.provider.ResolveUser(lookupCtx, token)
		done <- lookupResult{user: user, err: err}
	}()

	select {
	case <-lookupCtx.Done():
		if errors.Is(lookupCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, errDeadlineExceeded)
		}
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, lookupCtx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("%w: %v: %v", ErrAuthenticationFailed, errInvalidToken, res.err)
		}
		if res.user == nil || strings.TrimSpace(res.user.Email) == "" {
			return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, errInvalidToken)
		}
		return Identity(strings.TrimSpace(res.user.Email)), nil
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(authorization string) (string, bool) {
	authorization = strings.TrimSpace(authorization)
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
