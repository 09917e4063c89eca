package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// Durable store keys for the persisted session.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserEmail    = "user_email"
)

var validate = validator.New()

// Store is the durable key-value collaborator that mirrors the token cache
// across restarts. Logout writes empty strings rather than deleting keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Authenticator is the slice of the API client the gateway drives.
type Authenticator interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	RefreshTokens(ctx context.Context, req api.RefreshRequest) (*api.RefreshResponse, error)
	ChangePassword(ctx context.Context, access string, req api.ChangePasswordRequest) error
}

// Gateway owns the access/refresh token pair and is the single chokepoint
// through which every authenticated call obtains a bearer credential. It is
// constructed once per process and passed explicitly to the repositories.
type Gateway struct {
	authn Authenticator
	store Store

	mu     sync.Mutex
	cached *domain.TokenPair
}

// NewGateway creates a gateway over the given API client slice and durable store.
func NewGateway(authn Authenticator, store Store) *Gateway {
	return &Gateway{authn: authn, store: store}
}

// Tokens returns the cached token pair, loading it from the durable store on a
// cold cache. It fails with ErrUnauthenticated when no pair is stored.
func (g *Gateway) Tokens(ctx context.Context) (domain.TokenPair, error) {
	g.mu.Lock()
	if g.cached != nil {
		pair := *g.cached
		g.mu.Unlock()
		return pair, nil
	}
	g.mu.Unlock()

	log.Debug().Msg("token cache cold, reading durable store")
	access, err := g.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to read token store: %w", err)
	}
	refresh, err := g.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to read token store: %w", err)
	}

	pair := domain.TokenPair{Access: access, Refresh: refresh}
	if pair.Empty() {
		return domain.TokenPair{}, domain.ErrUnauthenticated
	}

	g.mu.Lock()
	g.cached = &pair
	g.mu.Unlock()
	return pair, nil
}

// Refresh exchanges the current refresh credential for a new pair. Any
// rejection is terminal: the caller sees ErrUnauthenticated and must force a
// full re-login.
func (g *Gateway) Refresh(ctx context.Context) (domain.TokenPair, error) {
	tokens, err := g.Tokens(ctx)
	if err != nil {
		return domain.TokenPair{}, err
	}

	log.Debug().Msg("refreshing token pair")
	resp, err := g.authn.RefreshTokens(ctx, api.RefreshRequest{Refresh: tokens.Refresh})
	if err != nil {
		if domain.IsCancel(err) {
			return domain.TokenPair{}, err
		}
		log.Warn().Err(err).Msg("token refresh rejected")
		return domain.TokenPair{}, fmt.Errorf("%w: token refresh failed: %v", domain.ErrUnauthenticated, err)
	}

	pair := domain.TokenPair{Access: resp.Access, Refresh: resp.Refresh}
	g.setTokens(ctx, pair, "")
	return pair, nil
}

// Login exchanges credentials for a token pair and persists it.
func (g *Gateway) Login(ctx context.Context, email, password string) error {
	input := domain.UserLogin{Email: email, Password: password}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	resp, err := g.authn.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		if api.IsStatus(err, http.StatusBadRequest) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		return err
	}

	log.Debug().Str("email", email).Msg("logged in")
	g.setTokens(ctx, domain.TokenPair{Access: resp.Access, Refresh: resp.Refresh}, email)
	return nil
}

// SignUp creates an account and persists the resulting token pair.
func (g *Gateway) SignUp(ctx context.Context, email, password string) error {
	input := domain.UserCreate{Email: email, Password: password}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	resp, err := g.authn.Register(ctx, api.RegisterRequest{Email: email, Password: password})
	if err != nil {
		if api.IsStatus(err, http.StatusBadRequest) {
			return fmt.Errorf("%w: %v", domain.ErrUserExists, err)
		}
		return err
	}

	log.Debug().Str("email", email).Msg("signed up")
	g.setTokens(ctx, domain.TokenPair{Access: resp.Access, Refresh: resp.Refresh}, email)
	return nil
}

// ChangePassword changes the account password through the retry protocol.
func (g *Gateway) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	input := domain.PasswordChange{OldPassword: oldPassword, NewPassword: newPassword}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return g.WithAuth(ctx, func(ctx context.Context, access string) error {
		return g.authn.ChangePassword(ctx, access, api.ChangePasswordRequest{
			OldPassword: oldPassword,
			NewPassword: newPassword,
		})
	})
}

// Logout clears the cached pair and writes tombstones to the durable store.
// It never fails; store errors are only logged.
func (g *Gateway) Logout(ctx context.Context) {
	log.Debug().Msg("logging out")
	g.mu.Lock()
	g.cached = nil
	g.mu.Unlock()

	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUserEmail} {
		if err := g.store.Set(ctx, key, ""); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to clear stored session")
		}
	}
}

// Email returns the stored account email, empty when logged out.
func (g *Gateway) Email(ctx context.Context) (string, error) {
	return g.store.Get(ctx, KeyUserEmail)
}

// WithAuth runs action with a valid access credential. On an unauthorized
// signal it refreshes and retries exactly once; the retried flag bounds the
// loop, so a second 401 (or any other failure) propagates to the caller.
// Non-authorization failures never trigger a refresh.
func (g *Gateway) WithAuth(ctx context.Context, action func(ctx context.Context, access string) error) error {
	tokens, err := g.Tokens(ctx)
	if err != nil {
		return err
	}

	retried := false
	for {
		err = action(ctx, tokens.Access)
		if err == nil || !api.IsUnauthorized(err) || retried {
			return err
		}
		retried = true

		tokens, err = g.Refresh(ctx)
		if err != nil {
			return err
		}
	}
}

// Do runs a result-returning action under the WithAuth retry protocol.
func Do[T any](ctx context.Context, g *Gateway, action func(ctx context.Context, access string) (T, error)) (T, error) {
	var out T
	err := g.WithAuth(ctx, func(ctx context.Context, access string) error {
		v, err := action(ctx, access)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// setTokens replaces the cached pair whole and mirrors it into the durable
// store. The in-memory cache is authoritative; mirror failures are logged and
// otherwise ignored.
func (g *Gateway) setTokens(ctx context.Context, pair domain.TokenPair, email string) {
	g.mu.Lock()
	g.cached = &pair
	g.mu.Unlock()

	entries := map[string]string{
		KeyAccessToken:  pair.Access,
		KeyRefreshToken: pair.Refresh,
	}
	if email != "" {
		entries[KeyUserEmail] = email
	}
	for key, value := range entries {
		if err := g.store.Set(ctx, key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to mirror session to store")
		}
	}
}
