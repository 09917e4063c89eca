package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taskbench/taskbench-go/internal/api"
)

// MockAuthenticator mocks the Authenticator interface
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RegisterResponse), args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResponse), args.Error(1)
}

func (m *MockAuthenticator) RefreshTokens(ctx context.Context, req api.RefreshRequest) (*api.RefreshResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RefreshResponse), args.Error(1)
}

func (m *MockAuthenticator) ChangePassword(ctx context.Context, access string, req api.ChangePasswordRequest) error {
	args := m.Called(ctx, access, req)
	return args.Error(0)
}

// MockStore mocks the durable Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
