// Package mocks provides mock implementations of the envelope use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// MockSealUseCase is a mock implementation of SealUseCase for testing.
type MockSealUseCase struct {
	mock.Mock
}

// Seal mocks the Seal method of SealUseCase.
func (m *MockSealUseCase) Seal(
	ctx context.Context,
	input envelopeDomain.SealInput,
) (*envelopeDomain.SealedRequest, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.SealedRequest), args.Error(1)
}

// MockVerifyUseCase is a mock implementation of VerifyUseCase for testing.
type MockVerifyUseCase struct {
	mock.Mock
}

// Open mocks the Open method of VerifyUseCase.
func (m *MockVerifyUseCase) Open(
	ctx context.Context,
	input envelopeDomain.OpenInput,
) (*envelopeDomain.OpenedRequest, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.OpenedRequest), args.Error(1)
}
