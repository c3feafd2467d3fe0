package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/service"
	"rentby-escrow/internal/utils"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRental(ctx context.Context, renter domain.Identity, req service.CreateRentalRequest) (*domain.RentalView, error) {
	args := m.Called(ctx, renter, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalView), args.Error(1)
}

func (m *MockRentalService) CompleteRental(ctx context.Context, caller, rental, ownerTokenAccount domain.Identity) (*domain.RentalView, error) {
	args := m.Called(ctx, caller, rental, ownerTokenAccount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalView), args.Error(1)
}

func (m *MockRentalService) DisputeRental(ctx context.Context, caller, rental domain.Identity) (*domain.RentalView, error) {
	args := m.Called(ctx, caller, rental)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalView), args.Error(1)
}

func (m *MockRentalService) ResolveDispute(ctx context.Context, caller, rental domain.Identity, refundToRenter bool, renterTokenAccount, ownerTokenAccount domain.Identity) (*domain.RentalView, error) {
	args := m.Called(ctx, caller, rental, refundToRenter, renterTokenAccount, ownerTokenAccount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalView), args.Error(1)
}

func (m *MockRentalService) GetRental(ctx context.Context, rental domain.Identity) (*domain.RentalView, error) {
	args := m.Called(ctx, rental)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalView), args.Error(1)
}

func (m *MockRentalService) ListRentals(ctx context.Context, party domain.Identity) ([]domain.RentalView, error) {
	args := m.Called(ctx, party)
	return args.Get(0).([]domain.RentalView), args.Error(1)
}

type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) CreateResource(ctx context.Context, owner domain.Identity, req service.CreateResourceRequest) (*domain.ResourceView, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceView), args.Error(1)
}

func (m *MockResourceService) GetResource(ctx context.Context, resource domain.Identity) (*domain.ResourceView, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceView), args.Error(1)
}

func (m *MockResourceService) GetResourceByMint(ctx context.Context, mint domain.Identity) (*domain.ResourceView, error) {
	args := m.Called(ctx, mint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceView), args.Error(1)
}

func (m *MockResourceService) ListResources(ctx context.Context, owner domain.Identity) ([]domain.ResourceView, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]domain.ResourceView), args.Error(1)
}

func (m *MockResourceService) QuoteEscrow(ctx context.Context, mint domain.Identity, durationSeconds int64) (*utils.EscrowQuote, error) {
	args := m.Called(ctx, mint, durationSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.EscrowQuote), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) OpenAccount(ctx context.Context, owner, mint domain.Identity) (*domain.TokenAccount, error) {
	args := m.Called(ctx, owner, mint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenAccount), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, addr domain.Identity) (*domain.TokenAccount, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenAccount), args.Error(1)
}

func (m *MockLedgerService) ListTransfers(ctx context.Context, addr domain.Identity, limit int32) ([]domain.TokenTransfer, error) {
	args := m.Called(ctx, addr, limit)
	return args.Get(0).([]domain.TokenTransfer), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, caller, from, to domain.Identity, amount uint64) error {
	args := m.Called(ctx, caller, from, to, amount)
	return args.Error(0)
}

func (m *MockLedgerService) Faucet(ctx context.Context, addr domain.Identity, amount uint64) (*domain.TokenAccount, error) {
	args := m.Called(ctx, addr, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenAccount), args.Error(1)
}

func (m *MockLedgerService) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
