package service

import (
	"context"
	"fmt"
	"time"

	"rentby-escrow/internal/authority"
	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/records"
	"rentby-escrow/internal/repository"
	"rentby-escrow/internal/utils"
)

type resourceService struct {
	store repository.Store
	now   func() time.Time
}

func NewResourceService(store repository.Store, now func() time.Time) ResourceService {
	if now == nil {
		now = time.Now
	}
	return &resourceService{store: store, now: now}
}

func (s *resourceService) CreateResource(ctx context.Context, owner domain.Identity, req CreateResourceRequest) (*domain.ResourceView, error) {
	logger.EnterMethod("resourceService.CreateResource", "owner", owner, "mint", req.Mint, "type", req.ResourceType)

	if len(req.ResourceType) > domain.MaxResourceTypeLen {
		err := fmt.Errorf("%w: resource type is %d bytes, max %d", domain.ErrFieldTooLong, len(req.ResourceType), domain.MaxResourceTypeLen)
		logger.ExitMethodWithError("resourceService.CreateResource", err, "owner", owner)
		return nil, err
	}
	if len(req.Specs) > domain.MaxResourceSpecsLen {
		err := fmt.Errorf("%w: specs are %d bytes, max %d", domain.ErrFieldTooLong, len(req.Specs), domain.MaxResourceSpecsLen)
		logger.ExitMethodWithError("resourceService.CreateResource", err, "owner", owner)
		return nil, err
	}

	addr, nonce, err := authority.ResourceAddress(req.Mint)
	if err != nil {
		logger.ExitMethodWithError("resourceService.CreateResource", err, "owner", owner)
		return nil, err
	}
	resource := &domain.Resource{
		Owner:        owner,
		Mint:         req.Mint,
		ResourceType: req.ResourceType,
		Specs:        req.Specs,
		HourlyRate:   req.HourlyRate,
		CreatedAt:    s.now().Unix(),
		Nonce:        nonce,
	}

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		return records.AllocateResource(ctx, tx.Records(), addr, resource)
	})
	if err != nil {
		logger.ExitMethodWithError("resourceService.CreateResource", err, "owner", owner, "resource", addr)
		return nil, err
	}

	logger.Info("Resource created", "resource", addr, "mint", req.Mint, "owner", owner)
	logger.ExitMethod("resourceService.CreateResource", "resource", addr)
	return &domain.ResourceView{Address: addr, Resource: *resource}, nil
}

func (s *resourceService) GetResource(ctx context.Context, addr domain.Identity) (*domain.ResourceView, error) {
	resource, err := records.LoadResource(ctx, s.store.Records(), addr)
	if err != nil {
		return nil, err
	}
	return &domain.ResourceView{Address: addr, Resource: *resource}, nil
}

func (s *resourceService) GetResourceByMint(ctx context.Context, mint domain.Identity) (*domain.ResourceView, error) {
	addr, resource, err := records.LoadResourceByMint(ctx, s.store.Records(), mint)
	if err != nil {
		return nil, err
	}
	return &domain.ResourceView{Address: addr, Resource: *resource}, nil
}

func (s *resourceService) ListResources(ctx context.Context, owner domain.Identity) ([]domain.ResourceView, error) {
	logger.EnterMethod("resourceService.ListResources", "owner", owner)
	all, err := records.ListResources(ctx, s.store.Records())
	if err != nil {
		logger.ExitMethodWithError("resourceService.ListResources", err, "owner", owner)
		return nil, err
	}
	if owner.IsZero() {
		logger.ExitMethod("resourceService.ListResources", "count", len(all))
		return all, nil
	}
	views := make([]domain.ResourceView, 0)
	for _, v := range all {
		if v.Owner == owner {
			views = append(views, v)
		}
	}
	logger.ExitMethod("resourceService.ListResources", "owner", owner, "count", len(views))
	return views, nil
}

func (s *resourceService) QuoteEscrow(ctx context.Context, mint domain.Identity, durationSeconds int64) (*utils.EscrowQuote, error) {
	_, resource, err := records.LoadResourceByMint(ctx, s.store.Records(), mint)
	if err != nil {
		return nil, err
	}
	return utils.QuoteEscrow(resource, durationSeconds)
}
