package usecase

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetSubcategories(ctx context.Context, parentID string) ([]response.CategoryResponse, error)

	GetServices(ctx context.Context, req *request.ServiceListRequest) ([]response.ServiceResponse, error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	GetServicePrice(ctx context.Context, serviceID string) (*response.ServicePriceResponse, error)
}

type catalogService struct {
	repo    *repository.Repository
	prices  pricing.PriceLookup
	siteURL string
	log     *zap.Logger
}

func NewCatalogService(repo *repository.Repository, prices pricing.PriceLookup, config *utils.Config, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:    repo,
		prices:  prices,
		siteURL: config.App.SiteURL,
		log:     log.With(zap.String("service", "catalog")),
	}
}

// GetCategories lists the enabled top level categories.
func (s *catalogService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindGroups(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return s.categoriesToResponse(categories), nil
}

// GetSubcategories lists the enabled subcategories of parentID.
func (s *catalogService) GetSubcategories(ctx context.Context, parentID string) ([]response.CategoryResponse, error) {
	id, err := uuid.Parse(parentID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID format %s: %w", parentID, err)
	}

	categories, err := s.repo.Category.FindByParent(ctx, id)
	if err != nil {
		s.log.Error("Failed to list subcategories",
			zap.Error(err),
			zap.String("parent_id", parentID),
		)
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	return s.categoriesToResponse(categories), nil
}

func (s *catalogService) categoriesToResponse(categories []*entity.Category) []response.CategoryResponse {
	result := make([]response.CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = response.CategoryToResponse(c, s.siteURL)
	}
	return result
}

func (s *catalogService) GetServices(ctx context.Context, req *request.ServiceListRequest) ([]response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List services validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.ServiceFilter{Search: req.Search}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID format %s: %w", req.CategoryID, err)
		}
		filter.CategoryID = &id
	}
	if req.SubcategoryID != "" {
		id, err := uuid.Parse(req.SubcategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid subcategory ID format %s: %w", req.SubcategoryID, err)
		}
		filter.SubcategoryID = &id
	}

	services, err := s.repo.Service.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}

	result := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		result[i] = response.ServiceToResponse(svc, s.siteURL)
	}

	return result, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get service", zap.Error(err), zap.String("service_id", serviceID))
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	resp := response.ServiceToResponse(svc, s.siteURL)
	return &resp, nil
}

// GetServicePrice answers the price lookup used when a row's service is chosen.
func (s *catalogService) GetServicePrice(ctx context.Context, serviceID string) (*response.ServicePriceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	price, found, err := s.prices.ServicePrice(ctx, id)
	if err != nil {
		s.log.Error("Failed to look up service price",
			zap.Error(err),
			zap.String("service_id", serviceID),
		)
		return nil, fmt.Errorf("get service price: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	return &response.ServicePriceResponse{
		ServiceID: id.String(),
		Price:     price,
	}, nil
}
