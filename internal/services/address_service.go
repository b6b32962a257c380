package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aronpal/accountd/internal/models"
)

// AddressRepository defines the interface for address data access
type AddressRepository interface {
	Create(ctx context.Context, addr *models.Address) (*models.Address, error)
	GetByID(ctx context.Context, id string) (*models.Address, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Address, error)
	ListAll(ctx context.Context) ([]*models.Address, error)
	Update(ctx context.Context, id string, addr *models.Address) (*models.Address, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

// AddressService enforces address ownership: non-admin callers only touch
// their own records, admins may act on any.
type AddressService struct {
	repo   AddressRepository
	logger *slog.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(repo AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		repo:   repo,
		logger: logger,
	}
}

// CreateAddress creates an address. A non-admin caller always becomes the
// owner; an admin may create on behalf of another user.
func (s *AddressService) CreateAddress(ctx context.Context, actor *models.TokenClaims, addr *models.Address) (*models.Address, error) {
	if actor == nil {
		return nil, models.ErrUnauthorized
	}

	if addr.UserID == "" || !actor.IsAdmin() {
		addr.UserID = actor.UserID
	}

	created, err := s.repo.Create(ctx, addr)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to create address", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("address created", slog.String("address_id", created.ID), slog.String("user_id", created.UserID))
	return created, nil
}

// ListAddresses lists addresses visible to the actor. Admins may filter by
// owner or see everything; non-admins always get their own.
func (s *AddressService) ListAddresses(ctx context.Context, actor *models.TokenClaims, filterUserID string) ([]*models.Address, error) {
	if actor == nil {
		return nil, models.ErrUnauthorized
	}

	if !actor.IsAdmin() {
		return s.listForUser(ctx, actor.UserID)
	}

	if filterUserID != "" {
		return s.listForUser(ctx, filterUserID)
	}

	addresses, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list addresses", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return addresses, nil
}

func (s *AddressService) listForUser(ctx context.Context, userID string) ([]*models.Address, error) {
	addresses, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list addresses for user", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return addresses, nil
}

// GetAddress retrieves a single address with an ownership check
func (s *AddressService) GetAddress(ctx context.Context, actor *models.TokenClaims, id string) (*models.Address, error) {
	if actor == nil {
		return nil, models.ErrUnauthorized
	}

	addr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get address", slog.String("address_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !actor.IsAdmin() && addr.UserID != actor.UserID {
		return nil, models.ErrForbidden
	}

	return addr, nil
}

// UpdateAddress updates an address's postal fields with an ownership check.
// The owner never changes.
func (s *AddressService) UpdateAddress(ctx context.Context, actor *models.TokenClaims, id string, fields *models.Address) (*models.Address, error) {
	if _, err := s.GetAddress(ctx, actor, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update address", slog.String("address_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("address updated", slog.String("address_id", id))
	return updated, nil
}

// HasAddress reports whether the user owns at least one address
func (s *AddressService) HasAddress(ctx context.Context, userID string) (bool, error) {
	exists, err := s.repo.ExistsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check address existence", slog.String("user_id", userID), slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	return exists, nil
}
