package services

import (
	"context"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService reads the caller's order ledger.
type OrderService interface {
	List(ctx context.Context, userID uuid.UUID, vendorID *uuid.UUID, page, limit int) ([]models.Order, models.Pagination, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	UpdateQuantity(ctx context.Context, userID, orderID uuid.UUID, quantity int) (*models.Order, error)
}

const msgOrderNotFound = "Order not found"

type orderServiceImpl struct {
	repo   repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{repo: repo, logger: logger}
}

// List pages through the caller's orders. vendorID narrows the result to
// orders for that vendor's items.
func (s *orderServiceImpl) List(ctx context.Context, userID uuid.UUID, vendorID *uuid.UUID, page, limit int) ([]models.Order, models.Pagination, error) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.repo.FindByUser(ctx, repository.OrderFilter{
		UserID:   userID,
		VendorID: vendorID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, models.NewPagination(total, page, limit), nil
}

func (s *orderServiceImpl) Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, storeErr(err, msgOrderNotFound)
	}
	return order, nil
}

func (s *orderServiceImpl) UpdateQuantity(ctx context.Context, userID, orderID uuid.UUID, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, apperrors.Validation(msgQuantityTooLow)
	}
	order, err := s.repo.UpdateQuantity(ctx, orderID, userID, quantity)
	if err != nil {
		return nil, storeErr(err, msgOrderNotFound)
	}
	s.logger.Info("Order quantity updated",
		zap.String("order_id", orderID.String()),
		zap.Int("quantity", quantity),
	)
	return order, nil
}
