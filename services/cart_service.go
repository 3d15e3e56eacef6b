package services

import (
	"context"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/events"
	"github.com/EkeneDeProgram/909ineFoods/models"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService manages the caller's cart and converts it into orders.
type CartService interface {
	AddItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartEntry, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartEntry, error)
	List(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResult, error)
}

const (
	msgMenuItemNotFound = "Menu item not found"
	msgCartItemNotFound = "Item not found in cart"
	msgQuantityTooLow   = "Quantity must be at least 1"
)

type cartServiceImpl struct {
	cart      repository.CartRepository
	items     repository.MenuItemRepository
	publisher events.Publisher
	metrics   aws_pkg.CountRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewCartService creates a new CartService. publisher and metrics may be nil.
func NewCartService(
	cart repository.CartRepository,
	items repository.MenuItemRepository,
	publisher events.Publisher,
	metrics aws_pkg.CountRecorder,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		cart:      cart,
		items:     items,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// AddItem puts one unit of the item in the cart, or adds one to the
// existing entry.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartEntry, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, storeErr(err, msgMenuItemNotFound)
	}
	entry, err := s.cart.AddOrIncrement(ctx, userID, item.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	entry.MenuItem = item
	return entry, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity < 1 {
		return nil, apperrors.Validation(msgQuantityTooLow)
	}
	entry, err := s.cart.SetQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return nil, storeErr(err, msgCartItemNotFound)
	}
	return entry, nil
}

func (s *cartServiceImpl) List(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {
	entries, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	total := decimal.Zero
	for _, e := range entries {
		if e.MenuItem != nil {
			total = total.Add(e.MenuItem.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
		}
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}
	return &models.CartSummary{Items: entries, Total: total}, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.cart.DeleteItem(ctx, userID, itemID); err != nil {
		return storeErr(err, msgCartItemNotFound)
	}
	return nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.cart.DeleteAll(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Checkout converts the whole cart into paid, undelivered orders in one
// transaction. An empty cart yields zero orders. Event and metric failures
// after commit are logged only.
func (s *cartServiceImpl) Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResult, error) {
	orderedAt := s.now().UTC()
	orders, err := s.cart.Checkout(ctx, userID, orderedAt)
	if err != nil {
		return nil, storeErr(err, msgMenuItemNotFound)
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Subtotal())
	}
	result := &models.CheckoutResult{Orders: orders, Total: total}
	if len(orders) == 0 {
		return result, nil
	}

	s.logger.Info("Orders placed",
		zap.String("user_id", userID.String()),
		zap.Int("orders", len(orders)),
		zap.String("total", total.StringFixed(2)),
	)

	s.publishOrdersPlaced(ctx, userID, orders, total, orderedAt)

	dims := map[string]string{"service": "cart"}
	recordCount(ctx, s.metrics, aws_pkg.MetricCartCheckouts, dims, s.logger)
	recordValue(ctx, s.metrics, aws_pkg.MetricOrdersCreated, float64(len(orders)), dims, s.logger)
	recordValue(ctx, s.metrics, aws_pkg.MetricCheckoutValue, total.InexactFloat64(), dims, s.logger)

	return result, nil
}

// publishOrdersPlaced emits the orders.placed event (non-fatal on error).
func (s *cartServiceImpl) publishOrdersPlaced(ctx context.Context, userID uuid.UUID, orders []models.Order, total decimal.Decimal, at time.Time) {
	if s.publisher == nil {
		s.logger.Warn("Event bus not configured, skipping event publish")
		return
	}

	lines := make([]models.PlacedOrderLine, 0, len(orders))
	for _, o := range orders {
		lines = append(lines, models.PlacedOrderLine{
			OrderID:  o.ID.String(),
			ItemID:   o.MenuItemID.String(),
			Quantity: o.Quantity,
			Price:    o.Price,
		})
	}
	event := models.OrdersPlacedEvent{
		EventType: models.EventOrdersPlaced,
		UserID:    userID.String(),
		Orders:    lines,
		Total:     total,
		Timestamp: at,
	}

	if err := s.publisher.Publish(ctx, userID.String(), event); err != nil {
		s.logger.Error("Failed to publish event", zap.String("event", models.EventOrdersPlaced), zap.Error(err))
		return
	}
	s.logger.Info("Published event", zap.String("event", models.EventOrdersPlaced))
}
