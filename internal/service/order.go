package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"procurement-service/internal/model"
	"procurement-service/pkg/apperrors"
	appmetrics "procurement-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MinOrderYear = 2000
	MaxOrderYear = 3000
)

// OrderCount is the number of orders created in a calendar year
type OrderCount struct {
	Count   int64  `json:"count"`
	Year    int    `json:"year"`
	Message string `json:"message"`
}

// OrderService reads and updates order status
type OrderService struct {
	db           *gorm.DB
	statuses     StatusProvider
	strictStatus bool
	log          *zap.Logger
	metrics      *appmetrics.Metrics
}

// NewOrderService creates the service. With strictStatus set, UpdateStatus only
// accepts values from statuses; otherwise any non-empty status is stored.
func NewOrderService(db *gorm.DB, statuses StatusProvider, strictStatus bool, log *zap.Logger, metrics *appmetrics.Metrics) *OrderService {
	return &OrderService{
		db:           db,
		statuses:     statuses,
		strictStatus: strictStatus,
		log:          log,
		metrics:      metrics,
	}
}

// UpdateStatus sets the status of an order and returns the updated row
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, newStatus string) (order *model.Order, err error) {
	defer func() { s.metrics.RecordOperation("order", "update_status", err) }()

	newStatus = strings.TrimSpace(newStatus)
	if newStatus == "" {
		return nil, apperrors.Validation("Status is required")
	}
	if s.strictStatus && !slices.Contains(s.statuses.GetOrderStatuses(ctx), newStatus) {
		return nil, apperrors.Validation(fmt.Sprintf("Unknown order status %q", newStatus))
	}

	db := s.db.WithContext(ctx)
	order = &model.Order{}
	if err := db.First(order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal("Failed to update order status", err)
	}

	previous := order.Status
	now := time.Now()

	defer s.metrics.TrackDBOperation("update")(time.Now())
	err = db.Model(order).Updates(map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to update order status", err)
	}
	order.Status = newStatus
	order.UpdatedAt = now

	s.log.Info("Order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("from", previous),
		zap.String("to", newStatus))
	return order, nil
}

// CountOrders counts orders created in year (UTC). On a database failure the
// returned count is zero and the error is internal; callers still get the year.
func (s *OrderService) CountOrders(ctx context.Context, year int) (result OrderCount, err error) {
	defer func() { s.metrics.RecordOperation("order", "count", err) }()

	result.Year = year
	if year < MinOrderYear || year > MaxOrderYear {
		return result, apperrors.Validation(fmt.Sprintf("Year must be between %d and %d", MinOrderYear, MaxOrderYear))
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	defer s.metrics.TrackDBOperation("count")(time.Now())
	err = s.db.WithContext(ctx).Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&result.Count).Error
	if err != nil {
		s.log.Error("Failed to count orders", zap.Int("year", year), zap.Error(err))
		result.Count = 0
		return result, apperrors.Internal("Failed to count orders", err)
	}

	result.Message = fmt.Sprintf("%d orders created in %d", result.Count, year)
	return result, nil
}
