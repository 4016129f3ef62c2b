package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"procurement-service/internal/model"
	appmetrics "procurement-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingOrderStatuses = "order_statuses"
	SettingCurrencies    = "currencies"
)

// Currency describes one currency offered in order forms
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// DefaultOrderStatuses is the status list materialized on first read, in display order
var DefaultOrderStatuses = []string{
	"New",
	"Confirmed",
	"In Production",
	"Ready to Ship",
	"Shipped",
	"In Transit",
	"Customs Clearance",
	"Delivered",
	"Completed",
	"Cancelled",
}

// DefaultCurrencies is written to the currencies setting on every read
var DefaultCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "TRY", Name: "Turkish Lira", Symbol: "₺"},
	{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ"},
}

// FallbackCurrencies is answered when the settings store is unavailable
var FallbackCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽"},
}

// StatusProvider lists the configured order statuses
type StatusProvider interface {
	GetOrderStatuses(ctx context.Context) []string
}

// SettingsService materializes configuration rows the UI needs to render.
// Both reads fail open: callers always get a usable list.
type SettingsService struct {
	db      *gorm.DB
	log     *zap.Logger
	metrics *appmetrics.Metrics
}

func NewSettingsService(db *gorm.DB, log *zap.Logger, metrics *appmetrics.Metrics) *SettingsService {
	return &SettingsService{db: db, log: log, metrics: metrics}
}

// GetOrderStatuses returns the stored status list, creating it with
// DefaultOrderStatuses on first use.
func (s *SettingsService) GetOrderStatuses(ctx context.Context) []string {
	statuses, err := s.loadOrderStatuses(ctx)
	s.metrics.RecordOperation("settings", "get_statuses", err)
	if err != nil {
		s.log.Warn("Serving default order statuses", zap.Error(err))
		s.metrics.SettingsFallbackCounter.WithLabelValues(SettingOrderStatuses).Inc()
		return append([]string(nil), DefaultOrderStatuses...)
	}
	return statuses
}

func (s *SettingsService) loadOrderStatuses(ctx context.Context) ([]string, error) {
	var setting model.SystemSetting
	err := s.db.WithContext(ctx).Where(&model.SystemSetting{Key: SettingOrderStatuses}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		value, err := json.Marshal(DefaultOrderStatuses)
		if err != nil {
			return nil, err
		}
		setting = model.SystemSetting{
			Key:         SettingOrderStatuses,
			Value:       string(value),
			Type:        "json",
			Category:    "orders",
			Description: "Order statuses offered in the status dropdown",
			IsEditable:  true,
		}
		// a concurrent first read may have created it already; either row is the defaults
		err = s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
			Create(&setting).Error
		if err != nil {
			return nil, fmt.Errorf("create %s setting: %w", SettingOrderStatuses, err)
		}
		s.log.Info("Created default order statuses setting", zap.Int("count", len(DefaultOrderStatuses)))
		return append([]string(nil), DefaultOrderStatuses...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s setting: %w", SettingOrderStatuses, err)
	}

	var statuses []string
	if err := json.Unmarshal([]byte(setting.Value), &statuses); err != nil {
		return nil, fmt.Errorf("decode %s setting: %w", SettingOrderStatuses, err)
	}
	return statuses, nil
}

// GetCurrencies writes DefaultCurrencies to the currencies setting, creating or
// overwriting it, and returns them. Edits made to the stored row do not survive
// a read.
//
// TODO: drop the overwrite once product confirms whether currencies are meant to be editable.
func (s *SettingsService) GetCurrencies(ctx context.Context) []Currency {
	currencies, err := s.writeDefaultCurrencies(ctx)
	s.metrics.RecordOperation("settings", "get_currencies", err)
	if err != nil {
		s.log.Warn("Serving fallback currencies", zap.Error(err))
		s.metrics.SettingsFallbackCounter.WithLabelValues(SettingCurrencies).Inc()
		return append([]Currency(nil), FallbackCurrencies...)
	}
	return currencies
}

func (s *SettingsService) writeDefaultCurrencies(ctx context.Context) ([]Currency, error) {
	db := s.db.WithContext(ctx)

	var existing model.SystemSetting
	err := db.Where(&model.SystemSetting{Key: SettingCurrencies}).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.log.Info("Creating currencies setting")
	case err != nil:
		return nil, fmt.Errorf("read %s setting: %w", SettingCurrencies, err)
	default:
		s.log.Debug("Overwriting currencies setting", zap.Time("previous_update", existing.UpdatedAt))
	}

	value, err := json.Marshal(DefaultCurrencies)
	if err != nil {
		return nil, err
	}
	setting := model.SystemSetting{
		Key:         SettingCurrencies,
		Value:       string(value),
		Type:        "json",
		Category:    "finance",
		Description: "Currencies available for order amounts",
		IsEditable:  true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "category", "description", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, fmt.Errorf("write %s setting: %w", SettingCurrencies, err)
	}

	return append([]Currency(nil), DefaultCurrencies...), nil
}
