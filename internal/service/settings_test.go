package service

import (
	"context"
	"encoding/json"
	"testing"

	"procurement-service/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderStatusesCreatesDefaultsOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingsService(f.db, f.log, f.metrics)

	statuses := svc.GetOrderStatuses(context.Background())
	assert.Equal(t, DefaultOrderStatuses, statuses)
	assert.Equal(t, int64(1), f.count(t, &model.SystemSetting{}, "key = ?", SettingOrderStatuses))

	// an admin edit survives later reads
	custom, _ := json.Marshal([]string{"Draft", "Sent"})
	require.NoError(t, f.db.Model(&model.SystemSetting{}).
		Where("key = ?", SettingOrderStatuses).
		Update("value", string(custom)).Error)

	statuses = svc.GetOrderStatuses(context.Background())
	assert.Equal(t, []string{"Draft", "Sent"}, statuses)
	assert.Equal(t, int64(1), f.count(t, &model.SystemSetting{}, "key = ?", SettingOrderStatuses))
}

func TestGetOrderStatusesFallsBack(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingsService(f.db, f.log, f.metrics)
	require.NoError(t, f.db.Migrator().DropTable(&model.SystemSetting{}))

	assert.Equal(t, DefaultOrderStatuses, svc.GetOrderStatuses(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SettingsFallbackCounter.WithLabelValues(SettingOrderStatuses)))
}

func TestGetOrderStatusesCorruptValueFallsBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&model.SystemSetting{Key: SettingOrderStatuses, Value: "not json", Type: "json"}).Error)
	svc := NewSettingsService(f.db, f.log, f.metrics)

	assert.Equal(t, DefaultOrderStatuses, svc.GetOrderStatuses(context.Background()))
}

func TestGetCurrenciesOverwritesStoredValue(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingsService(f.db, f.log, f.metrics)

	assert.Equal(t, DefaultCurrencies, svc.GetCurrencies(context.Background()))

	edited, _ := json.Marshal([]Currency{{Code: "KZT", Name: "Tenge", Symbol: "₸"}})
	require.NoError(t, f.db.Model(&model.SystemSetting{}).
		Where("key = ?", SettingCurrencies).
		Update("value", string(edited)).Error)

	assert.Equal(t, DefaultCurrencies, svc.GetCurrencies(context.Background()))

	var stored model.SystemSetting
	require.NoError(t, f.db.Where("key = ?", SettingCurrencies).First(&stored).Error)
	var currencies []Currency
	require.NoError(t, json.Unmarshal([]byte(stored.Value), &currencies))
	assert.Equal(t, DefaultCurrencies, currencies)
	assert.Equal(t, int64(1), f.count(t, &model.SystemSetting{}, "key = ?", SettingCurrencies))
}

func TestGetCurrenciesFallsBack(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingsService(f.db, f.log, f.metrics)
	require.NoError(t, f.db.Migrator().DropTable(&model.SystemSetting{}))

	got := svc.GetCurrencies(context.Background())
	assert.Equal(t, FallbackCurrencies, got)
	assert.Len(t, got, 4)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SettingsFallbackCounter.WithLabelValues(SettingCurrencies)))
}
