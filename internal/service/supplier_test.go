package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"procurement-service/internal/model"
	"procurement-service/pkg/apperrors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestArchiveKeepsOrdersAndFields(t *testing.T) {
	f := newFixture(t)
	sup := f.supplier(t, "acme", true)
	f.order(t, sup.ID, time.Now())
	f.order(t, sup.ID, time.Now())
	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)

	res, err := svc.Archive(context.Background(), sup.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.OrdersCount)
	assert.False(t, res.Supplier.IsActive)

	var stored model.Supplier
	require.NoError(t, f.db.First(&stored, sup.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Equal(t, sup.Name, stored.Name)
	assert.Equal(t, sup.Email, stored.Email)
	assert.Equal(t, sup.Notes, stored.Notes)
	assert.Equal(t, int64(2), f.count(t, &model.Order{}, "supplier_id = ?", sup.ID))

	// archiving again reapplies the same state
	res, err = svc.Archive(context.Background(), sup.ID)
	require.NoError(t, err)
	assert.False(t, res.Supplier.IsActive)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SuppliersGauge.WithLabelValues("archived")))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.SuppliersGauge.WithLabelValues("active")))
}

func TestArchiveMissingSupplier(t *testing.T) {
	f := newFixture(t)
	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)

	_, err := svc.Archive(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Supplier not found", apperrors.DisplayMessage(err, ""))
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	archived := f.supplier(t, "acme", false)
	active := f.supplier(t, "globex", true)
	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)

	restored, err := svc.Restore(context.Background(), archived.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	assert.Equal(t, archived.Email, restored.Email)

	_, err = svc.Restore(context.Background(), active.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Supplier is already active", apperrors.DisplayMessage(err, ""))

	_, err = svc.Restore(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeletePermanentlyRequiresArchive(t *testing.T) {
	f := newFixture(t)
	sup := f.supplier(t, "acme", true)
	f.order(t, sup.ID, time.Now())
	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)

	_, err := svc.DeletePermanently(context.Background(), sup.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Equal(t, int64(1), f.count(t, &model.Supplier{}, "id = ?", sup.ID))
	assert.Equal(t, int64(1), f.count(t, &model.Order{}, "supplier_id = ?", sup.ID))

	_, err = svc.DeletePermanently(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeletePermanentlyCascades(t *testing.T) {
	f := newFixture(t)
	sup := f.supplier(t, "acme", false)
	other := f.supplier(t, "globex", false)

	o1 := f.order(t, sup.ID, time.Now())
	f.order(t, sup.ID, time.Now())
	f.orderFile(t, o1.ID, "invoice.pdf", "/uploads/orders/invoice.pdf", time.Now())
	f.supplierFile(t, sup.ID, "contract.pdf", "/uploads/suppliers/contract.pdf", "contract", time.Now())
	f.category(t, sup.ID, "Fasteners")
	keep := f.order(t, other.ID, time.Now())

	storage := &recordingStorage{}
	svc := NewSupplierService(f.db, storage, f.log, f.metrics)

	counts, err := svc.DeletePermanently(context.Background(), sup.ID)
	require.NoError(t, err)
	assert.Equal(t, &DeletedCounts{Orders: 2, Files: 1, Categories: 1}, counts)

	assert.Zero(t, f.count(t, &model.Supplier{}, "id = ?", sup.ID))
	assert.Zero(t, f.count(t, &model.Order{}, "supplier_id = ?", sup.ID))
	assert.Zero(t, f.count(t, &model.SupplierFile{}, "supplier_id = ?", sup.ID))
	assert.Zero(t, f.count(t, &model.SupplierCategory{}, "supplier_id = ?", sup.ID))
	assert.Zero(t, f.count(t, &model.OrderFile{}, "order_id = ?", o1.ID))

	// categories themselves and other suppliers stay
	assert.Equal(t, int64(1), f.count(t, &model.Category{}, "name = ?", "Fasteners"))
	assert.Equal(t, int64(1), f.count(t, &model.Order{}, "id = ?", keep.ID))

	assert.ElementsMatch(t, []string{"/uploads/suppliers/contract.pdf", "/uploads/orders/invoice.pdf"}, storage.deleted)
}

func TestDeletePermanentlyStorageFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	sup := f.supplier(t, "acme", false)
	f.supplierFile(t, sup.ID, "contract.pdf", "/uploads/suppliers/contract.pdf", "contract", time.Now())

	svc := NewSupplierService(f.db, &recordingStorage{err: errors.New("read-only file system")}, f.log, f.metrics)

	_, err := svc.DeletePermanently(context.Background(), sup.ID)
	require.NoError(t, err)
	assert.Zero(t, f.count(t, &model.Supplier{}, "id = ?", sup.ID))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StorageCleanupFailures))
}

func TestDeletePermanentlyIsAtomic(t *testing.T) {
	f := newFixture(t)
	sup := f.supplier(t, "acme", false)
	o := f.order(t, sup.ID, time.Now())
	f.orderFile(t, o.ID, "invoice.pdf", "/uploads/orders/invoice.pdf", time.Now())
	f.supplierFile(t, sup.ID, "contract.pdf", "/uploads/suppliers/contract.pdf", "contract", time.Now())
	f.category(t, sup.ID, "Fasteners")

	err := f.db.Callback().Delete().Before("gorm:delete").Register("test:fail_orders", func(db *gorm.DB) {
		if db.Statement.Table == "orders" {
			_ = db.AddError(errors.New("disk I/O error"))
		}
	})
	require.NoError(t, err)

	storage := &recordingStorage{}
	svc := NewSupplierService(f.db, storage, f.log, f.metrics)

	_, err = svc.DeletePermanently(context.Background(), sup.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInternal)

	require.NoError(t, f.db.Callback().Delete().Remove("test:fail_orders"))

	assert.Equal(t, int64(1), f.count(t, &model.Supplier{}, "id = ?", sup.ID))
	assert.Equal(t, int64(1), f.count(t, &model.Order{}, "supplier_id = ?", sup.ID))
	assert.Equal(t, int64(1), f.count(t, &model.OrderFile{}, "order_id = ?", o.ID))
	assert.Equal(t, int64(1), f.count(t, &model.SupplierFile{}, "supplier_id = ?", sup.ID))
	assert.Equal(t, int64(1), f.count(t, &model.SupplierCategory{}, "supplier_id = ?", sup.ID))
	assert.Empty(t, storage.deleted)
}

func TestListArchived(t *testing.T) {
	f := newFixture(t)
	older := f.supplier(t, "acme", false)
	newer := f.supplier(t, "globex", false)
	f.supplier(t, "initech", true)
	f.order(t, newer.ID, time.Now())
	f.order(t, newer.ID, time.Now())

	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.db.Model(older).UpdateColumn("updated_at", base).Error)
	require.NoError(t, f.db.Model(newer).UpdateColumn("updated_at", base.Add(time.Hour)).Error)

	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)
	list, err := svc.ListArchived(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "globex", list[0].Name)
	assert.Equal(t, int64(2), list[0].OrdersCount)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Zero(t, list[1].OrdersCount)
}

func TestListArchivedEmpty(t *testing.T) {
	f := newFixture(t)
	f.supplier(t, "acme", true)
	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)

	list, err := svc.ListArchived(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestExportArchived(t *testing.T) {
	f := newFixture(t)
	sup := f.supplier(t, "acme", false)
	f.order(t, sup.ID, time.Now())
	svc := NewSupplierService(f.db, &recordingStorage{}, f.log, f.metrics)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportArchived(context.Background(), &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(archiveSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, archiveColumns, rows[0])
	assert.Equal(t, "acme", rows[1][1])
	assert.Equal(t, "1", rows[1][7])
}
