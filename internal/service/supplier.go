package service

import (
	"context"
	"errors"
	"time"

	"procurement-service/internal/model"
	"procurement-service/pkg/apperrors"
	"procurement-service/pkg/filestorage"
	appmetrics "procurement-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArchiveResult is returned by Archive
type ArchiveResult struct {
	OrdersCount int64           `json:"ordersCount"`
	Supplier    *model.Supplier `json:"supplier"`
}

// DeletedCounts reports the dependents removed with a supplier
type DeletedCounts struct {
	Orders     int64 `json:"orders"`
	Files      int64 `json:"files"`
	Categories int64 `json:"categories"`
}

// ArchivedSupplier is a supplier listed in the archive with its order count
type ArchivedSupplier struct {
	model.Supplier
	OrdersCount int64 `json:"ordersCount"`
}

// SupplierService moves suppliers through Active → Archived → Deleted
type SupplierService struct {
	db      *gorm.DB
	storage filestorage.FileStorage
	log     *zap.Logger
	metrics *appmetrics.Metrics
}

func NewSupplierService(db *gorm.DB, storage filestorage.FileStorage, log *zap.Logger, metrics *appmetrics.Metrics) *SupplierService {
	return &SupplierService{db: db, storage: storage, log: log, metrics: metrics}
}

func findSupplier(db *gorm.DB, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Supplier not found")
		}
		return nil, err
	}
	return &supplier, nil
}

// Archive deactivates a supplier. Its orders are left untouched. Archiving an
// archived supplier succeeds and reapplies the same state.
func (s *SupplierService) Archive(ctx context.Context, id uint) (result *ArchiveResult, err error) {
	defer func() { s.metrics.RecordOperation("supplier", "archive", err) }()
	db := s.db.WithContext(ctx)

	supplier, err := findSupplier(db, id)
	if err != nil {
		return nil, wrapInternal(err, "Failed to archive supplier")
	}

	var ordersCount int64
	if err := db.Model(&model.Order{}).Where("supplier_id = ?", id).Count(&ordersCount).Error; err != nil {
		return nil, apperrors.Internal("Failed to archive supplier", err)
	}

	if err := s.setActive(db, supplier, false); err != nil {
		return nil, apperrors.Internal("Failed to archive supplier", err)
	}

	s.log.Info("Supplier archived",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name),
		zap.Int64("orders_count", ordersCount))
	s.refreshSupplierGauges(ctx)

	return &ArchiveResult{OrdersCount: ordersCount, Supplier: supplier}, nil
}

// Restore reactivates an archived supplier
func (s *SupplierService) Restore(ctx context.Context, id uint) (supplier *model.Supplier, err error) {
	defer func() { s.metrics.RecordOperation("supplier", "restore", err) }()
	db := s.db.WithContext(ctx)

	supplier, err = findSupplier(db, id)
	if err != nil {
		return nil, wrapInternal(err, "Failed to restore supplier")
	}
	if supplier.IsActive {
		return nil, apperrors.Conflict("Supplier is already active")
	}

	if err := s.setActive(db, supplier, true); err != nil {
		return nil, apperrors.Internal("Failed to restore supplier", err)
	}

	s.log.Info("Supplier restored", zap.Uint("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	s.refreshSupplierGauges(ctx)
	return supplier, nil
}

func (s *SupplierService) setActive(db *gorm.DB, supplier *model.Supplier, active bool) error {
	defer s.metrics.TrackDBOperation("update")(time.Now())

	now := time.Now()
	err := db.Model(supplier).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": now,
	}).Error
	if err != nil {
		return err
	}
	supplier.IsActive = active
	supplier.UpdatedAt = now
	return nil
}

// DeletePermanently removes an archived supplier together with its files,
// category links and orders (and the orders' files). Everything happens in one
// transaction; the supplier row is locked first so a concurrent restore cannot
// interleave. Stored files are removed best-effort after commit.
func (s *SupplierService) DeletePermanently(ctx context.Context, id uint) (counts *DeletedCounts, err error) {
	defer func() { s.metrics.RecordOperation("supplier", "delete_permanently", err) }()
	defer s.metrics.TrackDBOperation("delete_cascade")(time.Now())

	counts = &DeletedCounts{}
	var storedPaths []string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplier, err := findSupplier(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		if supplier.IsActive {
			return apperrors.Conflict("Supplier must be archived before it can be deleted permanently")
		}

		if err := tx.Model(&model.Order{}).Where("supplier_id = ?", id).Count(&counts.Orders).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.SupplierFile{}).Where("supplier_id = ?", id).Count(&counts.Files).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.SupplierCategory{}).Where("supplier_id = ?", id).Count(&counts.Categories).Error; err != nil {
			return err
		}

		orderIDs := func() *gorm.DB {
			return tx.Model(&model.Order{}).Select("id").Where("supplier_id = ?", id)
		}

		var supplierPaths, orderPaths []string
		if err := tx.Model(&model.SupplierFile{}).Where("supplier_id = ?", id).Pluck("file_path", &supplierPaths).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.OrderFile{}).Where("order_id IN (?)", orderIDs()).Pluck("file_path", &orderPaths).Error; err != nil {
			return err
		}
		storedPaths = append(supplierPaths, orderPaths...)

		// children before parents
		if err := tx.Where("supplier_id = ?", id).Delete(&model.SupplierFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&model.SupplierCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN (?)", orderIDs()).Delete(&model.OrderFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&model.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Supplier{}, id).Error
	})
	if err != nil {
		s.log.Warn("Permanent supplier deletion rolled back", zap.Uint("supplier_id", id), zap.Error(err))
		return nil, wrapInternal(err, "Failed to delete supplier")
	}

	for _, path := range storedPaths {
		if err := s.storage.Delete(path); err != nil {
			s.metrics.StorageCleanupFailures.Inc()
			s.log.Warn("Could not remove stored file of deleted supplier",
				zap.Uint("supplier_id", id), zap.String("path", path), zap.Error(err))
		}
	}

	s.log.Info("Supplier deleted permanently",
		zap.Uint("supplier_id", id),
		zap.Int64("orders", counts.Orders),
		zap.Int64("files", counts.Files),
		zap.Int64("categories", counts.Categories))
	s.refreshSupplierGauges(ctx)
	return counts, nil
}

// ListArchived returns archived suppliers with their order counts, most
// recently updated first
func (s *SupplierService) ListArchived(ctx context.Context) (suppliers []ArchivedSupplier, err error) {
	defer func() { s.metrics.RecordOperation("supplier", "list_archived", err) }()
	defer s.metrics.TrackDBOperation("query")(time.Now())

	suppliers = []ArchivedSupplier{}
	err = s.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Select("suppliers.*, (SELECT COUNT(*) FROM orders WHERE orders.supplier_id = suppliers.id) AS orders_count").
		Where("suppliers.is_active = ?", false).
		Order("suppliers.updated_at DESC").
		Order("suppliers.id DESC").
		Scan(&suppliers).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve archived suppliers", err)
	}
	return suppliers, nil
}

// refreshSupplierGauges updates the active/archived gauges; failures only cost
// metric freshness
func (s *SupplierService) refreshSupplierGauges(ctx context.Context) {
	var active, archived int64
	if err := s.db.WithContext(ctx).Model(&model.Supplier{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		s.log.Debug("Could not count active suppliers", zap.Error(err))
		return
	}
	if err := s.db.WithContext(ctx).Model(&model.Supplier{}).Where("is_active = ?", false).Count(&archived).Error; err != nil {
		s.log.Debug("Could not count archived suppliers", zap.Error(err))
		return
	}
	s.metrics.UpdateSupplierCounts(active, archived)
}

// wrapInternal keeps classified errors as they are and hides anything else
// behind message
func wrapInternal(err error, message string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(message, err)
}
