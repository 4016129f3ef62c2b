package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"procurement-service/internal/model"
	"procurement-service/pkg/apperrors"
	"procurement-service/pkg/filestorage"
	appmetrics "procurement-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OwnerKind says which entity an attachment belongs to
type OwnerKind int

const (
	KindOrder OwnerKind = iota + 1
	KindSupplier
)

func (k OwnerKind) String() string {
	switch k {
	case KindOrder:
		return "order"
	case KindSupplier:
		return "supplier"
	default:
		return fmt.Sprintf("OwnerKind(%d)", int(k))
	}
}

// Attachment is the normalized view of an order or supplier file
type Attachment struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// attachmentStore hides how one owner kind keeps its files
type attachmentStore interface {
	list(db *gorm.DB, ownerID uint) ([]Attachment, error)
	// find returns the stored path of fileID if it belongs to ownerID
	find(db *gorm.DB, ownerID, fileID uint) (string, error)
	delete(db *gorm.DB, ownerID, fileID uint) error
}

type orderFileStore struct{}

func (orderFileStore) list(db *gorm.DB, orderID uint) ([]Attachment, error) {
	var files []model.OrderFile
	if err := db.Where("order_id = ?", orderID).Order("uploaded_at DESC").Order("id DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	out := make([]Attachment, 0, len(files))
	for _, f := range files {
		out = append(out, Attachment{
			ID:         f.ID,
			Name:       f.FileName,
			Size:       f.FileSize,
			Type:       extensionType(f.FileName),
			URL:        f.FilePath,
			UploadedAt: f.UploadedAt,
		})
	}
	return out, nil
}

func (orderFileStore) find(db *gorm.DB, orderID, fileID uint) (string, error) {
	var f model.OrderFile
	if err := db.Where("id = ? AND order_id = ?", fileID, orderID).First(&f).Error; err != nil {
		return "", err
	}
	return f.FilePath, nil
}

func (orderFileStore) delete(db *gorm.DB, orderID, fileID uint) error {
	return db.Where("id = ? AND order_id = ?", fileID, orderID).Delete(&model.OrderFile{}).Error
}

type supplierFileStore struct{}

func (supplierFileStore) list(db *gorm.DB, supplierID uint) ([]Attachment, error) {
	var files []model.SupplierFile
	if err := db.Where("supplier_id = ?", supplierID).Order("uploaded_at DESC").Order("id DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	out := make([]Attachment, 0, len(files))
	for _, f := range files {
		out = append(out, Attachment{
			ID:         f.ID,
			Name:       f.FileName,
			Size:       f.FileSize,
			Type:       f.FileType,
			URL:        f.FilePath,
			UploadedAt: f.UploadedAt,
		})
	}
	return out, nil
}

func (supplierFileStore) find(db *gorm.DB, supplierID, fileID uint) (string, error) {
	var f model.SupplierFile
	if err := db.Where("id = ? AND supplier_id = ?", fileID, supplierID).First(&f).Error; err != nil {
		return "", err
	}
	return f.FilePath, nil
}

func (supplierFileStore) delete(db *gorm.DB, supplierID, fileID uint) error {
	return db.Where("id = ? AND supplier_id = ?", fileID, supplierID).Delete(&model.SupplierFile{}).Error
}

// extensionType derives an order file's type from its name: "Invoice.PDF" → "pdf"
func extensionType(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// AttachmentService lists and deletes files attached to orders and suppliers.
// The database row is authoritative: stored files are removed best-effort.
type AttachmentService struct {
	db      *gorm.DB
	storage filestorage.FileStorage
	stores  map[OwnerKind]attachmentStore
	log     *zap.Logger
	metrics *appmetrics.Metrics
}

func NewAttachmentService(db *gorm.DB, storage filestorage.FileStorage, log *zap.Logger, metrics *appmetrics.Metrics) *AttachmentService {
	return &AttachmentService{
		db:      db,
		storage: storage,
		stores: map[OwnerKind]attachmentStore{
			KindOrder:    orderFileStore{},
			KindSupplier: supplierFileStore{},
		},
		log:     log,
		metrics: metrics,
	}
}

func (s *AttachmentService) store(kind OwnerKind) (attachmentStore, error) {
	st, ok := s.stores[kind]
	if !ok {
		return nil, apperrors.Internal("Unsupported attachment owner", fmt.Errorf("unknown owner kind %s", kind))
	}
	return st, nil
}

// ListFiles returns the files of one owner, newest upload first
func (s *AttachmentService) ListFiles(ctx context.Context, kind OwnerKind, ownerID uint) (files []Attachment, err error) {
	defer func() { s.metrics.RecordOperation(kind.String()+"_file", "list", err) }()

	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	defer s.metrics.TrackDBOperation("query")(time.Now())
	files, err = st.list(s.db.WithContext(ctx), ownerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve files", err)
	}
	return files, nil
}

// DeleteFile deletes fileID if it belongs to ownerID. Failure to remove the
// stored artifact is logged and does not stop the record deletion.
func (s *AttachmentService) DeleteFile(ctx context.Context, kind OwnerKind, ownerID, fileID uint) (err error) {
	defer func() { s.metrics.RecordOperation(kind.String()+"_file", "delete", err) }()

	if fileID == 0 {
		return apperrors.Validation("File ID is required")
	}
	st, err := s.store(kind)
	if err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	storedPath, err := st.find(db, ownerID, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("File not found")
		}
		return apperrors.Internal("Failed to delete file", err)
	}

	log := s.log.With(
		zap.String("owner_kind", kind.String()),
		zap.Uint("owner_id", ownerID),
		zap.Uint("file_id", fileID))

	if err := s.storage.Delete(storedPath); err != nil {
		s.metrics.StorageCleanupFailures.Inc()
		log.Warn("Could not remove stored file, deleting record anyway",
			zap.String("path", storedPath), zap.Error(err))
	}

	defer s.metrics.TrackDBOperation("delete")(time.Now())
	if err := st.delete(db, ownerID, fileID); err != nil {
		return apperrors.Internal("Failed to delete file", err)
	}

	log.Info("File deleted", zap.String("path", storedPath))
	return nil
}
