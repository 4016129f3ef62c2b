package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"procurement-service/internal/dbtest"
	"procurement-service/internal/model"
	appmetrics "procurement-service/prometheus"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	metrics *appmetrics.Metrics
	log     *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		db:      dbtest.New(t),
		metrics: appmetrics.NewNopMetrics(),
		log:     zap.NewNop(),
	}
}

func (f *fixture) supplier(t *testing.T, name string, active bool) *model.Supplier {
	t.Helper()
	s, err := model.NewSupplier(name)
	require.NoError(t, err)
	s.Email = "sales@" + name + ".example"
	s.Country = "China"
	s.Notes = "net 30"
	require.NoError(t, f.db.Create(s).Error)
	if !active {
		require.NoError(t, f.db.Model(s).Update("is_active", false).Error)
		s.IsActive = false
	}
	return s
}

var orderSeq atomic.Int64

func (f *fixture) order(t *testing.T, supplierID uint, createdAt time.Time) *model.Order {
	t.Helper()
	o, err := model.NewOrder(fmt.Sprintf("PO-%d", orderSeq.Add(1)), supplierID, "New")
	require.NoError(t, err)
	o.CreatedAt = createdAt.UTC()
	require.NoError(t, f.db.Create(o).Error)
	return o
}

func (f *fixture) orderFile(t *testing.T, orderID uint, name, path string, uploadedAt time.Time) *model.OrderFile {
	t.Helper()
	file := &model.OrderFile{OrderID: orderID, FileName: name, FileSize: 1024, FilePath: path, UploadedAt: uploadedAt.UTC()}
	require.NoError(t, f.db.Create(file).Error)
	return file
}

func (f *fixture) supplierFile(t *testing.T, supplierID uint, name, path, fileType string, uploadedAt time.Time) *model.SupplierFile {
	t.Helper()
	file := &model.SupplierFile{SupplierID: supplierID, FileName: name, FileSize: 2048, FilePath: path, FileType: fileType, UploadedAt: uploadedAt.UTC()}
	require.NoError(t, f.db.Create(file).Error)
	return file
}

func (f *fixture) category(t *testing.T, supplierID uint, name string) {
	t.Helper()
	c := &model.Category{Name: name}
	require.NoError(t, f.db.Create(c).Error)
	require.NoError(t, f.db.Create(&model.SupplierCategory{SupplierID: supplierID, CategoryID: c.ID}).Error)
}

func (f *fixture) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

// recordingStorage remembers deleted paths and can be made to fail
type recordingStorage struct {
	deleted []string
	err     error
}

func (s *recordingStorage) Delete(publicPath string) error {
	s.deleted = append(s.deleted, publicPath)
	return s.err
}
