package service

import (
	"context"
	"time"

	"procurement-service/internal/model"
	"procurement-service/pkg/apperrors"
	appmetrics "procurement-service/prometheus"

	"gorm.io/gorm"
)

// StageOption is one entry of the stage dropdown
type StageOption struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// StageService reads stage templates
type StageService struct {
	db      *gorm.DB
	metrics *appmetrics.Metrics
}

func NewStageService(db *gorm.DB, metrics *appmetrics.Metrics) *StageService {
	return &StageService{db: db, metrics: metrics}
}

// ListActiveStages returns active stage templates by sort order, then name
func (s *StageService) ListActiveStages(ctx context.Context) (stages []StageOption, err error) {
	defer func() { s.metrics.RecordOperation("stage", "list", err) }()
	defer s.metrics.TrackDBOperation("query")(time.Now())

	stages = []StageOption{}
	err = s.db.WithContext(ctx).
		Model(&model.StageTemplate{}).
		Select("id", "name", "sort_order").
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Scan(&stages).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve stages", err)
	}
	return stages, nil
}
