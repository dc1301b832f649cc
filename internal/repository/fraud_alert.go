package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"gorm.io/gorm"
)

var ErrFraudAlertNotFound = errors.New("FRAUD_ALERT_NOT_FOUND")

type AlertFilter struct {
	Status   model.AlertStatus
	Type     model.AlertType
	Severity model.Severity
}

type FraudAlertRepository interface {
	Create(ctx context.Context, alert *model.FraudAlert) error
	GetByID(ctx context.Context, id string) (*model.FraudAlert, error)
	Find(ctx context.Context, filter AlertFilter, limit int) ([]model.FraudAlert, error)
	Resolve(ctx context.Context, id string, update *model.FraudAlert) error
	FindUnpublished(limit int) ([]model.FraudAlert, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

type fraudAlert struct {
	db *gorm.DB
}

func NewFraudAlertRepository(db *gorm.DB) FraudAlertRepository {
	return &fraudAlert{db: db}
}

func (f *fraudAlert) Create(ctx context.Context, alert *model.FraudAlert) error {
	return GetTx(ctx, f.db).Create(alert).Error
}

func (f *fraudAlert) GetByID(ctx context.Context, id string) (*model.FraudAlert, error) {
	var alert model.FraudAlert

	err := GetTx(ctx, f.db).Where("id = ?", id).First(&alert).Error
	if err == nil {
		return &alert, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFraudAlertNotFound
	}

	return nil, err
}

func (f *fraudAlert) Find(ctx context.Context, filter AlertFilter, limit int) ([]model.FraudAlert, error) {
	var alerts []model.FraudAlert

	query := GetTx(ctx, f.db).Model(&model.FraudAlert{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}

	if err := query.Order("created_at DESC").Limit(limit).Find(&alerts).Error; err != nil {
		return nil, err
	}

	return alerts, nil
}

// Resolve moves an unreviewed alert to reviewed. ErrNoRowsAffected means the
// alert is missing or was already reviewed.
func (f *fraudAlert) Resolve(ctx context.Context, id string, update *model.FraudAlert) error {
	result := GetTx(ctx, f.db).Model(&model.FraudAlert{}).
		Where("id = ? AND status = ?", id, model.AlertStatusUnreviewed).
		Updates(update)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (f *fraudAlert) FindUnpublished(limit int) ([]model.FraudAlert, error) {
	var alerts []model.FraudAlert

	err := f.db.Where("published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	return alerts, nil
}

func (f *fraudAlert) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	return GetTx(ctx, f.db).Model(&model.FraudAlert{}).
		Where("id = ?", id).
		Updates(map[string]any{"published": true, "published_at": publishedAt}).Error
}
