package mocks

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/stretchr/testify/mock"
)

type FraudAlertRepository struct {
	mock.Mock
}

func (f *FraudAlertRepository) Create(ctx context.Context, alert *model.FraudAlert) error {
	args := f.Called(ctx, alert)
	return args.Error(0)
}

func (f *FraudAlertRepository) GetByID(ctx context.Context, id string) (*model.FraudAlert, error) {
	args := f.Called(ctx, id)
	alert, _ := args.Get(0).(*model.FraudAlert)
	return alert, args.Error(1)
}

func (f *FraudAlertRepository) Find(ctx context.Context, filter repository.AlertFilter, limit int) ([]model.FraudAlert, error) {
	args := f.Called(ctx, filter, limit)
	alerts, _ := args.Get(0).([]model.FraudAlert)
	return alerts, args.Error(1)
}

func (f *FraudAlertRepository) Resolve(ctx context.Context, id string, update *model.FraudAlert) error {
	args := f.Called(ctx, id, update)
	return args.Error(0)
}

func (f *FraudAlertRepository) FindUnpublished(limit int) ([]model.FraudAlert, error) {
	args := f.Called(limit)
	alerts, _ := args.Get(0).([]model.FraudAlert)
	return alerts, args.Error(1)
}

func (f *FraudAlertRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	args := f.Called(ctx, id, publishedAt)
	return args.Error(0)
}
