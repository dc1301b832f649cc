package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/stretchr/testify/mock"
)

type FraudService struct {
	mock.Mock
}

func (f *FraudService) ValidateAmount(ctx context.Context, reference string, actualAmount, maxVariance int64) service.ValidationResult {
	args := f.Called(ctx, reference, actualAmount, maxVariance)
	return args.Get(0).(service.ValidationResult)
}

func (f *FraudService) ValidateMinorAmount(ctx context.Context, reference string, minorAmount, maxVariance int64) service.ValidationResult {
	args := f.Called(ctx, reference, minorAmount, maxVariance)
	return args.Get(0).(service.ValidationResult)
}

func (f *FraudService) ValidateMetadata(ctx context.Context, reference string, webhookMetadata map[string]string) service.MetadataValidationResult {
	args := f.Called(ctx, reference, webhookMetadata)
	return args.Get(0).(service.MetadataValidationResult)
}

func (f *FraudService) IsAlreadyPaid(ctx context.Context, bookingID string) bool {
	args := f.Called(ctx, bookingID)
	return args.Bool(0)
}

func (f *FraudService) GetFraudAlerts(ctx context.Context, query service.GetAlertsQuery) ([]model.FraudAlert, error) {
	args := f.Called(ctx, query)
	alerts, _ := args.Get(0).([]model.FraudAlert)
	return alerts, args.Error(1)
}

func (f *FraudService) ResolveFraudAlert(ctx context.Context, cmd service.ResolveAlertCommand) (*model.FraudAlert, error) {
	args := f.Called(ctx, cmd)
	alert, _ := args.Get(0).(*model.FraudAlert)
	return alert, args.Error(1)
}
