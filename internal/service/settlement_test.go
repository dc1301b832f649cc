package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Behyna/hypeconnect/internal/mocks"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSettlement_Lock(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token when acquired", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		svc := service.NewSettlementService(mockBookingRepo, &mocks.WalletRepository{}, &mocks.TxManager{},
			newMetrics(), zap.NewNop())

		mockBookingRepo.On("Lock", ctx, "B1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil)

		result := svc.Lock(ctx, "B1")

		assert.True(t, result.Acquired)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("booking not pending is not acquired", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		svc := service.NewSettlementService(mockBookingRepo, &mocks.WalletRepository{}, &mocks.TxManager{},
			newMetrics(), zap.NewNop())

		mockBookingRepo.On("Lock", ctx, "B1", mock.Anything, mock.Anything).Return(repository.ErrNoRowsAffected)

		result := svc.Lock(ctx, "B1")

		assert.False(t, result.Acquired)
		assert.Empty(t, result.Token)
	})

	t.Run("store error is not acquired", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		svc := service.NewSettlementService(mockBookingRepo, &mocks.WalletRepository{}, &mocks.TxManager{},
			newMetrics(), zap.NewNop())

		mockBookingRepo.On("Lock", ctx, "B1", mock.Anything, mock.Anything).Return(errors.New("deadlock"))

		assert.False(t, svc.Lock(ctx, "B1").Acquired)
	})
}

func TestSettlement_LockIsExclusive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	now := time.Now()
	require.NoError(t, db.Create(&model.Booking{
		ID: "B1", Kind: model.BookingKindVideo, HypemanID: "H1", Amount: 25000,
		Status: model.BookingStatusPending, CreatedAt: now, UpdatedAt: now,
	}).Error)

	svc := service.NewSettlementService(repository.NewBookingRepository(db), repository.NewWalletRepository(db),
		repository.NewTransactionManager(db), newMetrics(), zap.NewNop())

	// newTestDB keeps a single connection, so the updates below run one after
	// another. This covers the token and status handling; the race between
	// connections is exercised in the repository package.
	var acquired int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Lock(ctx, "B1").Acquired {
				atomic.AddInt32(&acquired, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), acquired)
}

func TestSettlement_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("releases with matching token", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		svc := service.NewSettlementService(mockBookingRepo, &mocks.WalletRepository{}, &mocks.TxManager{},
			newMetrics(), zap.NewNop())

		mockBookingRepo.On("Unlock", ctx, "B1", "tok").Return(nil)

		assert.True(t, svc.Unlock(ctx, "B1", "tok"))
	})

	t.Run("stale token leaves lock in place", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		svc := service.NewSettlementService(mockBookingRepo, &mocks.WalletRepository{}, &mocks.TxManager{},
			newMetrics(), zap.NewNop())

		mockBookingRepo.On("Unlock", ctx, "B1", "old").Return(repository.ErrNoRowsAffected)

		assert.False(t, svc.Unlock(ctx, "B1", "old"))
	})
}

func TestSettlement_Settle(t *testing.T) {
	ctx := context.Background()

	cmd := service.SettleCommand{BookingID: "B1", Token: "tok", Reference: "hc_ref", UserID: "U1", Amount: 25000}
	bk := &model.Booking{ID: "B1", UserID: "U1", HypemanID: "H1", Amount: 25000,
		Status: model.BookingStatusProcessing, LockToken: strPtr("tok")}

	t.Run("confirms booking and credits wallet", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxManager := &mocks.TxManager{}
		svc := service.NewSettlementService(mockBookingRepo, mockWalletRepo, mockTxManager, newMetrics(), zap.NewNop())

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockBookingRepo.On("GetByID", mock.AnythingOfType("*context.valueCtx"), "B1").Return(bk, nil)
		mockBookingRepo.On("Confirm", mock.AnythingOfType("*context.valueCtx"), "B1", "tok", "hc_ref",
			mock.AnythingOfType("time.Time")).Return(nil)
		mockWalletRepo.On("Credit", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(e *model.WalletEntry) bool {
				return e.HypemanID == "H1" && e.Reference == "hc_ref" && e.Amount == 25000 && e.BookingID == "B1"
			})).Return(nil)

		assert.NoError(t, svc.Settle(ctx, cmd))

		mockTxManager.AssertExpectations(t)
		mockBookingRepo.AssertExpectations(t)
		mockWalletRepo.AssertExpectations(t)
	})

	t.Run("lost lock aborts before crediting", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxManager := &mocks.TxManager{}
		svc := service.NewSettlementService(mockBookingRepo, mockWalletRepo, mockTxManager, newMetrics(), zap.NewNop())

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockBookingRepo.On("GetByID", mock.AnythingOfType("*context.valueCtx"), "B1").Return(bk, nil)
		mockBookingRepo.On("Confirm", mock.AnythingOfType("*context.valueCtx"), "B1", "tok", "hc_ref",
			mock.AnythingOfType("time.Time")).Return(repository.ErrNoRowsAffected)

		err := svc.Settle(ctx, cmd)

		assert.ErrorIs(t, err, service.ErrLockNotHeld)
		mockWalletRepo.AssertNotCalled(t, "Credit")
	})

	t.Run("already credited reference is settled", func(t *testing.T) {
		mockBookingRepo := &mocks.BookingRepository{}
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxManager := &mocks.TxManager{}
		svc := service.NewSettlementService(mockBookingRepo, mockWalletRepo, mockTxManager, newMetrics(), zap.NewNop())

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockBookingRepo.On("GetByID", mock.AnythingOfType("*context.valueCtx"), "B1").Return(bk, nil)
		mockBookingRepo.On("Confirm", mock.AnythingOfType("*context.valueCtx"), "B1", "tok", "hc_ref",
			mock.AnythingOfType("time.Time")).Return(nil)
		mockWalletRepo.On("Credit", mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("*model.WalletEntry")).
			Return(repository.ErrWalletEntryExisted)

		assert.NoError(t, svc.Settle(ctx, cmd))
	})

	testCases := []struct {
		name string
		cmd  service.SettleCommand
		err  error
	}{
		{
			name: "amount other than booking price",
			cmd:  service.SettleCommand{BookingID: "B1", Token: "tok", Reference: "hc_ref", UserID: "U1", Amount: 1},
			err:  service.ErrAmountMismatch,
		},
		{
			name: "payer other than booking owner",
			cmd:  service.SettleCommand{BookingID: "B1", Token: "tok", Reference: "hc_ref", UserID: "U2", Amount: 25000},
			err:  service.ErrPayerMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockBookingRepo := &mocks.BookingRepository{}
			mockWalletRepo := &mocks.WalletRepository{}
			mockTxManager := &mocks.TxManager{}
			svc := service.NewSettlementService(mockBookingRepo, mockWalletRepo, mockTxManager, newMetrics(), zap.NewNop())

			mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
			mockBookingRepo.On("GetByID", mock.AnythingOfType("*context.valueCtx"), "B1").Return(bk, nil)

			err := svc.Settle(ctx, tc.cmd)

			assert.ErrorIs(t, err, tc.err)
			mockBookingRepo.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockWalletRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
		})
	}
}

func TestSettlement_SettleCreditsWallet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	now := time.Now()
	require.NoError(t, db.Create(&model.Booking{
		ID: "B1", Kind: model.BookingKindHype, UserID: "U1", HypemanID: "H1", Amount: 25000,
		Status: model.BookingStatusPending, CreatedAt: now, UpdatedAt: now,
	}).Error)

	bookingRepo := repository.NewBookingRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	svc := service.NewSettlementService(bookingRepo, walletRepo, repository.NewTransactionManager(db),
		newMetrics(), zap.NewNop())

	lock := svc.Lock(ctx, "B1")
	require.True(t, lock.Acquired)

	require.NoError(t, svc.Settle(ctx, service.SettleCommand{
		BookingID: "B1", Token: lock.Token, Reference: "hc_ref", UserID: "U1", Amount: 25000,
	}))

	bk, err := bookingRepo.GetByID(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, bk.Status)
	assert.True(t, svc.IsSettledWith(ctx, "B1", "hc_ref"))
	assert.False(t, svc.IsSettledWith(ctx, "B1", "hc_other"))

	hw, err := walletRepo.FindByHypemanID(ctx, "H1")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), hw.Balance)

	assert.False(t, svc.Unlock(ctx, "B1", lock.Token))
}

func TestSettlement_SettleRefusesWrongAmount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	now := time.Now()
	require.NoError(t, db.Create(&model.Booking{
		ID: "B1", Kind: model.BookingKindHype, UserID: "U1", HypemanID: "H1", Amount: 25000,
		Status: model.BookingStatusPending, CreatedAt: now, UpdatedAt: now,
	}).Error)

	bookingRepo := repository.NewBookingRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	svc := service.NewSettlementService(bookingRepo, walletRepo, repository.NewTransactionManager(db),
		newMetrics(), zap.NewNop())

	lock := svc.Lock(ctx, "B1")
	require.True(t, lock.Acquired)

	err := svc.Settle(ctx, service.SettleCommand{
		BookingID: "B1", Token: lock.Token, Reference: "hc_ref", UserID: "U1", Amount: 1,
	})
	require.ErrorIs(t, err, service.ErrAmountMismatch)

	bk, err := bookingRepo.GetByID(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusProcessing, bk.Status)
	assert.Nil(t, bk.PaystackReference)
	assert.False(t, svc.IsSettledWith(ctx, "B1", "hc_ref"))

	_, err = walletRepo.FindByHypemanID(ctx, "H1")
	assert.ErrorIs(t, err, repository.ErrWalletNotFound)

	assert.True(t, svc.Unlock(ctx, "B1", lock.Token))
}
