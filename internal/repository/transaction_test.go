package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(reference, userID string, amount int64, initiatedAt time.Time) *model.TransactionRecord {
	return &model.TransactionRecord{
		Reference:      reference,
		UserID:         userID,
		Email:          userID + "@example.com",
		ExpectedAmount: amount,
		Metadata:       model.Metadata{model.MetaBookingID: "B-" + reference},
		Status:         model.TxStatusInitialized,
		InitiatedAt:    initiatedAt,
	}
}

func TestTransaction_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and reads back record", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))
		now := time.Now().UTC()

		require.NoError(t, repo.Create(ctx, newRecord("ref-1", "user-1", 25000, now)))

		record, err := repo.GetByReference(ctx, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", record.UserID)
		assert.Equal(t, int64(25000), record.ExpectedAmount)
		assert.Equal(t, model.TxStatusInitialized, record.Status)
		assert.Equal(t, "B-ref-1", record.Metadata[model.MetaBookingID])
	})

	t.Run("rejects duplicate reference without overwriting", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))
		now := time.Now().UTC()

		require.NoError(t, repo.Create(ctx, newRecord("ref-1", "user-1", 25000, now)))

		err := repo.Create(ctx, newRecord("ref-1", "user-2", 99999, now))
		assert.ErrorIs(t, err, repository.ErrTransactionExisted)

		record, err := repo.GetByReference(ctx, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, int64(25000), record.ExpectedAmount)
		assert.Equal(t, "user-1", record.UserID)
	})

	t.Run("returns not found for unknown reference", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))

		record, err := repo.GetByReference(ctx, "missing")
		assert.Nil(t, record)
		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})
}

func TestTransaction_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates when status matches", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))
		require.NoError(t, repo.Create(ctx, newRecord("ref-1", "user-1", 100, time.Now().UTC())))

		verifiedAt := time.Now().UTC()
		resp := "Approved"
		err := repo.UpdateStatus(ctx, "ref-1", model.TxStatusInitialized, &model.TransactionRecord{
			Status:          model.TxStatusVerified,
			VerifiedAt:      &verifiedAt,
			GatewayResponse: &resp,
		})
		require.NoError(t, err)

		record, err := repo.GetByReference(ctx, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusVerified, record.Status)
		assert.NotNil(t, record.VerifiedAt)
		assert.Equal(t, "Approved", *record.GatewayResponse)
		assert.Equal(t, int64(100), record.ExpectedAmount)
	})

	t.Run("does nothing when status moved on", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))
		require.NoError(t, repo.Create(ctx, newRecord("ref-1", "user-1", 100, time.Now().UTC())))

		err := repo.UpdateStatus(ctx, "ref-1", model.TxStatusVerified, &model.TransactionRecord{
			Status: model.TxStatusCompleted,
		})
		assert.ErrorIs(t, err, repository.ErrNoRowsAffected)

		record, err := repo.GetByReference(ctx, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusInitialized, record.Status)
	})
}

func TestTransaction_Queries(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	db := newTestDB(t)
	repo := repository.NewTransactionRepository(db)

	for i := 0; i < 5; i++ {
		rec := newRecord(fmt.Sprintf("ref-%d", i), "user-1", int64(1000*(i+1)), now.Add(-time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(ctx, rec))
	}
	require.NoError(t, repo.Create(ctx, newRecord("other-1", "user-2", 500, now)))

	failedAt := now.Add(-30 * time.Minute)
	reason := "declined"
	require.NoError(t, repo.UpdateStatus(ctx, "ref-3", model.TxStatusInitialized, &model.TransactionRecord{
		Status: model.TxStatusFailed, FailedAt: &failedAt, FailureReason: &reason,
	}))

	oldRejectedAt := now.Add(-72 * time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, "ref-4", model.TxStatusInitialized, &model.TransactionRecord{
		Status: model.TxStatusRejected, RejectedAt: &oldRejectedAt, FailureReason: &reason,
	}))

	t.Run("finds user records newest first with limit", func(t *testing.T) {
		records, err := repo.FindByUserID(ctx, "user-1", 3)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "ref-0", records[0].Reference)
		assert.Equal(t, "ref-1", records[1].Reference)
		assert.Equal(t, "ref-2", records[2].Reference)
	})

	t.Run("aggregates by status", func(t *testing.T) {
		rows, err := repo.AggregateByStatus(ctx)
		require.NoError(t, err)

		byStatus := map[model.TxStatus]repository.StatusAggregate{}
		for _, row := range rows {
			byStatus[row.Status] = row
		}

		assert.Equal(t, int64(4), byStatus[model.TxStatusInitialized].Count)
		assert.Equal(t, int64(1000+2000+3000+500), byStatus[model.TxStatusInitialized].TotalAmount)
		assert.Equal(t, int64(1), byStatus[model.TxStatusFailed].Count)
		assert.Equal(t, int64(1), byStatus[model.TxStatusRejected].Count)
	})

	t.Run("finds failures inside window only", func(t *testing.T) {
		records, err := repo.FindFailedSince(ctx, now.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "ref-3", records[0].Reference)
	})

	t.Run("finds open attempts of user inside window", func(t *testing.T) {
		records, err := repo.FindOpenByUserSince(ctx, "user-1", now.Add(-90*time.Minute))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "ref-0", records[0].Reference)
		assert.Equal(t, "ref-1", records[1].Reference)
	})

	t.Run("walks all records in batches", func(t *testing.T) {
		seen := 0
		batches := 0
		err := repo.FindInBatches(ctx, 2, func(batch []model.TransactionRecord) error {
			batches++
			seen += len(batch)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 6, seen)
		assert.Equal(t, 3, batches)
	})
}
