package batch_test

import (
	"testing"
	"time"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidBatch(t *testing.T) *batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(
		kernel.NewUUID(),
		"Springfield, IL orders",
		"2 orders to Springfield, IL",
		batch.StrategyRegion,
		order.Validated,
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		2.0,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func TestNewBatch(t *testing.T) {
	now := time.Now().UTC()
	members := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

	t.Run("should create batch with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		b, err := batch.NewBatch(id, "urgent orders (over 6h)", "orders waiting more than 6 hours",
			batch.StrategyUrgency, order.Validated, members, 6.0, now)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.True(t, b.ID().IsEqual(id))
		assert.Equal(t, "urgent orders (over 6h)", b.Name())
		assert.Equal(t, batch.StrategyUrgency, b.Strategy())
		assert.Equal(t, order.Validated, b.EligibleStatus())
		assert.Equal(t, members, b.MemberIDs())
		assert.InDelta(t, 6.0, b.SavingsMinutes(), 0.001)
		assert.Equal(t, now, b.CreatedAt())
		assert.False(t, b.IsRetired())
		assert.Nil(t, b.RetiredAt())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		b, err := batch.NewBatch(invalidID, "name", "", batch.StrategyRegion,
			order.Validated, members, 2.0, now)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), kernel.ErrUUIDIsNotConstructed.Error())
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		b, err := batch.NewBatch(kernel.NewUUID(), "", "", batch.StrategyRegion,
			order.Validated, members, 2.0, now)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should return error for invalid strategy", func(t *testing.T) {
		b, err := batch.NewBatch(kernel.NewUUID(), "name", "", batch.StrategyUnknown,
			order.Validated, members, 2.0, now)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should return error for invalid eligible status", func(t *testing.T) {
		b, err := batch.NewBatch(kernel.NewUUID(), "name", "", batch.StrategyRegion,
			order.Unknown, members, 2.0, now)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should return error for empty members", func(t *testing.T) {
		b, err := batch.NewBatch(kernel.NewUUID(), "name", "", batch.StrategyRegion,
			order.Validated, nil, 0, now)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, errs.ErrEmptyBatch)
	})

	t.Run("should copy the member slice", func(t *testing.T) {
		original := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
		b, err := batch.NewBatch(kernel.NewUUID(), "name", "", batch.StrategyRegion,
			order.Validated, original, 2.0, now)
		require.NoError(t, err)

		original[0] = kernel.NewUUID()

		assert.NotEqual(t, original[0], b.MemberIDs()[0])
	})
}

func TestRestoreBatch(t *testing.T) {
	now := time.Now().UTC()
	retiredAt := now.Add(time.Hour)

	t.Run("should restore retired batch", func(t *testing.T) {
		b, err := batch.RestoreBatch(kernel.NewUUID(), "name", "desc", batch.StrategyProduct,
			order.Validated, []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, 1.5, now, &retiredAt)

		require.NoError(t, err)
		assert.True(t, b.IsRetired())
		require.NotNil(t, b.RetiredAt())
		assert.Equal(t, retiredAt, *b.RetiredAt())
		assert.Equal(t, now, b.CreatedAt())
	})

	t.Run("should restore active batch", func(t *testing.T) {
		b, err := batch.RestoreBatch(kernel.NewUUID(), "name", "desc", batch.StrategyProduct,
			order.Validated, []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, 1.5, now, nil)

		require.NoError(t, err)
		assert.False(t, b.IsRetired())
	})
}

func TestBatchRetire(t *testing.T) {
	t.Run("should retire an active batch", func(t *testing.T) {
		b := createValidBatch(t)
		retiredAt := time.Now().UTC()

		err := b.Retire(retiredAt)

		require.NoError(t, err)
		assert.True(t, b.IsRetired())
		require.NotNil(t, b.RetiredAt())
		assert.Equal(t, retiredAt, *b.RetiredAt())
	})

	t.Run("should fail retiring twice", func(t *testing.T) {
		b := createValidBatch(t)
		first := time.Now().UTC()
		require.NoError(t, b.Retire(first))

		err := b.Retire(first.Add(time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, batch.ErrBatchAlreadyRetired)
		assert.Equal(t, first, *b.RetiredAt())
	})
}

func TestBatchValidate(t *testing.T) {
	t.Run("should fail for zero-value batch", func(t *testing.T) {
		var b batch.Batch

		assert.ErrorIs(t, b.Validate(), batch.ErrBatchIsNotConstructed)
	})

	t.Run("should fail for nil batch", func(t *testing.T) {
		var b *batch.Batch

		assert.ErrorIs(t, b.Validate(), batch.ErrBatchIsNotConstructed)
	})
}

func TestStrategyFromString(t *testing.T) {
	t.Run("should parse all valid strategies", func(t *testing.T) {
		testCases := []struct {
			raw      string
			expected batch.Strategy
		}{
			{"region", batch.StrategyRegion},
			{"urgency", batch.StrategyUrgency},
			{"product", batch.StrategyProduct},
		}

		for _, tc := range testCases {
			strategy, err := batch.StrategyFromString(tc.raw)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, strategy)
			assert.Equal(t, tc.raw, strategy.String())
		}
	})

	t.Run("should return error for unrecognized values", func(t *testing.T) {
		strategy, err := batch.StrategyFromString("geo")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, batch.StrategyUnknown, strategy)
	})
}
