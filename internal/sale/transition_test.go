package sale

import (
	"testing"

	"github.com/libreria/sales-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTransition(t *testing.T) {
	cases := []struct {
		name   string
		prev   model.SaleStatus
		next   model.SaleStatus
		deduct bool
		noop   bool
		err    error
	}{
		{
			name:   "pending to confirmed deducts stock",
			prev:   model.SaleStatusPending,
			next:   model.SaleStatusConfirmed,
			deduct: true,
		},
		{
			name: "pending to cancelled has no stock effect",
			prev: model.SaleStatusPending,
			next: model.SaleStatusCancelled,
		},
		{
			name: "confirming twice is a no-op",
			prev: model.SaleStatusConfirmed,
			next: model.SaleStatusConfirmed,
			noop: true,
		},
		{
			name: "cancelling twice is a no-op",
			prev: model.SaleStatusCancelled,
			next: model.SaleStatusCancelled,
			noop: true,
		},
		{
			name: "saving pending over pending is a no-op",
			prev: model.SaleStatusPending,
			next: model.SaleStatusPending,
			noop: true,
		},
		{
			name: "confirmed cannot be cancelled",
			prev: model.SaleStatusConfirmed,
			next: model.SaleStatusCancelled,
			err:  model.ErrInvalidStatusTransition,
		},
		{
			name: "cancelled cannot be confirmed",
			prev: model.SaleStatusCancelled,
			next: model.SaleStatusConfirmed,
			err:  model.ErrInvalidStatusTransition,
		},
		{
			name: "confirmed cannot go back to pending",
			prev: model.SaleStatusConfirmed,
			next: model.SaleStatusPending,
			err:  model.ErrInvalidStatusTransition,
		},
		{
			name: "pending rejects unknown target",
			prev: model.SaleStatusPending,
			next: model.SaleStatus("SHIPPED"),
			err:  model.ErrInvalidStatusTransition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deduct, noop, err := ResolveTransition(tc.prev, tc.next)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.deduct, deduct)
			assert.Equal(t, tc.noop, noop)
		})
	}
}
