package notifications

import (
	"context"
	"errors"
	"testing"

	"agrimart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	inserted []models.Notification
	failFor  map[string]bool
	failAll  bool
}

func (f *fakeStore) Insert(_ context.Context, n models.Notification) error {
	if f.failAll || f.failFor[n.UserID] {
		return errors.New("store down")
	}
	f.inserted = append(f.inserted, n)
	return nil
}

func TestCreateReturnsNotification(t *testing.T) {
	store := &fakeStore{}
	svc := NewServiceWithStore(store)

	n := svc.Create(context.Background(), "u1", models.NotifOrderStatus,
		"Order updated", "pending -> paid", map[string]any{"orderid": "o1"})

	require.NotNil(t, n)
	assert.Equal(t, "u1", n.UserID)
	assert.Equal(t, models.NotifOrderStatus, n.Type)
	assert.NotEmpty(t, n.NotificationID)
	assert.False(t, n.IsRead)
	require.Len(t, store.inserted, 1)
}

func TestCreateSwallowsStoreFailure(t *testing.T) {
	svc := NewServiceWithStore(&fakeStore{failAll: true})

	// A failing store must never panic or surface an error; callers are
	// fire-and-forget.
	n := svc.Create(context.Background(), "u1", models.NotifTransactionApproved,
		"Payment approved", "", nil)

	assert.Nil(t, n)
}

func TestCreateBulkFiltersFailures(t *testing.T) {
	store := &fakeStore{failFor: map[string]bool{"u2": true}}
	svc := NewServiceWithStore(store)

	out := svc.CreateBulk(context.Background(), []string{"u1", "u2", "u3"},
		models.NotifTransactionApproved, "Payment approved", "", nil)

	require.Len(t, out, 2)
	assert.Equal(t, "u1", out[0].UserID)
	assert.Equal(t, "u3", out[1].UserID)
}
