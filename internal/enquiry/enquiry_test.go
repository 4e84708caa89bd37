package enquiry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBolt(filepath.Join(t.TempDir(), "enquiries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestValidate(t *testing.T) {
	e := Enquiry{Name: " A ", Email: "nope", Message: "short"}
	err := Validate(&e)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalid))

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "message")
	require.Equal(t, "A", e.Name)

	ok := Enquiry{Name: "Asha", Email: "asha@example.in", Message: "Need a quote for 50 units"}
	require.NoError(t, Validate(&ok))
}

func TestSubmitStoresWithReference(t *testing.T) {
	svc := NewService(openTestStore(t))
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	first, err := svc.Submit(context.Background(), Enquiry{
		Name: "Asha", Email: "asha@example.in", Message: "Quote for the NPWT unit please", ProductID: "npwt-system",
	})
	require.NoError(t, err)
	require.Len(t, first.ID, 26)
	require.Equal(t, fixed, first.CreatedAt)

	second, err := svc.Submit(context.Background(), Enquiry{
		Name: "Ravi", Email: "ravi@example.in", Message: "Bulk pricing for gloves",
	})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	recent, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, second.ID, recent[0].ID)
	require.Equal(t, "npwt-system", recent[1].ProductID)

	limited, err := svc.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestSubmitRejectsInvalid(t *testing.T) {
	svc := NewService(openTestStore(t))
	_, err := svc.Submit(context.Background(), Enquiry{Name: "x"})
	require.ErrorIs(t, err, ErrInvalid)

	all, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, all)
}
