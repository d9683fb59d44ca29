package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplierService() *SupplierService {
	return NewSupplierService(testutil.NewMemorySupplierRepo())
}

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a supplier with contact details", func(t *testing.T) {
		svc := newSupplierService()

		resp, err := svc.Create(ctx, CreateSupplierRequest{
			Code:        "SUP-001",
			Name:        "Scholastic Press",
			ContactName: "Jordan Reed",
			Phone:       "555-0101",
			Email:       "orders@scholastic.example",
			Address:     "12 Warehouse Rd",
		})
		require.NoError(t, err)
		assert.Equal(t, "SUP-001", resp.Code)
		assert.Equal(t, "Scholastic Press", resp.Name)
		assert.Equal(t, "Jordan Reed", resp.ContactName)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		svc := newSupplierService()

		_, err := svc.Create(ctx, CreateSupplierRequest{Code: "SUP-001", Name: "First"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateSupplierRequest{Code: "SUP-001", Name: "Second"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		svc := newSupplierService()

		_, err := svc.Create(ctx, CreateSupplierRequest{Code: "SUP-002", Name: ""})
		require.Error(t, err)
	})
}

func TestSupplierService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newSupplierService()

	created, err := svc.Create(ctx, CreateSupplierRequest{Code: "SUP-010", Name: "Old Name"})
	require.NoError(t, err)

	resp, err := svc.Update(ctx, created.ID, UpdateSupplierRequest{
		Name:  "New Name",
		Phone: "555-0199",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, "555-0199", resp.Phone)

	_, err = svc.Update(ctx, uuid.New(), UpdateSupplierRequest{Name: "Ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSupplierService_SetDefaultDiscount(t *testing.T) {
	ctx := context.Background()
	svc := newSupplierService()

	created, err := svc.Create(ctx, CreateSupplierRequest{Code: "SUP-020", Name: "Discounted"})
	require.NoError(t, err)

	resp, err := svc.SetDefaultDiscount(ctx, created.ID, DiscountRequest{
		Kind:  "PERCENT",
		Value: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.Equal(t, "PERCENT", resp.DefaultDiscount.Kind)
	assert.True(t, decimal.NewFromInt(15).Equal(resp.DefaultDiscount.Value))

	_, err = svc.SetDefaultDiscount(ctx, created.ID, DiscountRequest{
		Kind:  "PERCENT",
		Value: decimal.NewFromInt(150),
	})
	require.Error(t, err)
}

func TestSupplierService_DeactivateActivate(t *testing.T) {
	ctx := context.Background()
	svc := newSupplierService()

	created, err := svc.Create(ctx, CreateSupplierRequest{Code: "SUP-030", Name: "Toggle"})
	require.NoError(t, err)

	resp, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	_, err = svc.Deactivate(ctx, created.ID)
	require.Error(t, err)

	resp, err = svc.Activate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}

func TestSupplierService_List(t *testing.T) {
	ctx := context.Background()
	svc := newSupplierService()

	_, err := svc.Create(ctx, CreateSupplierRequest{Code: "SUP-040", Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateSupplierRequest{Code: "SUP-041", Name: "Beta"})
	require.NoError(t, err)

	page, err := svc.List(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)
}
