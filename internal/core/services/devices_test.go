package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenlock-labs/tabsync/internal/adapters/driven/storage/memory"
	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

func newTestService() (*DeviceService, *memory.ClientsAndTabsStore) {
	store := memory.NewClientsAndTabsStore()
	return NewDeviceService(store, store), store
}

func strPtr(s string) *string {
	return &s
}

func TestListDevices(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.ReplaceRemoteDevices(ctx, []domain.RemoteDevice{
		{GUID: "fxa-1", Name: "Laptop"},
	}))
	_, err := store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "Laptop", Modified: 1, FxADeviceID: "fxa-1"})
	require.NoError(t, err)

	devices, err := svc.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "c1", devices[0].Client.GUID)
}

func TestTabsForDevice(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := store.ReplaceTabs(ctx, strPtr("c1"), []domain.Tab{
		{ClientGUID: strPtr("c1"), URL: "https://example.com", Title: "Tab", LastUsed: 1},
	})
	require.NoError(t, err)

	tabs, err := svc.TabsForDevice(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, tabs, 1)
}

func TestTabsForDevice_EmptyGUIDRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.TabsForDevice(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplaceLocalTabs_ForcesLocalOwnership(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// Caller-supplied ownership must not leak through.
	count, err := svc.ReplaceLocalTabs(ctx, []domain.Tab{
		{ClientGUID: strPtr("someone-else"), URL: "https://example.com", Title: "Tab", LastUsed: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	local, err := store.GetTabsForClient(ctx, nil)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Nil(t, local[0].ClientGUID)

	foreign, err := store.GetTabsForClient(ctx, strPtr("someone-else"))
	require.NoError(t, err)
	assert.Empty(t, foreign)
}

func TestLocalTabs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ReplaceLocalTabs(ctx, []domain.Tab{
		{URL: "https://example.com", Title: "Tab", LastUsed: 1},
	})
	require.NoError(t, err)

	tabs, err := svc.LocalTabs(ctx)
	require.NoError(t, err)
	assert.Len(t, tabs, 1)
}

func TestForgetDevice(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "Laptop"})
	require.NoError(t, err)

	require.NoError(t, svc.ForgetDevice(ctx, "c1"))

	_, err = store.GetClient(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForgetDevice_EmptyGUIDRejected(t *testing.T) {
	svc, _ := newTestService()

	err := svc.ForgetDevice(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReset_PreservesLocalTabs(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "Laptop"})
	require.NoError(t, err)
	_, err = svc.ReplaceLocalTabs(ctx, []domain.Tab{
		{URL: "https://example.com", Title: "Tab", LastUsed: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	guids, err := store.GetClientGUIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, guids)

	tabs, err := svc.LocalTabs(ctx)
	require.NoError(t, err)
	assert.Len(t, tabs, 1)
}
