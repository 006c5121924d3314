package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestReplaceTabs_ScopedByOwner(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	_, err := store.ReplaceTabs(ctx, strPtr("c1"), []domain.Tab{
		{ClientGUID: strPtr("c1"), URL: "https://remote.example.com", Title: "Remote", LastUsed: 1},
	})
	require.NoError(t, err)
	_, err = store.ReplaceTabs(ctx, nil, []domain.Tab{
		{URL: "https://local.example.com", Title: "Local", LastUsed: 1},
	})
	require.NoError(t, err)

	count, err := store.ReplaceTabs(ctx, nil, []domain.Tab{
		{URL: "https://local-new.example.com", Title: "Local New", LastUsed: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	local, err := store.GetTabsForClient(ctx, nil)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "https://local-new.example.com", local[0].URL)

	remote, err := store.GetTabsForClient(ctx, strPtr("c1"))
	require.NoError(t, err)
	assert.Len(t, remote, 1)
}

func TestUpsertClients_InsertAndUpdate(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	count, err := store.UpsertClients(ctx, []domain.Client{
		{GUID: "c1", Name: "One", Modified: 1},
		{GUID: "c2", Name: "Two", Modified: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "One Renamed", Modified: 3})
	require.NoError(t, err)

	got, err := store.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "One Renamed", got.Name)

	guids, err := store.GetClientGUIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, guids, 2)
}

func TestGetClient_NotFound(t *testing.T) {
	store := NewClientsAndTabsStore()

	_, err := store.GetClient(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetClientByFxADeviceID(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	_, err := store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "One", FxADeviceID: "fxa-1"})
	require.NoError(t, err)

	got, err := store.GetClientByFxADeviceID(ctx, "fxa-1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.GUID)

	_, err = store.GetClientByFxADeviceID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetClientsAndTabs_OrderingAndFilter(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	require.NoError(t, store.ReplaceRemoteDevices(ctx, []domain.RemoteDevice{
		{GUID: "fxa-a", Name: "A"},
		{GUID: "fxa-b", Name: "B"},
	}))

	_, err := store.UpsertClients(ctx, []domain.Client{
		{GUID: "A", Name: "Device A", Modified: 5, FxADeviceID: "fxa-a"},
		{GUID: "B", Name: "Device B", Modified: 10, FxADeviceID: "fxa-b"},
		{GUID: "stale", Name: "Stale", Modified: 99, FxADeviceID: "fxa-gone"},
	})
	require.NoError(t, err)

	_, err = store.ReplaceTabs(ctx, strPtr("B"), []domain.Tab{
		{ClientGUID: strPtr("B"), URL: "https://b.example.com/older", Title: "Older", LastUsed: 50},
		{ClientGUID: strPtr("B"), URL: "https://b.example.com/newer", Title: "Newer", LastUsed: 100},
	})
	require.NoError(t, err)

	got, err := store.GetClientsAndTabs(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "B", got[0].Client.GUID)
	assert.Equal(t, "A", got[1].Client.GUID)

	require.Len(t, got[0].Tabs, 2)
	assert.Equal(t, "https://b.example.com/newer", got[0].Tabs[0].URL)

	assert.NotNil(t, got[1].Tabs)
	assert.Empty(t, got[1].Tabs)
}

func TestDeleteClient(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	_, err := store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "One"})
	require.NoError(t, err)
	_, err = store.ReplaceTabs(ctx, strPtr("c1"), []domain.Tab{
		{ClientGUID: strPtr("c1"), URL: "https://example.com", Title: "Tab", LastUsed: 1},
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteClient(ctx, "c1"))

	_, err = store.GetClient(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tabs, err := store.GetTabsForClient(ctx, strPtr("c1"))
	require.NoError(t, err)
	assert.Empty(t, tabs)
}

func TestClear_PreservesLocalTabs(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	_, err := store.UpsertClient(ctx, domain.Client{GUID: "c1", Name: "One"})
	require.NoError(t, err)
	_, err = store.ReplaceTabs(ctx, strPtr("c1"), []domain.Tab{
		{ClientGUID: strPtr("c1"), URL: "https://remote.example.com", Title: "Remote", LastUsed: 1},
	})
	require.NoError(t, err)
	_, err = store.ReplaceTabs(ctx, nil, []domain.Tab{
		{URL: "https://local.example.com", Title: "Local", LastUsed: 1},
	})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	guids, err := store.GetClientGUIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, guids)

	local, err := store.GetTabsForClient(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, local, 1)

	remote, err := store.GetTabsForClient(ctx, strPtr("c1"))
	require.NoError(t, err)
	assert.Empty(t, remote)
}

func TestWipeTabs_And_WipeRemoteTabs(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	seed := func() {
		_, err := store.ReplaceTabs(ctx, strPtr("c1"), []domain.Tab{
			{ClientGUID: strPtr("c1"), URL: "https://remote.example.com", Title: "Remote", LastUsed: 1},
		})
		require.NoError(t, err)
		_, err = store.ReplaceTabs(ctx, nil, []domain.Tab{
			{URL: "https://local.example.com", Title: "Local", LastUsed: 1},
		})
		require.NoError(t, err)
	}

	seed()
	require.NoError(t, store.WipeRemoteTabs(ctx))
	local, err := store.GetTabsForClient(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, local, 1)
	remote, err := store.GetTabsForClient(ctx, strPtr("c1"))
	require.NoError(t, err)
	assert.Empty(t, remote)

	seed()
	require.NoError(t, store.WipeTabs(ctx))
	local, err = store.GetTabsForClient(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, local)
}

func TestReplaceRemoteDevices_KeepsCurrentDevice(t *testing.T) {
	store := NewClientsAndTabsStore()
	ctx := context.Background()

	store.devices["me"] = domain.RemoteDevice{GUID: "me", Name: "This Device", IsCurrentDevice: true}

	require.NoError(t, store.ReplaceRemoteDevices(ctx, []domain.RemoteDevice{
		{GUID: "peer", Name: "Peer"},
		{GUID: "self-incoming", Name: "Self", IsCurrentDevice: true},
	}))

	devices, err := store.GetRemoteDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "me", devices[0].GUID)
	assert.Equal(t, "peer", devices[1].GUID)
}
