package linstor

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okReplies = []any{statusReply(1, "ok")}

func TestAPIPath(t *testing.T) {
	assert.Equal(t, "/v1/nodes", apiPath("nodes"))
	assert.Equal(t, "/v1/nodes/a%2Fb/net-interfaces/eth%200", apiPath("nodes", "a/b", "net-interfaces", "eth 0"))
}

func TestNodeCreate(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		req      NodeCreateRequest
		wantBody string
	}{
		{
			name:    "satellite plain",
			version: "1.0.6",
			req:     NodeCreateRequest{Name: "alpha", Type: NodeTypeSatellite, Address: "10.0.0.1"},
			wantBody: `{"name":"alpha","type":"Satellite","net_interfaces":[
				{"name":"default","address":"10.0.0.1","satellite_port":3366,"satellite_encryption_type":"PLAIN"}]}`,
		},
		{
			name:    "controller ssl with is_active",
			version: "1.0.7",
			req:     NodeCreateRequest{Name: "ctrl", Type: NodeTypeController, Address: "10.0.0.2", ComType: NetComTypeSSL},
			wantBody: `{"name":"ctrl","type":"Controller","net_interfaces":[
				{"name":"default","address":"10.0.0.2","satellite_port":3377,"satellite_encryption_type":"SSL","is_active":true}]}`,
		},
		{
			name:    "explicit port and interface",
			version: "1.0.4",
			req: NodeCreateRequest{
				Name: "beta", Type: NodeTypeCombined, Address: "10.0.0.3",
				ComType: NetComTypeSSL, Port: 4000, NetIfName: "data",
			},
			wantBody: `{"name":"beta","type":"Combined","net_interfaces":[
				{"name":"data","address":"10.0.0.3","satellite_port":4000,"satellite_encryption_type":"SSL"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeController(t, tt.version)
			fc.reply("/v1/nodes", http.StatusCreated, okReplies)
			c := connectedClient(t, fc)

			results, err := c.NodeCreate(context.Background(), tt.req)
			require.NoError(t, err)
			assert.True(t, AllSuccess(results))

			req := fc.lastRequest("/v1/nodes")
			assert.Equal(t, http.MethodPost, req.Method)
			assert.JSONEq(t, tt.wantBody, string(req.Body))
		})
	}
}

func TestNodeCreateRejectsUnknownType(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	c := connectedClient(t, fc)

	_, err := c.NodeCreate(context.Background(), NodeCreateRequest{Name: "alpha", Type: "Toaster"})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "unknown node type 'Toaster'. Known types are: Controller, Auxiliary, Combined, Satellite", err.Error())
	assert.Zero(t, fc.hitCount("/v1/nodes"))
}

func TestNodeReconnectConcatenatesReplies(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/nodes/{node}/reconnect", http.StatusOK, okReplies)
	c := connectedClient(t, fc)

	results, err := c.NodeReconnect(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, http.MethodPut, fc.lastRequest("/v1/nodes/c/reconnect").Method)
}

func TestStoragePoolCreate(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/nodes/alpha/storage-pools", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	_, err := c.StoragePoolCreate(context.Background(), StoragePoolCreateRequest{
		Node:       "alpha",
		Name:       "thin1",
		Driver:     DriverLVMThin,
		DriverPool: "vg0/thin",
		Props:      map[string]string{"Aux/tier": "fast"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"storage_pool_name":"thin1","provider_kind":"LVM_THIN","props":{
		"StorDriver/LvmVg":"vg0","StorDriver/ThinPool":"thin","Aux/tier":"fast"}}`,
		string(fc.lastRequest("/v1/nodes/alpha/storage-pools").Body))

	_, err = c.StoragePoolCreate(context.Background(), StoragePoolCreateRequest{
		Node: "alpha", Name: "dl", Driver: DriverDiskless,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"storage_pool_name":"dl","provider_kind":"DISKLESS","props":{}}`,
		string(fc.lastRequest("/v1/nodes/alpha/storage-pools").Body))
}

func TestStoragePoolCreateValidation(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	c := connectedClient(t, fc)

	tests := []struct {
		req  StoragePoolCreateRequest
		want string
	}{
		{StoragePoolCreateRequest{Node: "a", Name: "p", Driver: "BTRFS", DriverPool: "x"}, "unknown storage driver: BTRFS"},
		{StoragePoolCreateRequest{Node: "a", Name: "p", Driver: DriverLVMThin, DriverPool: "vg0"}, "pool name 'vg0' does not have format vg/pool"},
		{StoragePoolCreateRequest{Node: "a", Name: "p", Driver: DriverZFS}, "driver ZFS needs a driver pool name"},
	}
	for _, tt := range tests {
		_, err := c.StoragePoolCreate(context.Background(), tt.req)
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, tt.want, err.Error())
	}
	assert.Zero(t, fc.hitCount("/v1/nodes/a/storage-pools"))
}

func TestStorageDriverPoolProps(t *testing.T) {
	props, err := StorageDriverPoolProps(DriverLVM, "vg0")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyStorDriverLvmVg: "vg0"}, props)

	props, err = StorageDriverPoolProps(DriverFileThin, "/srv/pool")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyStorDriverFileDir: "/srv/pool"}, props)
}

func TestStoragePoolListFilters(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/view/storage-pools", http.StatusOK, []map[string]any{
		{"storage_pool_name": "p1", "node_name": "a", "provider_kind": DriverLVMThin, "free_capacity": 100},
	})
	c := connectedClient(t, fc)

	pools, err := c.StoragePools(context.Background(), []string{"a", "b"}, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, pools.StoragePools, 1)
	assert.True(t, pools.StoragePools[0].IsThin())
	assert.Equal(t, "nodes=a&nodes=b&storage_pools=p1", fc.lastRequest("/v1/view/storage-pools").Query)
}

func TestMaxVolumeSizes(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/query-max-volume-size", http.StatusOK, map[string]any{
		"candidates": []map[string]any{{"storage_pool": "p1", "max_volume_size_kib": 4096, "all_thin": true}},
	})
	c := connectedClient(t, fc)

	results, err := c.MaxVolumeSizes(context.Background(), AutoSelectFilter{PlaceCount: 2, LayerStack: []string{"drbd"}})
	require.NoError(t, err)
	sizes, err := expectOne[*MaxVolumeSizeResponse](results)
	require.NoError(t, err)
	require.Len(t, sizes.Candidates, 1)
	assert.Equal(t, int64(4096), sizes.Candidates[0].MaxVolumeSizeKib)

	req := fc.lastRequest("/v1/query-max-volume-size")
	assert.Equal(t, http.MethodOptions, req.Method)
	assert.JSONEq(t, `{"place_count":2}`, string(req.Body))
}

func TestResourceGroupsRequireVersion(t *testing.T) {
	fc := newFakeController(t, "1.0.7")
	c := connectedClient(t, fc)

	_, err := c.ResourceGroupCreate(context.Background(), ResourceGroupRequest{Name: "rg"})
	var verErr *VersionError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "1.0.8", verErr.Required)

	_, err = c.VolumeGroups(context.Background(), "rg")
	require.ErrorAs(t, err, &verErr)
	assert.Zero(t, fc.hitCount("/v1/resource-groups"))
}

func TestResourceGroupCreate(t *testing.T) {
	fc := newFakeController(t, "1.0.8")
	fc.reply("/v1/resource-groups", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	empty := ""
	_, err := c.ResourceGroupCreate(context.Background(), ResourceGroupRequest{
		Name:        "rg",
		Description: &empty,
		Filter:      AutoSelectFilter{PlaceCount: 2, LayerStack: []string{"drbd", "storage"}},
		Props:       PropsModify{OverrideProps: map[string]string{"a": "b"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"rg","props":{"a":"b"},
		"select_filter":{"place_count":2,"layer_stack":["drbd","storage"]},
		"layer_list":["drbd","storage"]}`,
		string(fc.lastRequest("/v1/resource-groups").Body))
}

func TestResourceGroupModify(t *testing.T) {
	fc := newFakeController(t, "1.0.8")
	fc.reply("/v1/resource-groups/rg", http.StatusOK, okReplies)
	c := connectedClient(t, fc)

	desc := "gold tier"
	_, err := c.ResourceGroupModify(context.Background(), ResourceGroupRequest{
		Name:        "rg",
		Description: &desc,
		Props:       PropsModify{DeleteProps: []string{"a"}},
	})
	require.NoError(t, err)
	req := fc.lastRequest("/v1/resource-groups/rg")
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"description":"gold tier","select_filter":{},"delete_props":["a"]}`, string(req.Body))
}

func TestResourceGroupSpawn(t *testing.T) {
	fc := newFakeController(t, "1.0.8")
	fc.reply("/v1/resource-groups/rg/spawn", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	_, err := c.ResourceGroupSpawn(context.Background(), SpawnRequest{
		Group:              "rg",
		ResourceDefinition: "vol1",
		VolumeSizes:        []any{"1G", 2048},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"resource_definition_name":"vol1","volume_sizes":[1048576,2048],
		"partial":false,"definitions_only":false}`,
		string(fc.lastRequest("/v1/resource-groups/rg/spawn").Body))

	_, err = c.ResourceGroupSpawn(context.Background(), SpawnRequest{Group: "rg", VolumeSizes: []any{"7 lightyears"}})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 1, fc.hitCount("/v1/resource-groups/rg/spawn"))
}

func TestResourceDefinitionListWithVolumeDefinitions(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions", http.StatusOK, []map[string]any{
		{"name": "r1", "props": map[string]string{"Aux/a": "1", "DrbdOptions/b": "2"}},
		{"name": "r2"},
	})
	fc.reply("/v1/resource-definitions/r1/volume-definitions", http.StatusOK, []map[string]any{
		{"volume_number": 0, "size_kib": 1024},
		{"volume_number": 1, "size_kib": 2048},
	})
	fc.reply("/v1/resource-definitions/r2/volume-definitions", http.StatusOK, []any{})
	c := connectedClient(t, fc, WithKeepAlive(true))

	rds, err := c.ResourceDefinitions(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, rds.ResourceDefinitions, 2)
	assert.Len(t, rds.ResourceDefinitions[0].VolumeDefinitions, 2)
	assert.Empty(t, rds.ResourceDefinitions[1].VolumeDefinitions)

	size, err := c.VolumeDefinitionSize(context.Background(), "R1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), size)

	_, err = c.VolumeDefinitionSize(context.Background(), "r1", 9)
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)

	props, err := c.ResourceDefinitionProps(context.Background(), "r1", "Aux/")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Aux/a": "1"}, props)
}

func TestResourceDefinitionCreate(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	port := 7000
	_, err := c.ResourceDefinitionCreate(context.Background(), ResourceDefinitionCreateRequest{
		Name:         "ignored",
		ExternalName: "my volume",
		Port:         &port,
		LayerList:    []string{"drbd", "storage"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"resource_definition":{"external_name":"my volume",
		"layer_data":[{"type":"drbd"},{"type":"storage"}]},"drbd_port":7000}`,
		string(fc.lastRequest("/v1/resource-definitions").Body))
}

func TestResourceCreateAndAutoPlaceStopsOnFailure(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions", http.StatusOK, []any{statusReply(MaskError|1, "exists")})
	c := connectedClient(t, fc)

	results, err := c.ResourceCreateAndAutoPlace(context.Background(), "r1", 1024, 2, "p1", false)
	require.NoError(t, err)
	assert.False(t, AllNoError(results))
	assert.Zero(t, fc.hitCount("/v1/resource-definitions/r1/volume-definitions"))
}

func TestResourceCreateAndAutoPlace(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions", http.StatusCreated, okReplies)
	fc.reply("/v1/resource-definitions/r1/volume-definitions", http.StatusCreated, okReplies)
	fc.reply("/v1/resource-definitions/r1/autoplace", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	results, err := c.ResourceCreateAndAutoPlace(context.Background(), "r1", 1024, 2, "p1", true)
	require.NoError(t, err)
	assert.True(t, AllSuccess(results))

	assert.JSONEq(t, `{"volume_definition":{"size_kib":1024,"props":{"StorPoolName":"p1"}}}`,
		string(fc.lastRequest("/v1/resource-definitions/r1/volume-definitions").Body))
	assert.JSONEq(t, `{"diskless_on_remaining":true,
		"select_filter":{"place_count":2,"storage_pool":"p1","diskless_on_remaining":true}}`,
		string(fc.lastRequest("/v1/resource-definitions/r1/autoplace").Body))
}

func TestResourceCreate(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions/r1/resources", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	_, err := c.ResourceCreate(context.Background(), nil)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)

	_, err = c.ResourceCreate(context.Background(), []ResourceData{
		{NodeName: "a", ResourceName: "r1", StoragePool: "p1"},
		{NodeName: "b", ResourceName: "r1", Diskless: true},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"resource":{"node_name":"a","props":{"StorPoolName":"p1"}}},
		{"resource":{"node_name":"b","flags":["DISKLESS"]}}]`,
		string(fc.lastRequest("/v1/resource-definitions/r1/resources").Body))
}

func TestResourceDeleteIfDiskless(t *testing.T) {
	tests := []struct {
		name       string
		listing    []map[string]any
		wantDelete bool
		wantMsg    string
	}{
		{
			name:    "missing",
			listing: []map[string]any{},
			wantMsg: "Resource r1 did not exist on node n1",
		},
		{
			name:    "diskful",
			listing: []map[string]any{{"name": "r1", "node_name": "n1"}},
			wantMsg: "Resource r1 not diskless on node n1, not deleted",
		},
		{
			name:       "diskless",
			listing:    []map[string]any{{"name": "r1", "node_name": "n1", "flags": []string{FlagDiskless}}},
			wantDelete: true,
			wantMsg:    "deleted",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeController(t, "1.0.4")
			fc.reply("/v1/view/resources", http.StatusOK, tt.listing)
			fc.reply("/v1/resource-definitions/r1/resources/n1", http.StatusOK, []any{statusReply(1, "deleted")})
			c := connectedClient(t, fc)

			results, err := c.ResourceDeleteIfDiskless(context.Background(), "n1", "r1")
			require.NoError(t, err)
			require.Len(t, results, 1)
			rc := results[0].(*APICallResponse)
			assert.True(t, rc.IsSuccess())
			assert.Equal(t, tt.wantMsg, rc.Message)

			assert.Equal(t, "nodes=n1&resources=r1", fc.lastRequest("/v1/view/resources").Query)
			if tt.wantDelete {
				assert.Equal(t, http.MethodDelete, fc.lastRequest("/v1/resource-definitions/r1/resources/n1").Method)
			} else {
				assert.Zero(t, fc.hitCount("/v1/resource-definitions/r1/resources/n1"))
			}
		})
	}
}

func TestVolumeModifyRequiresVersion(t *testing.T) {
	fc := newFakeController(t, "1.0.5")
	c := connectedClient(t, fc)

	_, err := c.VolumeModify(context.Background(), "n1", "r1", 0, PropsModify{})
	var verErr *VersionError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "volume modify not supported by server, REST-API-VERSION: 1.0.5; needed 1.0.6", err.Error())
}

func TestVolumesUsesViewFilters(t *testing.T) {
	fc := newFakeController(t, "1.0.6")
	fc.reply("/v1/view/resources", http.StatusOK, []map[string]any{
		{"name": "r1", "node_name": "n1", "volumes": []map[string]any{{"volume_number": 0, "storage_pool_name": "p1"}}},
	})
	c := connectedClient(t, fc)

	vols, err := c.Volumes(context.Background(), VolumeFilter{StoragePools: []string{"p1"}})
	require.NoError(t, err)
	require.Len(t, vols.Resources, 1)
	assert.Equal(t, "p1", vols.Resources[0].Volumes[0].StoragePoolName)
	assert.Equal(t, "storage_pools=p1", fc.lastRequest("/v1/view/resources").Query)
}

func TestResourceToggleDisk(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.handle("/v1/resource-definitions/r1/resources/n1/{rest:.*}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, okReplies)
	})
	c := connectedClient(t, fc, WithKeepAlive(true))

	tests := []struct {
		req  ToggleDiskRequest
		path string
	}{
		{ToggleDiskRequest{Node: "n1", Resource: "r1", StoragePool: "p1"}, "/v1/resource-definitions/r1/resources/n1/toggle-disk/diskful/p1"},
		{ToggleDiskRequest{Node: "n1", Resource: "r1", Diskless: true}, "/v1/resource-definitions/r1/resources/n1/toggle-disk/diskless"},
		{ToggleDiskRequest{Node: "n1", Resource: "r1", MigrateFrom: "n0"}, "/v1/resource-definitions/r1/resources/n1/migrate-disk/n0"},
	}
	for _, tt := range tests {
		_, err := c.ResourceToggleDisk(context.Background(), tt.req)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, fc.lastRequest(tt.path).Method)
	}
}

func TestSnapshotDefinitionListAggregates(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions", http.StatusOK, []map[string]any{{"name": "r1"}, {"name": "r2"}})
	fc.reply("/v1/resource-definitions/r1/snapshots", http.StatusOK, []map[string]any{
		{"name": "s1", "resource_name": "r1"},
	})
	fc.reply("/v1/resource-definitions/r2/snapshots", http.StatusOK, []map[string]any{
		{"name": "s2", "resource_name": "r2"},
		{"name": "s3", "resource_name": "r2"},
	})
	c := connectedClient(t, fc, WithKeepAlive(true))

	snaps, err := c.Snapshots(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(snaps.Snapshots))
	for _, s := range snaps.Snapshots {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"s1", "s2", "s3"}, names)
}

func TestSnapshotCreate(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/resource-definitions/r1/snapshots", http.StatusCreated, okReplies)
	c := connectedClient(t, fc)

	_, err := c.SnapshotCreate(context.Background(), "r1", "snap1", "n1", "n2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"snap1","nodes":["n1","n2"]}`,
		string(fc.lastRequest("/v1/resource-definitions/r1/snapshots").Body))
}

func TestErrorReportListPerNode(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.handle("/v1/error-reports", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"node_name": r.URL.Query().Get("node"), "filename": "ErrorReport-1.log"},
		})
	})
	c := connectedClient(t, fc, WithKeepAlive(true))

	results, err := c.ErrorReportList(context.Background(), ErrorReportFilter{
		Nodes: []string{"a", "b"},
		Since: time.UnixMilli(1000),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].(*ErrorReport).NodeName)
	assert.Equal(t, "b", results[1].(*ErrorReport).NodeName)
	assert.Equal(t, "node=b&since=1000&withContent=false", fc.lastRequest("/v1/error-reports").Query)
}

func TestErrorReportListByID(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.handle("/v1/error-reports/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"node_name": "a", "filename": "ErrorReport-X.log", "text": "trace"},
			{"node_name": "b", "filename": "ErrorReport-Y.log"},
		})
	})
	c := connectedClient(t, fc, WithKeepAlive(true))

	results, err := c.ErrorReportList(context.Background(), ErrorReportFilter{
		IDs:         []string{"X", "Z"},
		WithContent: true,
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "withContent=true", fc.lastRequest("/v1/error-reports/Z").Query)
}

func TestControllerCalls(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.handle("/v1/controller/properties", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"TcpPortAutoRange": "7000-7999"})
	}, http.MethodGet)
	fc.handle("/v1/controller/properties", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, okReplies)
	}, http.MethodPost)
	fc.reply("/v1/encryption/passphrase", http.StatusOK, okReplies)
	c := connectedClient(t, fc, WithKeepAlive(true))

	info, err := c.ControllerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LINSTOR,Controller,1.4.2,abc123,2020-01-01T00:00:00", info)

	props, err := c.ControllerProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7000-7999", props.Properties["TcpPortAutoRange"])

	_, err = c.CryptEnterPassphrase(context.Background(), "s3cret")
	require.NoError(t, err)
	req := fc.lastRequest("/v1/encryption/passphrase")
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `"s3cret"`, string(req.Body))

	_, err = c.ControllerDelProp(context.Background(), "TcpPortAutoRange")
	require.NoError(t, err)
	req = fc.lastRequest("/v1/controller/properties")
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"delete_props":["TcpPortAutoRange"]}`, string(req.Body))
}

func TestDrbdProxy(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.handle("/v1/resource-definitions/r1/drbd-proxy{rest:.*}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, okReplies)
	})
	c := connectedClient(t, fc, WithKeepAlive(true))

	port := 7100
	_, err := c.DrbdProxyEnable(context.Background(), "r1", "a", "b", &port)
	require.NoError(t, err)
	assert.JSONEq(t, `{"port":7100}`, string(fc.lastRequest("/v1/resource-definitions/r1/drbd-proxy/enable/a/b").Body))

	_, err = c.DrbdProxyDisable(context.Background(), "r1", "a", "b")
	require.NoError(t, err)
	assert.Empty(t, fc.lastRequest("/v1/resource-definitions/r1/drbd-proxy/disable/a/b").Body)

	_, err = c.DrbdProxyModify(context.Background(), "r1", DrbdProxyModifyRequest{
		CompressionProps: map[string]string{"level": "9"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(fc.lastRequest("/v1/resource-definitions/r1/drbd-proxy").Body))
}

func TestKeyValueStoreModify(t *testing.T) {
	fc := newFakeController(t, "1.0.4")
	fc.reply("/v1/key-value-store/cinder", http.StatusOK, okReplies)
	c := connectedClient(t, fc)

	_, err := c.KeyValueStoreModify(context.Background(), "cinder", PropsModify{
		OverrideProps: map[string]string{"vol/1": "r1"},
	})
	require.NoError(t, err)
	req := fc.lastRequest("/v1/key-value-store/cinder")
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"override_props":{"vol/1":"r1"}}`, string(req.Body))
}
