package linstor

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

func (c *Client) StoragePoolDefinitionCreate(ctx context.Context, name string) ([]Result, error) {
	body := StoragePoolDefinition{StoragePoolName: name}
	return c.execute(ctx, APICrtStorPoolDfn, http.MethodPost, apiPath("storage-pool-definitions"), body)
}

func (c *Client) StoragePoolDefinitionModify(ctx context.Context, name string, props PropsModify) ([]Result, error) {
	return c.execute(ctx, APIModStorPoolDfn, http.MethodPut, apiPath("storage-pool-definitions", name), props)
}

func (c *Client) StoragePoolDefinitionDelete(ctx context.Context, name string) ([]Result, error) {
	return c.execute(ctx, APIDelStorPoolDfn, http.MethodDelete, apiPath("storage-pool-definitions", name), nil)
}

func (c *Client) StoragePoolDefinitionList(ctx context.Context) ([]Result, error) {
	return c.execute(ctx, APILstStorPoolDfn, http.MethodGet, apiPath("storage-pool-definitions"), nil)
}

func (c *Client) StoragePoolDefinitions(ctx context.Context) (*StoragePoolDefinitionResponse, error) {
	return fetchOne[*StoragePoolDefinitionResponse](ctx, c, APILstStorPoolDfn, apiPath("storage-pool-definitions"))
}

// MaxVolumeSizes asks which storage pools could hold a volume placed
// according to filter, and how large it could be. PlaceCount is required.
func (c *Client) MaxVolumeSizes(ctx context.Context, filter AutoSelectFilter) ([]Result, error) {
	body := AutoSelectFilter{
		PlaceCount:           filter.PlaceCount,
		StoragePool:          filter.StoragePool,
		NotPlaceWithRsc:      filter.NotPlaceWithRsc,
		NotPlaceWithRscRegex: filter.NotPlaceWithRscRegex,
		ReplicasOnSame:       filter.ReplicasOnSame,
		ReplicasOnDifferent:  filter.ReplicasOnDifferent,
	}
	return c.execute(ctx, APIQryMaxVlmSize, http.MethodOptions, apiPath("query-max-volume-size"), body)
}

// StoragePoolCreateRequest describes a storage pool on one node. The
// controller creates a missing storage pool definition implicitly.
type StoragePoolCreateRequest struct {
	Node   string
	Name   string
	Driver string
	// DriverPool names the backing pool, e.g. "vg/thinpool" for LVM_THIN.
	DriverPool  string
	SharedSpace string
	Props       map[string]string
}

type storagePoolCreateBody struct {
	StoragePoolName  string            `json:"storage_pool_name"`
	ProviderKind     string            `json:"provider_kind"`
	FreeSpaceMgrName string            `json:"free_space_mgr_name,omitempty"`
	Props            map[string]string `json:"props"`
}

func (c *Client) StoragePoolCreate(ctx context.Context, req StoragePoolCreateRequest) ([]Result, error) {
	if !slices.Contains(storageDrivers, req.Driver) {
		return nil, argumentErrorf("unknown storage driver: %s", req.Driver)
	}
	props, err := StorageDriverPoolProps(req.Driver, req.DriverPool)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Props {
		props[k] = v
	}

	body := storagePoolCreateBody{
		StoragePoolName:  req.Name,
		ProviderKind:     req.Driver,
		FreeSpaceMgrName: req.SharedSpace,
		Props:            props,
	}
	return c.execute(ctx, APICrtStorPool, http.MethodPost, apiPath("nodes", req.Node, "storage-pools"), body)
}

// StorageDriverPoolProps maps the backing pool of a driver to the storage
// pool properties the controller expects.
func StorageDriverPoolProps(driver, pool string) (map[string]string, error) {
	props := map[string]string{}
	if driver == DriverDiskless {
		return props, nil
	}
	if pool == "" {
		return nil, argumentErrorf("driver %s needs a driver pool name", driver)
	}

	switch driver {
	case DriverLVM:
		props[KeyStorDriverLvmVg] = pool
	case DriverLVMThin:
		vg, thin, ok := strings.Cut(pool, "/")
		if !ok || vg == "" || thin == "" || strings.Contains(thin, "/") {
			return nil, argumentErrorf("pool name '%s' does not have format vg/pool", pool)
		}
		props[KeyStorDriverLvmVg] = vg
		props[KeyStorDriverThinPool] = thin
	case DriverZFS:
		props[KeyStorDriverZPool] = pool
	case DriverZFSThin:
		props[KeyStorDriverZPoolThin] = pool
	case DriverFile, DriverFileThin:
		props[KeyStorDriverFileDir] = pool
	}
	return props, nil
}

func (c *Client) StoragePoolModify(ctx context.Context, node, name string, props PropsModify) ([]Result, error) {
	return c.execute(ctx, APIModStorPool, http.MethodPut, apiPath("nodes", node, "storage-pools", name), props)
}

func (c *Client) StoragePoolDelete(ctx context.Context, node, name string) ([]Result, error) {
	return c.execute(ctx, APIDelStorPool, http.MethodDelete, apiPath("nodes", node, "storage-pools", name), nil)
}

func storagePoolListPath(nodes, pools []string) string {
	q := url.Values{}
	filterQuery(q, "nodes", nodes)
	filterQuery(q, "storage_pools", pools)
	return withQuery(apiPath("view", "storage-pools"), q)
}

// StoragePoolList lists storage pools, optionally restricted to nodes and
// pool names.
func (c *Client) StoragePoolList(ctx context.Context, nodes, pools []string) ([]Result, error) {
	return c.execute(ctx, APILstStorPool, http.MethodGet, storagePoolListPath(nodes, pools), nil)
}

func (c *Client) StoragePools(ctx context.Context, nodes, pools []string) (*StoragePoolListResponse, error) {
	return fetchOne[*StoragePoolListResponse](ctx, c, APILstStorPool, storagePoolListPath(nodes, pools))
}
