package linstor

import (
	"context"
	"net/http"
)

func (c *Client) KeyValueStoreModify(ctx context.Context, instance string, props PropsModify) ([]Result, error) {
	return c.execute(ctx, APIModKvs, http.MethodPut, apiPath("key-value-store", instance), props)
}

// KeyValueStores returns every key value store instance.
func (c *Client) KeyValueStores(ctx context.Context) (*KeyValueStoresResponse, error) {
	return fetchOne[*KeyValueStoresResponse](ctx, c, APILstKvs, apiPath("key-value-store"))
}

// KeyValueStoreList returns the named instance. An unknown instance is
// returned empty.
func (c *Client) KeyValueStoreList(ctx context.Context, instance string) (*KeyValueStore, error) {
	kvs, err := c.KeyValueStores(ctx)
	if err != nil {
		return nil, err
	}
	return kvs.Instance(instance), nil
}
