package linstor

import (
	"context"
	"net/http"
)

func (c *Client) ResourceConnectionModify(ctx context.Context, resource, nodeA, nodeB string, props PropsModify) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "resource-connections", nodeA, nodeB)
	return c.execute(ctx, APIModRscConn, http.MethodPut, path, props)
}

func (c *Client) ResourceConnectionList(ctx context.Context, resource string) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "resource-connections")
	return c.execute(ctx, APIReqRscConnList, http.MethodGet, path, nil)
}

func (c *Client) ResourceConnections(ctx context.Context, resource string) (*ResourceConnectionsResponse, error) {
	path := apiPath("resource-definitions", resource, "resource-connections")
	return fetchOne[*ResourceConnectionsResponse](ctx, c, APIReqRscConnList, path)
}

type drbdProxyEnableBody struct {
	Port *int `json:"port,omitempty"`
}

// DrbdProxyEnable enables DRBD Proxy on the connection between nodeA and
// nodeB. A nil port lets the controller choose.
func (c *Client) DrbdProxyEnable(ctx context.Context, resource, nodeA, nodeB string, port *int) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "drbd-proxy", "enable", nodeA, nodeB)
	return c.execute(ctx, APIEnableDrbdProxy, http.MethodPost, path, drbdProxyEnableBody{Port: port})
}

func (c *Client) DrbdProxyDisable(ctx context.Context, resource, nodeA, nodeB string) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "drbd-proxy", "disable", nodeA, nodeB)
	return c.execute(ctx, APIDisableDrbdProxy, http.MethodPost, path, nil)
}

// DrbdProxyModifyRequest configures DRBD Proxy of a resource definition.
// CompressionProps are sent only together with CompressionType.
type DrbdProxyModifyRequest struct {
	Props            PropsModify
	CompressionType  string
	CompressionProps map[string]string
}

type drbdProxyModifyBody struct {
	PropsModify
	CompressionType  string            `json:"compression_type,omitempty"`
	CompressionProps map[string]string `json:"compression_props,omitempty"`
}

func (c *Client) DrbdProxyModify(ctx context.Context, resource string, req DrbdProxyModifyRequest) ([]Result, error) {
	body := drbdProxyModifyBody{PropsModify: req.Props, CompressionType: req.CompressionType}
	if req.CompressionType != "" {
		body.CompressionProps = req.CompressionProps
	}
	return c.execute(ctx, APIModDrbdProxy, http.MethodPut, apiPath("resource-definitions", resource, "drbd-proxy"), body)
}
