package linstor

import (
	"context"
	"net/http"
	"slices"
	"strings"
)

// NodeCreateRequest describes a node and its first net interface.
type NodeCreateRequest struct {
	Name    string
	Type    string
	Address string

	// ComType defaults to NetComTypePlain.
	ComType string
	// Port defaults to the well known port of Type and ComType.
	Port int
	// NetIfName defaults to "default".
	NetIfName string
}

type netInterfaceBody struct {
	Name                    string `json:"name"`
	Address                 string `json:"address,omitempty"`
	SatellitePort           int    `json:"satellite_port,omitempty"`
	SatelliteEncryptionType string `json:"satellite_encryption_type,omitempty"`
	IsActive                *bool  `json:"is_active,omitempty"`
}

type nodeCreateBody struct {
	Name          string             `json:"name"`
	Type          string             `json:"type"`
	NetInterfaces []netInterfaceBody `json:"net_interfaces"`
}

type nodeModifyBody struct {
	NodeType string `json:"node_type,omitempty"`
	PropsModify
}

// NodeCreate registers a node with the controller.
func (c *Client) NodeCreate(ctx context.Context, req NodeCreateRequest) ([]Result, error) {
	if !slices.Contains(nodeTypes, req.Type) {
		return nil, argumentErrorf("unknown node type '%s'. Known types are: %s",
			req.Type, strings.Join(nodeTypes, ", "))
	}
	comType := req.ComType
	if comType == "" {
		comType = NetComTypePlain
	}
	port := req.Port
	if port == 0 {
		var err error
		if port, err = defaultNodePort(req.Type, comType); err != nil {
			return nil, err
		}
	}
	netIfName := req.NetIfName
	if netIfName == "" {
		netIfName = "default"
	}

	netIf := netInterfaceBody{
		Name:                    netIfName,
		Address:                 req.Address,
		SatellitePort:           port,
		SatelliteEncryptionType: comType,
	}
	if err := c.setNodeIsActive(&netIf, true); err != nil {
		return nil, err
	}

	body := nodeCreateBody{
		Name:          req.Name,
		Type:          req.Type,
		NetInterfaces: []netInterfaceBody{netIf},
	}
	return c.execute(ctx, APICrtNode, http.MethodPost, apiPath("nodes"), body)
}

func defaultNodePort(nodeType, comType string) (int, error) {
	switch comType {
	case NetComTypePlain:
		if nodeType == NodeTypeController {
			return DefaultCtrlPortPlain, nil
		}
		return DefaultStltPortPlain, nil
	case NetComTypeSSL:
		if nodeType == NodeTypeSatellite {
			return DefaultStltPortSSL, nil
		}
		return DefaultCtrlPortSSL, nil
	default:
		return 0, argumentErrorf("communication type %s has no default port", comType)
	}
}

// setNodeIsActive fills is_active on controllers that know the field. Older
// controllers select the active interface through a property.
func (c *Client) setNodeIsActive(netIf *netInterfaceBody, active bool) error {
	ok, err := c.versionAtLeast(apiVersionNodeIsActive)
	if err != nil {
		return err
	}
	if ok {
		netIf.IsActive = &active
	}
	return nil
}

// NodeModify changes the type or the properties of a node. An empty nodeType
// leaves the type unchanged.
func (c *Client) NodeModify(ctx context.Context, name, nodeType string, props PropsModify) ([]Result, error) {
	body := nodeModifyBody{NodeType: nodeType, PropsModify: props}
	return c.execute(ctx, APIModNode, http.MethodPut, apiPath("nodes", name), body)
}

func (c *Client) NodeDelete(ctx context.Context, name string) ([]Result, error) {
	return c.execute(ctx, APIDelNode, http.MethodDelete, apiPath("nodes", name), nil)
}

// NodeLost removes a node that will never come back.
func (c *Client) NodeLost(ctx context.Context, name string) ([]Result, error) {
	return c.execute(ctx, APILostNode, http.MethodDelete, apiPath("nodes", name, "lost"), nil)
}

// NodeReconnect makes the controller drop and re-establish the satellite
// connection of each node. The replies of all nodes are concatenated.
func (c *Client) NodeReconnect(ctx context.Context, names ...string) ([]Result, error) {
	var replies []Result
	for _, name := range names {
		res, err := c.execute(ctx, APINodeReconnect, http.MethodPut, apiPath("nodes", name, "reconnect"), nil)
		if err != nil {
			return nil, err
		}
		replies = append(replies, res...)
	}
	return replies, nil
}

func (c *Client) NodeList(ctx context.Context) ([]Result, error) {
	return c.execute(ctx, APILstNode, http.MethodGet, apiPath("nodes"), nil)
}

// Nodes returns the node list or the error reply sent in its place.
func (c *Client) Nodes(ctx context.Context) (*NodeListResponse, error) {
	return fetchOne[*NodeListResponse](ctx, c, APILstNode, apiPath("nodes"))
}

// NetInterfaceRequest describes a net interface of a node. Port and ComType
// are sent only when Port is set.
type NetInterfaceRequest struct {
	Node    string
	Name    string
	Address string
	Port    int
	ComType string
	Active  bool
}

func (c *Client) netInterfaceBody(req NetInterfaceRequest) (netInterfaceBody, error) {
	body := netInterfaceBody{Name: req.Name, Address: req.Address}
	if req.Port != 0 {
		body.SatellitePort = req.Port
		body.SatelliteEncryptionType = req.ComType
	}
	err := c.setNodeIsActive(&body, req.Active)
	return body, err
}

func (c *Client) NetInterfaceCreate(ctx context.Context, req NetInterfaceRequest) ([]Result, error) {
	body, err := c.netInterfaceBody(req)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, APICrtNetIf, http.MethodPost, apiPath("nodes", req.Node, "net-interfaces"), body)
}

// NetInterfaceModify updates an interface. An empty Address keeps the
// current one.
func (c *Client) NetInterfaceModify(ctx context.Context, req NetInterfaceRequest) ([]Result, error) {
	body, err := c.netInterfaceBody(req)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, APIModNetIf, http.MethodPut, apiPath("nodes", req.Node, "net-interfaces", req.Name), body)
}

func (c *Client) NetInterfaceDelete(ctx context.Context, node, name string) ([]Result, error) {
	return c.execute(ctx, APIDelNetIf, http.MethodDelete, apiPath("nodes", node, "net-interfaces", name), nil)
}

func (c *Client) NetInterfaceList(ctx context.Context, node string) ([]Result, error) {
	return c.execute(ctx, APILstNetIf, http.MethodGet, apiPath("nodes", node, "net-interfaces"), nil)
}
