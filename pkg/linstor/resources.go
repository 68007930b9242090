package linstor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ResourceDefinitionCreateRequest describes a new resource definition. When
// ExternalName is set the controller derives the name from it.
type ResourceDefinitionCreateRequest struct {
	Name          string
	Port          *int
	ExternalName  string
	LayerList     []string
	ResourceGroup string
}

type resourceDefinitionBody struct {
	Name              string      `json:"name,omitempty"`
	ExternalName      string      `json:"external_name,omitempty"`
	LayerData         []LayerData `json:"layer_data,omitempty"`
	ResourceGroupName string      `json:"resource_group_name,omitempty"`
}

type resourceDefinitionCreateBody struct {
	ResourceDefinition resourceDefinitionBody `json:"resource_definition"`
	DrbdPort           *int                   `json:"drbd_port,omitempty"`
}

func (c *Client) ResourceDefinitionCreate(ctx context.Context, req ResourceDefinitionCreateRequest) ([]Result, error) {
	rd := resourceDefinitionBody{Name: req.Name, ResourceGroupName: req.ResourceGroup}
	if req.ExternalName != "" {
		rd.Name = ""
		rd.ExternalName = req.ExternalName
	}
	for _, layer := range req.LayerList {
		rd.LayerData = append(rd.LayerData, LayerData{Type: layer})
	}
	body := resourceDefinitionCreateBody{ResourceDefinition: rd, DrbdPort: req.Port}
	return c.execute(ctx, APICrtRscDfn, http.MethodPost, apiPath("resource-definitions"), body)
}

type resourceDefinitionModifyBody struct {
	DrbdPeerSlots *int `json:"drbd_peer_slots,omitempty"`
	PropsModify
}

// ResourceDefinitionModify changes properties and, when peerSlots is not nil,
// the DRBD peer slots of a resource definition.
func (c *Client) ResourceDefinitionModify(ctx context.Context, name string, props PropsModify, peerSlots *int) ([]Result, error) {
	body := resourceDefinitionModifyBody{DrbdPeerSlots: peerSlots, PropsModify: props}
	return c.execute(ctx, APIModRscDfn, http.MethodPut, apiPath("resource-definitions", name), body)
}

func (c *Client) ResourceDefinitionDelete(ctx context.Context, name string) ([]Result, error) {
	return c.execute(ctx, APIDelRscDfn, http.MethodDelete, apiPath("resource-definitions", name), nil)
}

// ResourceDefinitionList lists resource definitions. With
// withVolumeDefinitions set, the volume definitions of every resource
// definition are fetched as well.
func (c *Client) ResourceDefinitionList(ctx context.Context, withVolumeDefinitions bool) ([]Result, error) {
	results, err := c.execute(ctx, APILstRscDfn, http.MethodGet, apiPath("resource-definitions"), nil)
	if err != nil || !withVolumeDefinitions || len(results) == 0 {
		return results, err
	}
	rds, ok := results[0].(*ResourceDefinitionResponse)
	if !ok {
		return results, nil
	}

	for i := range rds.ResourceDefinitions {
		rd := &rds.ResourceDefinitions[i]
		vds, err := c.execute(ctx, APILstVlmDfn, http.MethodGet,
			apiPath("resource-definitions", rd.Name, "volume-definitions"), nil)
		if err != nil {
			return nil, err
		}
		if len(vds) == 0 {
			continue
		}
		switch v := vds[0].(type) {
		case *VolumeDefinitionResponse:
			rd.VolumeDefinitions = v.VolumeDefinitions
		case *APICallResponse:
			return vds, nil
		}
	}
	return results, nil
}

func (c *Client) ResourceDefinitions(ctx context.Context, withVolumeDefinitions bool) (*ResourceDefinitionResponse, error) {
	results, err := c.ResourceDefinitionList(ctx, withVolumeDefinitions)
	if err != nil {
		return nil, err
	}
	return expectOne[*ResourceDefinitionResponse](results)
}

// ResourceDefinitionProps returns the properties of the named resource
// definition whose keys start with namespace. An unknown resource definition
// yields an empty map.
func (c *Client) ResourceDefinitionProps(ctx context.Context, name, namespace string) (map[string]string, error) {
	rds, err := c.ResourceDefinitions(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, rd := range rds.ResourceDefinitions {
		if strings.EqualFold(rd.Name, name) {
			return filterProps(rd.Props, namespace), nil
		}
	}
	return map[string]string{}, nil
}

// VolumeDefinitionCreateRequest describes a new volume of a resource
// definition.
type VolumeDefinitionCreateRequest struct {
	Resource    string
	SizeKiB     int64
	VolumeNr    *int
	MinorNr     *int
	Encrypt     bool
	StoragePool string
}

type volumeDefinitionBody struct {
	VolumeNumber *int              `json:"volume_number,omitempty"`
	SizeKib      int64             `json:"size_kib"`
	Props        map[string]string `json:"props,omitempty"`
	Flags        []string          `json:"flags,omitempty"`
}

type volumeDefinitionCreateBody struct {
	VolumeDefinition volumeDefinitionBody `json:"volume_definition"`
	DrbdMinorNumber  *int                 `json:"drbd_minor_number,omitempty"`
}

func (c *Client) VolumeDefinitionCreate(ctx context.Context, req VolumeDefinitionCreateRequest) ([]Result, error) {
	vd := volumeDefinitionBody{VolumeNumber: req.VolumeNr, SizeKib: req.SizeKiB}
	if req.Encrypt {
		vd.Flags = []string{FlagEncrypted}
	}
	if req.StoragePool != "" {
		vd.Props = map[string]string{KeyStorPoolName: req.StoragePool}
	}
	body := volumeDefinitionCreateBody{VolumeDefinition: vd, DrbdMinorNumber: req.MinorNr}
	return c.execute(ctx, APICrtVlmDfn, http.MethodPost,
		apiPath("resource-definitions", req.Resource, "volume-definitions"), body)
}

type volumeDefinitionModifyBody struct {
	SizeKib int64 `json:"size_kib,omitempty"`
	PropsModify
}

// VolumeDefinitionModify changes properties and, when sizeKiB is positive,
// the size of a volume definition.
func (c *Client) VolumeDefinitionModify(ctx context.Context, resource string, volumeNr int, props PropsModify, sizeKiB int64) ([]Result, error) {
	body := volumeDefinitionModifyBody{SizeKib: sizeKiB, PropsModify: props}
	path := apiPath("resource-definitions", resource, "volume-definitions", strconv.Itoa(volumeNr))
	return c.execute(ctx, APIModVlmDfn, http.MethodPut, path, body)
}

func (c *Client) VolumeDefinitionDelete(ctx context.Context, resource string, volumeNr int) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "volume-definitions", strconv.Itoa(volumeNr))
	return c.execute(ctx, APIDelVlmDfn, http.MethodDelete, path, nil)
}

// VolumeDefinitionSize returns the size in KiB of a volume definition.
func (c *Client) VolumeDefinitionSize(ctx context.Context, resource string, volumeNr int) (int64, error) {
	rds, err := c.ResourceDefinitions(ctx, true)
	if err != nil {
		return 0, err
	}
	for _, rd := range rds.ResourceDefinitions {
		if !strings.EqualFold(rd.Name, resource) {
			continue
		}
		for _, vd := range rd.VolumeDefinitions {
			if vd.VolumeNumber == volumeNr {
				return vd.SizeKib, nil
			}
		}
	}
	return 0, &APICallError{Msg: fmt.Sprintf("could not find volume number %d in resource %s", volumeNr, resource)}
}

// ResourceData describes one resource to create on a node.
type ResourceData struct {
	NodeName     string
	ResourceName string
	Diskless     bool
	StoragePool  string
	NodeID       *int
	LayerList    []string
}

type resourceBody struct {
	NodeName string            `json:"node_name"`
	Props    map[string]string `json:"props,omitempty"`
	Flags    []string          `json:"flags,omitempty"`
}

type resourceCreateBody struct {
	Resource   resourceBody `json:"resource"`
	DrbdNodeID *int         `json:"drbd_node_id,omitempty"`
	LayerList  []string     `json:"layer_list,omitempty"`
}

// ResourceCreate creates resources of one resource definition. The resource
// name of the first entry selects the definition.
func (c *Client) ResourceCreate(ctx context.Context, rscs []ResourceData) ([]Result, error) {
	if len(rscs) == 0 {
		return nil, argumentErrorf("no resources to create")
	}
	body := make([]resourceCreateBody, 0, len(rscs))
	for _, r := range rscs {
		rsc := resourceBody{NodeName: r.NodeName}
		if r.StoragePool != "" {
			rsc.Props = map[string]string{KeyStorPoolName: r.StoragePool}
		}
		if r.Diskless {
			rsc.Flags = []string{FlagDiskless}
		}
		body = append(body, resourceCreateBody{Resource: rsc, DrbdNodeID: r.NodeID, LayerList: r.LayerList})
	}
	path := apiPath("resource-definitions", rscs[0].ResourceName, "resources")
	return c.execute(ctx, APICrtRsc, http.MethodPost, path, body)
}

type autoPlaceBody struct {
	DisklessOnRemaining bool             `json:"diskless_on_remaining"`
	SelectFilter        AutoSelectFilter `json:"select_filter"`
	LayerList           []string         `json:"layer_list,omitempty"`
}

// ResourceAutoPlace lets the controller place filter.PlaceCount replicas of
// the resource.
func (c *Client) ResourceAutoPlace(ctx context.Context, name string, filter AutoSelectFilter) ([]Result, error) {
	body := autoPlaceBody{SelectFilter: filter, LayerList: filter.LayerStack}
	if filter.DisklessOnRemaining != nil {
		body.DisklessOnRemaining = *filter.DisklessOnRemaining
	}
	return c.execute(ctx, APIAutoPlaceRsc, http.MethodPost, apiPath("resource-definitions", name, "autoplace"), body)
}

// ResourceCreateAndAutoPlace creates a resource definition with a single
// volume and auto-places it. It stops at the first step whose first reply is
// not a success and returns that step's replies.
func (c *Client) ResourceCreateAndAutoPlace(ctx context.Context, name string, sizeKiB int64, placeCount int, storagePool string, disklessOnRemaining bool) ([]Result, error) {
	replies, err := c.ResourceDefinitionCreate(ctx, ResourceDefinitionCreateRequest{Name: name})
	if err != nil || !firstIsSuccess(replies) {
		return replies, err
	}
	replies, err = c.VolumeDefinitionCreate(ctx, VolumeDefinitionCreateRequest{
		Resource:    name,
		SizeKiB:     sizeKiB,
		StoragePool: storagePool,
	})
	if err != nil || !firstIsSuccess(replies) {
		return replies, err
	}
	return c.ResourceAutoPlace(ctx, name, AutoSelectFilter{
		PlaceCount:          placeCount,
		StoragePool:         storagePool,
		DisklessOnRemaining: &disklessOnRemaining,
	})
}

func firstIsSuccess(replies []Result) bool {
	if len(replies) == 0 {
		return true
	}
	rc, ok := replies[0].(*APICallResponse)
	return !ok || rc.IsSuccess()
}

func (c *Client) ResourceModify(ctx context.Context, node, name string, props PropsModify) ([]Result, error) {
	path := apiPath("resource-definitions", name, "resources", node)
	return c.execute(ctx, APIModRsc, http.MethodPut, path, props)
}

func (c *Client) ResourceDelete(ctx context.Context, node, name string) ([]Result, error) {
	path := apiPath("resource-definitions", name, "resources", node)
	return c.execute(ctx, APIDelRsc, http.MethodDelete, path, nil)
}

// ResourceDeleteIfDiskless deletes the resource on node only if it is
// diskless. A missing resource and a resource with disk both count as
// success without deleting anything.
func (c *Client) ResourceDeleteIfDiskless(ctx context.Context, node, name string) ([]Result, error) {
	results, err := c.ResourceList(ctx, []string{node}, []string{name})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return successReply(fmt.Sprintf("Resource %s did not exist on node %s", name, node)), nil
	}
	rsp, ok := results[0].(*ResourceResponse)
	if !ok {
		return results, nil
	}
	if len(rsp.Resources) == 0 {
		return successReply(fmt.Sprintf("Resource %s did not exist on node %s", name, node)), nil
	}
	if rsp.Resources[0].IsDiskless() {
		return c.ResourceDelete(ctx, node, name)
	}
	return successReply(fmt.Sprintf("Resource %s not diskless on node %s, not deleted", name, node)), nil
}

// VolumeFilter restricts resource and volume listings. Empty fields do not
// filter.
type VolumeFilter struct {
	Nodes        []string
	StoragePools []string
	Resources    []string
}

func (f VolumeFilter) path() string {
	q := url.Values{}
	filterQuery(q, "nodes", f.Nodes)
	filterQuery(q, "storage_pools", f.StoragePools)
	filterQuery(q, "resources", f.Resources)
	return withQuery(apiPath("view", "resources"), q)
}

func (c *Client) ResourceList(ctx context.Context, nodes, resources []string) ([]Result, error) {
	path := VolumeFilter{Nodes: nodes, Resources: resources}.path()
	return c.execute(ctx, APILstRsc, http.MethodGet, path, nil)
}

func (c *Client) Resources(ctx context.Context, nodes, resources []string) (*ResourceResponse, error) {
	path := VolumeFilter{Nodes: nodes, Resources: resources}.path()
	return fetchOne[*ResourceResponse](ctx, c, APILstRsc, path)
}

// VolumeList lists resources with their volumes.
func (c *Client) VolumeList(ctx context.Context, filter VolumeFilter) ([]Result, error) {
	return c.execute(ctx, APILstVlm, http.MethodGet, filter.path(), nil)
}

func (c *Client) Volumes(ctx context.Context, filter VolumeFilter) (*VolumeResponse, error) {
	return fetchOne[*VolumeResponse](ctx, c, APILstVlm, filter.path())
}

func (c *Client) VolumeModify(ctx context.Context, node, resource string, volumeNr int, props PropsModify) ([]Result, error) {
	if err := c.requireVersion("volume modify", apiVersionVolumeModify); err != nil {
		return nil, err
	}
	path := apiPath("resource-definitions", resource, "resources", node, "volumes", strconv.Itoa(volumeNr))
	return c.execute(ctx, APIModVlm, http.MethodPut, path, props)
}

// ToggleDiskRequest switches a resource between diskless and diskful, or
// migrates its disk from another node when MigrateFrom is set.
type ToggleDiskRequest struct {
	Node        string
	Resource    string
	StoragePool string
	Diskless    bool
	MigrateFrom string
}

func (c *Client) ResourceToggleDisk(ctx context.Context, req ToggleDiskRequest) ([]Result, error) {
	segments := []string{"resource-definitions", req.Resource, "resources", req.Node}
	switch {
	case req.MigrateFrom != "":
		segments = append(segments, "migrate-disk", req.MigrateFrom)
	case req.Diskless:
		segments = append(segments, "toggle-disk", "diskless")
	default:
		segments = append(segments, "toggle-disk", "diskful")
	}
	if req.StoragePool != "" {
		segments = append(segments, req.StoragePool)
	}
	return c.execute(ctx, APIToggleDisk, http.MethodPut, apiPath(segments...), nil)
}
