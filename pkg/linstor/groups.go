package linstor

import (
	"context"
	"net/http"
	"strconv"
)

// ResourceGroupRequest describes a resource group to create or modify. For
// modify, a nil Description keeps the current one.
type ResourceGroupRequest struct {
	Name        string
	Description *string
	Filter      AutoSelectFilter
	Props       PropsModify
}

type resourceGroupBody struct {
	Name         string            `json:"name,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Props        map[string]string `json:"props,omitempty"`
	SelectFilter AutoSelectFilter  `json:"select_filter"`
	LayerList    []string          `json:"layer_list,omitempty"`
	PropsModify
}

func newResourceGroupBody(req ResourceGroupRequest) resourceGroupBody {
	return resourceGroupBody{
		Description:  req.Description,
		SelectFilter: req.Filter,
		LayerList:    req.Filter.LayerStack,
	}
}

func (c *Client) ResourceGroupCreate(ctx context.Context, req ResourceGroupRequest) ([]Result, error) {
	if err := c.requireVersion("resource groups", apiVersionGroups); err != nil {
		return nil, err
	}
	body := newResourceGroupBody(req)
	body.Name = req.Name
	if req.Description != nil && *req.Description == "" {
		body.Description = nil
	}
	body.Props = req.Props.OverrideProps
	return c.execute(ctx, APICrtRscGrp, http.MethodPost, apiPath("resource-groups"), body)
}

func (c *Client) ResourceGroupModify(ctx context.Context, req ResourceGroupRequest) ([]Result, error) {
	if err := c.requireVersion("resource groups", apiVersionGroups); err != nil {
		return nil, err
	}
	body := newResourceGroupBody(req)
	body.PropsModify = req.Props
	return c.execute(ctx, APIModRscGrp, http.MethodPut, apiPath("resource-groups", req.Name), body)
}

func (c *Client) ResourceGroupDelete(ctx context.Context, name string) ([]Result, error) {
	if err := c.requireVersion("resource groups", apiVersionGroups); err != nil {
		return nil, err
	}
	return c.execute(ctx, APIDelRscGrp, http.MethodDelete, apiPath("resource-groups", name), nil)
}

func (c *Client) ResourceGroupList(ctx context.Context) ([]Result, error) {
	if err := c.requireVersion("resource groups", apiVersionGroups); err != nil {
		return nil, err
	}
	return c.execute(ctx, APILstRscGrp, http.MethodGet, apiPath("resource-groups"), nil)
}

func (c *Client) ResourceGroups(ctx context.Context) (*ResourceGroupResponse, error) {
	if err := c.requireVersion("resource groups", apiVersionGroups); err != nil {
		return nil, err
	}
	return fetchOne[*ResourceGroupResponse](ctx, c, APILstRscGrp, apiPath("resource-groups"))
}

// SpawnRequest creates a resource definition from a resource group.
type SpawnRequest struct {
	Group              string
	ResourceDefinition string
	// VolumeSizes holds one size per volume, as KiB (int, int64) or as a
	// size string understood by ParseVolumeSize.
	VolumeSizes     []any
	Partial         bool
	DefinitionsOnly bool
}

type spawnBody struct {
	ResourceDefinitionName string  `json:"resource_definition_name"`
	VolumeSizes            []int64 `json:"volume_sizes"`
	Partial                bool    `json:"partial"`
	DefinitionsOnly        bool    `json:"definitions_only"`
}

func (c *Client) ResourceGroupSpawn(ctx context.Context, req SpawnRequest) ([]Result, error) {
	if err := c.requireVersion("resource groups", apiVersionGroups); err != nil {
		return nil, err
	}
	sizes := make([]int64, 0, len(req.VolumeSizes))
	for _, s := range req.VolumeSizes {
		kib, err := sizeKiB(s)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, kib)
	}
	body := spawnBody{
		ResourceDefinitionName: req.ResourceDefinition,
		VolumeSizes:            sizes,
		Partial:                req.Partial,
		DefinitionsOnly:        req.DefinitionsOnly,
	}
	return c.execute(ctx, APISpawnRscDfn, http.MethodPost, apiPath("resource-groups", req.Group, "spawn"), body)
}

type volumeGroupBody struct {
	VolumeNumber *int              `json:"volume_number,omitempty"`
	Props        map[string]string `json:"props,omitempty"`
}

// VolumeGroupCreate adds a volume group. A nil volumeNr lets the controller
// pick the next number.
func (c *Client) VolumeGroupCreate(ctx context.Context, group string, volumeNr *int, props map[string]string) ([]Result, error) {
	if err := c.requireVersion("volume groups", apiVersionGroups); err != nil {
		return nil, err
	}
	body := volumeGroupBody{VolumeNumber: volumeNr, Props: props}
	return c.execute(ctx, APICrtVlmGrp, http.MethodPost, apiPath("resource-groups", group, "volume-groups"), body)
}

func (c *Client) VolumeGroupModify(ctx context.Context, group string, volumeNr int, props PropsModify) ([]Result, error) {
	if err := c.requireVersion("volume groups", apiVersionGroups); err != nil {
		return nil, err
	}
	path := apiPath("resource-groups", group, "volume-groups", strconv.Itoa(volumeNr))
	return c.execute(ctx, APIModVlmGrp, http.MethodPut, path, props)
}

func (c *Client) VolumeGroupDelete(ctx context.Context, group string, volumeNr int) ([]Result, error) {
	if err := c.requireVersion("volume groups", apiVersionGroups); err != nil {
		return nil, err
	}
	path := apiPath("resource-groups", group, "volume-groups", strconv.Itoa(volumeNr))
	return c.execute(ctx, APIDelVlmGrp, http.MethodDelete, path, nil)
}

func (c *Client) VolumeGroups(ctx context.Context, group string) (*VolumeGroupResponse, error) {
	if err := c.requireVersion("volume groups", apiVersionGroups); err != nil {
		return nil, err
	}
	return fetchOne[*VolumeGroupResponse](ctx, c, APILstVlmGrp, apiPath("resource-groups", group, "volume-groups"))
}
