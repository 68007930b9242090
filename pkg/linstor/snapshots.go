package linstor

import (
	"context"
	"net/http"
)

type snapshotCreateBody struct {
	Name  string   `json:"name"`
	Nodes []string `json:"nodes,omitempty"`
}

// SnapshotCreate snapshots a resource on nodes, or on all of its nodes when
// none are given.
func (c *Client) SnapshotCreate(ctx context.Context, resource, name string, nodes ...string) ([]Result, error) {
	body := snapshotCreateBody{Name: name, Nodes: nodes}
	return c.execute(ctx, APICrtSnapshot, http.MethodPost, apiPath("resource-definitions", resource, "snapshots"), body)
}

type snapshotRestoreBody struct {
	ToResource string   `json:"to_resource"`
	Nodes      []string `json:"nodes,omitempty"`
}

// SnapshotVolumeDefinitionRestore creates the volume definitions of
// toResource from a snapshot.
func (c *Client) SnapshotVolumeDefinitionRestore(ctx context.Context, fromResource, fromSnapshot, toResource string) ([]Result, error) {
	path := apiPath("resource-definitions", fromResource, "snapshot-restore-volume-definition", fromSnapshot)
	return c.execute(ctx, APIRestoreVlmDfn, http.MethodPost, path, snapshotRestoreBody{ToResource: toResource})
}

// SnapshotResourceRestore restores a snapshot into toResource on nodes.
func (c *Client) SnapshotResourceRestore(ctx context.Context, fromResource, fromSnapshot, toResource string, nodes ...string) ([]Result, error) {
	path := apiPath("resource-definitions", fromResource, "snapshot-restore-resource", fromSnapshot)
	body := snapshotRestoreBody{ToResource: toResource, Nodes: nodes}
	return c.execute(ctx, APIRestoreSnapshot, http.MethodPost, path, body)
}

func (c *Client) SnapshotDelete(ctx context.Context, resource, name string) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "snapshots", name)
	return c.execute(ctx, APIDelSnapshot, http.MethodDelete, path, nil)
}

// SnapshotRollback rolls a resource back to the state of a snapshot.
func (c *Client) SnapshotRollback(ctx context.Context, resource, name string) ([]Result, error) {
	path := apiPath("resource-definitions", resource, "snapshot-rollback", name)
	return c.execute(ctx, APIRollbackSnapshot, http.MethodPost, path, nil)
}

// SnapshotDefinitionList collects the snapshots of every resource definition
// into one SnapshotResponse. The first status reply received in place of a
// list is returned as is.
func (c *Client) SnapshotDefinitionList(ctx context.Context) ([]Result, error) {
	results, err := c.ResourceDefinitionList(ctx, false)
	if err != nil || len(results) == 0 {
		return results, err
	}
	rds, ok := results[0].(*ResourceDefinitionResponse)
	if !ok {
		return results, nil
	}

	all := &SnapshotResponse{Snapshots: []Snapshot{}}
	for _, rd := range rds.ResourceDefinitions {
		res, err := c.execute(ctx, APILstSnapshotDfn, http.MethodGet,
			apiPath("resource-definitions", rd.Name, "snapshots"), nil)
		if err != nil {
			return nil, err
		}
		if len(res) == 0 {
			continue
		}
		switch v := res[0].(type) {
		case *SnapshotResponse:
			all.Snapshots = append(all.Snapshots, v.Snapshots...)
		case *APICallResponse:
			return res, nil
		}
	}
	return []Result{all}, nil
}

func (c *Client) Snapshots(ctx context.Context) (*SnapshotResponse, error) {
	results, err := c.SnapshotDefinitionList(ctx)
	if err != nil {
		return nil, err
	}
	return expectOne[*SnapshotResponse](results)
}
