package linstor

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// retCodeField marks an element of a payload as a status reply. This is the
// protocol discriminator between status replies and structured objects.
const retCodeField = "ret_code"

// decodeBody returns the payload of a response, inflating it when the
// response declares gzip content encoding.
func decodeBody(header http.Header, body []byte) ([]byte, error) {
	if !strings.EqualFold(strings.TrimSpace(header.Get("Content-Encoding")), "gzip") {
		return body, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "reading gzip header")
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "inflating gzip body")
	}
	return data, nil
}

// classify decodes the payload of a successful response for call.
func classify(call APICall, path string, status int, data []byte) ([]Result, error) {
	elems, err := splitPayload(data)
	if err != nil {
		return nil, &MalformedResponseError{Path: path, Status: status, Err: err}
	}

	kind := kindFor(call)
	var results []Result
	switch {
	case kind.wrapsElements():
		results, err = wrapEach(kind, elems)
	case isStatusList(elems):
		results, err = wrapEach(kindAPICallRc, elems)
	default:
		var res Result
		res, err = decodeStructured(kind, data)
		results = []Result{res}
	}
	if err != nil {
		return nil, &MalformedResponseError{Path: path, Status: status, Err: err}
	}
	return results, nil
}

// classifyFailure decodes the body of a response with status >= 400. Every
// element becomes a status reply.
func classifyFailure(path string, status int, data []byte) ([]Result, error) {
	elems, err := splitPayload(data)
	if err == nil {
		var results []Result
		if results, err = wrapEach(kindAPICallRc, elems); err == nil {
			return results, nil
		}
	}
	return nil, &MalformedResponseError{Path: path, Status: status, Err: err}
}

// splitPayload returns the elements of a top level JSON array. A top level
// object is returned as a single element.
func splitPayload(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if !json.Valid(trimmed) {
			var v map[string]any
			return nil, json.Unmarshal(trimmed, &v)
		}
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// isStatusList reports whether every element is an object carrying the
// return code field. An empty payload is not a status list.
func isStatusList(elems []json.RawMessage) bool {
	if len(elems) == 0 {
		return false
	}
	for _, e := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil {
			return false
		}
		if _, ok := fields[retCodeField]; !ok {
			return false
		}
	}
	return true
}

func wrapEach(kind responseKind, elems []json.RawMessage) ([]Result, error) {
	results := make([]Result, 0, len(elems))
	for i, e := range elems {
		var (
			res Result
			err error
		)
		if kind == kindErrorReport {
			res, err = decodeResult(e, func(v ErrorReport) Result { return &v })
		} else {
			res, err = decodeResult(e, func(v APICallResponse) Result { return &v })
		}
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		results = append(results, res)
	}
	return results, nil
}

// decodeStructured parses the whole payload as the structured type of kind.
func decodeStructured(kind responseKind, data []byte) (Result, error) {
	switch kind {
	case kindNodeList:
		return decodeResult(data, func(v []Node) Result { return &NodeListResponse{Nodes: v} })
	case kindStoragePoolList:
		return decodeResult(data, func(v []StoragePool) Result { return &StoragePoolListResponse{StoragePools: v} })
	case kindStoragePoolDefinitionList:
		return decodeResult(data, func(v []StoragePoolDefinition) Result {
			return &StoragePoolDefinitionResponse{StoragePoolDefinitions: v}
		})
	case kindResourceDefinitionList:
		return decodeResult(data, func(v []ResourceDefinition) Result {
			return &ResourceDefinitionResponse{ResourceDefinitions: v}
		})
	case kindResourceGroupList:
		return decodeResult(data, func(v []ResourceGroup) Result { return &ResourceGroupResponse{ResourceGroups: v} })
	case kindVolumeGroupList:
		return decodeResult(data, func(v []VolumeGroup) Result { return &VolumeGroupResponse{VolumeGroups: v} })
	case kindVolumeDefinitionList:
		return decodeResult(data, func(v []VolumeDefinition) Result {
			return &VolumeDefinitionResponse{VolumeDefinitions: v}
		})
	case kindResourceList:
		return decodeResult(data, func(v []Resource) Result { return &ResourceResponse{Resources: v} })
	case kindVolumeList:
		return decodeResult(data, func(v []Resource) Result { return &VolumeResponse{Resources: v} })
	case kindSnapshotList:
		return decodeResult(data, func(v []Snapshot) Result { return &SnapshotResponse{Snapshots: v} })
	case kindControllerProperties:
		return decodeResult(data, func(v map[string]string) Result { return &ControllerProperties{Properties: v} })
	case kindResourceConnectionList:
		return decodeResult(data, func(v []ResourceConnection) Result {
			return &ResourceConnectionsResponse{Connections: v}
		})
	case kindMaxVolumeSizes:
		return decodeResult(data, func(v MaxVolumeSizeResponse) Result { return &v })
	case kindKeyValueStoreList:
		return decodeResult(data, func(v []KeyValueStore) Result { return &KeyValueStoresResponse{Stores: v} })
	case kindControllerVersion:
		return decodeResult(data, func(v ControllerVersion) Result { return &v })
	default:
		return nil, errors.Errorf("no structured type for response kind %d", kind)
	}
}

func decodeResult[T any](data []byte, wrap func(T) Result) (Result, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return wrap(v), nil
}
