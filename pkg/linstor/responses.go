package linstor

import (
	"fmt"
	"strings"
)

// Result is one element returned by a controller call: either an
// *APICallResponse status reply or one of the structured response types of
// this package.
type Result interface {
	isResult()
}

// APICallResponse is a status reply with a bit encoded return code.
type APICallResponse struct {
	RetCode        int64             `json:"ret_code"`
	Message        string            `json:"message,omitempty"`
	Cause          string            `json:"cause,omitempty"`
	Correction     string            `json:"correction,omitempty"`
	Details        string            `json:"details,omitempty"`
	ErrorReportIDs []string          `json:"error_report_ids,omitempty"`
	ObjRefs        map[string]string `json:"obj_refs,omitempty"`
}

func (r *APICallResponse) category() int64 {
	return r.RetCode & MaskError
}

// IsError reports whether both category bits are set.
func (r *APICallResponse) IsError() bool {
	return r.category() == MaskError
}

func (r *APICallResponse) IsWarning() bool {
	return r.category() == MaskWarn
}

func (r *APICallResponse) IsInfo() bool {
	return r.category() == MaskInfo
}

// IsSuccess reports a reply with no category bits set.
func (r *APICallResponse) IsSuccess() bool {
	return r.category() == MaskSuccess
}

func (r *APICallResponse) severity() string {
	switch {
	case r.IsError():
		return "ERROR"
	case r.IsWarning():
		return "WARNING"
	case r.IsInfo():
		return "INFO"
	default:
		return "SUCCESS"
	}
}

func (r *APICallResponse) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", r.severity(), r.Message)
	if r.Cause != "" {
		fmt.Fprintf(&b, "\nCause: %s", r.Cause)
	}
	if r.Correction != "" {
		fmt.Fprintf(&b, "\nCorrection: %s", r.Correction)
	}
	if r.Details != "" {
		fmt.Fprintf(&b, "\nDetails: %s", r.Details)
	}
	if len(r.ErrorReportIDs) > 0 {
		fmt.Fprintf(&b, "\nShow reports: %s", strings.Join(r.ErrorReportIDs, ", "))
	}
	return b.String()
}

// ErrorReport is a diagnostic record kept by the controller or a satellite.
type ErrorReport struct {
	NodeName         string `json:"node_name"`
	ErrorTime        int64  `json:"error_time"`
	Filename         string `json:"filename"`
	Text             string `json:"text,omitempty"`
	Module           string `json:"module,omitempty"`
	Version          string `json:"version,omitempty"`
	Peer             string `json:"peer,omitempty"`
	Exception        string `json:"exception,omitempty"`
	ExceptionMessage string `json:"exception_message,omitempty"`
	OriginFile       string `json:"origin_file,omitempty"`
	OriginMethod     string `json:"origin_method,omitempty"`
	OriginLine       int    `json:"origin_line,omitempty"`
}

// ID derives the report id from its file name.
func (r *ErrorReport) ID() string {
	id := strings.TrimPrefix(r.Filename, "ErrorReport-")
	return strings.TrimSuffix(id, ".log")
}

type NodeListResponse struct {
	Nodes []Node `json:"nodes"`
}

// Node returns the named node or nil.
func (r *NodeListResponse) Node(name string) *Node {
	for i := range r.Nodes {
		if strings.EqualFold(r.Nodes[i].Name, name) {
			return &r.Nodes[i]
		}
	}
	return nil
}

type StoragePoolListResponse struct {
	StoragePools []StoragePool `json:"storage_pools"`
}

type StoragePoolDefinitionResponse struct {
	StoragePoolDefinitions []StoragePoolDefinition `json:"storage_pool_definitions"`
}

type ResourceDefinitionResponse struct {
	ResourceDefinitions []ResourceDefinition `json:"resource_definitions"`
}

type ResourceGroupResponse struct {
	ResourceGroups []ResourceGroup `json:"resource_groups"`
}

type VolumeGroupResponse struct {
	VolumeGroups []VolumeGroup `json:"volume_groups"`
}

type VolumeDefinitionResponse struct {
	VolumeDefinitions []VolumeDefinition `json:"volume_definitions"`
}

// ResourceResponse lists resources together with their volumes.
type ResourceResponse struct {
	Resources []Resource `json:"resources"`
}

type VolumeResponse struct {
	Resources []Resource `json:"resources"`
}

type SnapshotResponse struct {
	Snapshots []Snapshot `json:"snapshots"`
}

type ControllerProperties struct {
	Properties map[string]string `json:"properties"`
}

type ResourceConnectionsResponse struct {
	Connections []ResourceConnection `json:"resource_connections"`
}

type MaxVolumeSizeResponse struct {
	Candidates                      []MaxVolumeSizeCandidate `json:"candidates"`
	DefaultMaxOversubscriptionRatio float64                  `json:"default_max_oversubscription_ratio,omitempty"`
}

type KeyValueStoresResponse struct {
	Stores []KeyValueStore `json:"key_value_stores"`
}

// Instance returns the named store. A missing store yields an empty one.
func (r *KeyValueStoresResponse) Instance(name string) *KeyValueStore {
	for i := range r.Stores {
		if r.Stores[i].Name == name {
			return &r.Stores[i]
		}
	}
	return &KeyValueStore{Name: name, Props: map[string]string{}}
}

type ControllerVersion struct {
	Version        string `json:"version"`
	GitHash        string `json:"git_hash"`
	BuildTime      string `json:"build_time"`
	RESTAPIVersion string `json:"rest_api_version"`
}

func (*APICallResponse) isResult()               {}
func (*ErrorReport) isResult()                   {}
func (*NodeListResponse) isResult()              {}
func (*StoragePoolListResponse) isResult()       {}
func (*StoragePoolDefinitionResponse) isResult() {}
func (*ResourceDefinitionResponse) isResult()    {}
func (*ResourceGroupResponse) isResult()         {}
func (*VolumeGroupResponse) isResult()           {}
func (*VolumeDefinitionResponse) isResult()      {}
func (*ResourceResponse) isResult()              {}
func (*VolumeResponse) isResult()                {}
func (*SnapshotResponse) isResult()              {}
func (*ControllerProperties) isResult()          {}
func (*ResourceConnectionsResponse) isResult()   {}
func (*MaxVolumeSizeResponse) isResult()         {}
func (*KeyValueStoresResponse) isResult()        {}
func (*ControllerVersion) isResult()             {}

// FilterAPICallResponses returns the status replies of results.
func FilterAPICallResponses(results []Result) []*APICallResponse {
	var out []*APICallResponse
	for _, r := range results {
		if rc, ok := r.(*APICallResponse); ok {
			out = append(out, rc)
		}
	}
	return out
}

// AllNoError reports whether no status reply in results is an error.
func AllNoError(results []Result) bool {
	for _, rc := range FilterAPICallResponses(results) {
		if rc.IsError() {
			return false
		}
	}
	return true
}

// AllSuccess reports whether every status reply in results is a success.
func AllSuccess(results []Result) bool {
	for _, rc := range FilterAPICallResponses(results) {
		if !rc.IsSuccess() {
			return false
		}
	}
	return true
}

// ReturnIfFailure returns results if any status reply is not a success,
// nil otherwise.
func ReturnIfFailure(results []Result) []Result {
	if !AllSuccess(results) {
		return results
	}
	return nil
}

// ReturnIfError returns results if any status reply is an error, nil
// otherwise.
func ReturnIfError(results []Result) []Result {
	if !AllNoError(results) {
		return results
	}
	return nil
}

// expectOne returns the single structured result of a list call. A status
// reply in its place becomes an APICallError.
func expectOne[T Result](results []Result) (T, error) {
	var zero T
	if len(results) == 0 {
		return zero, ErrNoListResponse
	}
	if typed, ok := results[0].(T); ok {
		return typed, nil
	}
	if rc, ok := results[0].(*APICallResponse); ok {
		return zero, &APICallError{Response: rc}
	}
	return zero, &APICallError{Msg: fmt.Sprintf("unexpected response type %T", results[0])}
}
