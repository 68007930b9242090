package linstor

import "slices"

// Wire objects of the controller REST API. They carry data only; the
// controller owns their semantics.

type NetInterface struct {
	Name                    string `json:"name"`
	Address                 string `json:"address"`
	SatellitePort           int    `json:"satellite_port,omitempty"`
	SatelliteEncryptionType string `json:"satellite_encryption_type,omitempty"`
	IsActive                bool   `json:"is_active,omitempty"`
	UUID                    string `json:"uuid,omitempty"`
}

type Node struct {
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	Flags            []string          `json:"flags,omitempty"`
	Props            map[string]string `json:"props,omitempty"`
	NetInterfaces    []NetInterface    `json:"net_interfaces,omitempty"`
	ConnectionStatus string            `json:"connection_status,omitempty"`
	UUID             string            `json:"uuid,omitempty"`
}

type StoragePool struct {
	StoragePoolName   string            `json:"storage_pool_name"`
	NodeName          string            `json:"node_name"`
	ProviderKind      string            `json:"provider_kind"`
	Props             map[string]string `json:"props,omitempty"`
	StaticTraits      map[string]string `json:"static_traits,omitempty"`
	FreeCapacity      int64             `json:"free_capacity,omitempty"`
	TotalCapacity     int64             `json:"total_capacity,omitempty"`
	FreeSpaceMgrName  string            `json:"free_space_mgr_name,omitempty"`
	SupportsSnapshots bool              `json:"supports_snapshots,omitempty"`
	Reports           []APICallResponse `json:"reports,omitempty"`
	UUID              string            `json:"uuid,omitempty"`
}

// IsThin reports whether the pool provisions thinly.
func (p StoragePool) IsThin() bool {
	return p.ProviderKind == DriverLVMThin || p.ProviderKind == DriverZFSThin || p.ProviderKind == DriverFileThin
}

type StoragePoolDefinition struct {
	StoragePoolName string            `json:"storage_pool_name"`
	Props           map[string]string `json:"props,omitempty"`
}

type LayerData struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

type VolumeDefinition struct {
	VolumeNumber int               `json:"volume_number"`
	SizeKib      int64             `json:"size_kib"`
	Props        map[string]string `json:"props,omitempty"`
	Flags        []string          `json:"flags,omitempty"`
	LayerData    []LayerData       `json:"layer_data,omitempty"`
	UUID         string            `json:"uuid,omitempty"`
}

type ResourceDefinition struct {
	Name              string            `json:"name"`
	ExternalName      string            `json:"external_name,omitempty"`
	Props             map[string]string `json:"props,omitempty"`
	Flags             []string          `json:"flags,omitempty"`
	LayerData         []LayerData       `json:"layer_data,omitempty"`
	ResourceGroupName string            `json:"resource_group_name,omitempty"`
	UUID              string            `json:"uuid,omitempty"`

	// VolumeDefinitions is filled by the client from a second request.
	VolumeDefinitions []VolumeDefinition `json:"volume_definitions,omitempty"`
}

// AutoSelectFilter narrows automatic placement of resources.
type AutoSelectFilter struct {
	PlaceCount           int      `json:"place_count,omitempty"`
	StoragePool          string   `json:"storage_pool,omitempty"`
	NotPlaceWithRsc      []string `json:"not_place_with_rsc,omitempty"`
	NotPlaceWithRscRegex string   `json:"not_place_with_rsc_regex,omitempty"`
	ReplicasOnSame       []string `json:"replicas_on_same,omitempty"`
	ReplicasOnDifferent  []string `json:"replicas_on_different,omitempty"`
	LayerStack           []string `json:"layer_stack,omitempty"`
	ProviderList         []string `json:"provider_list,omitempty"`
	DisklessOnRemaining  *bool    `json:"diskless_on_remaining,omitempty"`
}

type ResourceGroup struct {
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Props        map[string]string `json:"props,omitempty"`
	SelectFilter AutoSelectFilter  `json:"select_filter"`
	UUID         string            `json:"uuid,omitempty"`
}

type VolumeGroup struct {
	VolumeNumber int               `json:"volume_number"`
	Props        map[string]string `json:"props,omitempty"`
	UUID         string            `json:"uuid,omitempty"`
}

type VolumeState struct {
	DiskState string `json:"disk_state,omitempty"`
}

type Volume struct {
	VolumeNumber     int               `json:"volume_number"`
	StoragePoolName  string            `json:"storage_pool_name,omitempty"`
	ProviderKind     string            `json:"provider_kind,omitempty"`
	DevicePath       string            `json:"device_path,omitempty"`
	AllocatedSizeKib int64             `json:"allocated_size_kib,omitempty"`
	UsableSizeKib    int64             `json:"usable_size_kib,omitempty"`
	Props            map[string]string `json:"props,omitempty"`
	Flags            []string          `json:"flags,omitempty"`
	State            VolumeState       `json:"state"`
	UUID             string            `json:"uuid,omitempty"`
}

type ResourceState struct {
	InUse *bool `json:"in_use,omitempty"`
}

type Resource struct {
	Name     string            `json:"name"`
	NodeName string            `json:"node_name"`
	Props    map[string]string `json:"props,omitempty"`
	Flags    []string          `json:"flags,omitempty"`
	State    ResourceState     `json:"state"`
	Volumes  []Volume          `json:"volumes,omitempty"`
	UUID     string            `json:"uuid,omitempty"`
}

// IsDiskless reports whether the resource carries the diskless flag.
func (r Resource) IsDiskless() bool {
	return slices.Contains(r.Flags, FlagDiskless)
}

type SnapshotVolumeDefinition struct {
	VolumeNumber int   `json:"volume_number"`
	SizeKib      int64 `json:"size_kib"`
}

type Snapshot struct {
	Name              string                     `json:"name"`
	ResourceName      string                     `json:"resource_name"`
	Nodes             []string                   `json:"nodes,omitempty"`
	Props             map[string]string          `json:"props,omitempty"`
	Flags             []string                   `json:"flags,omitempty"`
	VolumeDefinitions []SnapshotVolumeDefinition `json:"volume_definitions,omitempty"`
	UUID              string                     `json:"uuid,omitempty"`
}

type ResourceConnection struct {
	NodeA string            `json:"node_a"`
	NodeB string            `json:"node_b"`
	Props map[string]string `json:"props,omitempty"`
	Flags []string          `json:"flags,omitempty"`
	Port  int               `json:"port,omitempty"`
}

type MaxVolumeSizeCandidate struct {
	StoragePool      string   `json:"storage_pool"`
	MaxVolumeSizeKib int64    `json:"max_volume_size_kib"`
	NodeNames        []string `json:"node_names,omitempty"`
	AllThin          bool     `json:"all_thin"`
}

type KeyValueStore struct {
	Name  string            `json:"name"`
	Props map[string]string `json:"props"`
}
