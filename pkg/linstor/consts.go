package linstor

import "math"

// Client identity and the oldest controller REST API this client speaks.
const (
	Version       = "1.0.0"
	APIVersionMin = "1.0.4"
)

// Default controller REST ports.
const (
	RESTPort      = 3370
	RESTHTTPSPort = 3371
)

// Node types.
const (
	NodeTypeController = "Controller"
	NodeTypeAuxiliary  = "Auxiliary"
	NodeTypeCombined   = "Combined"
	NodeTypeSatellite  = "Satellite"
)

// Satellite communication types and their default ports.
const (
	NetComTypePlain = "PLAIN"
	NetComTypeSSL   = "SSL"

	DefaultCtrlPortPlain = 3376
	DefaultCtrlPortSSL   = 3377
	DefaultStltPortPlain = 3366
	DefaultStltPortSSL   = 3367
)

// Object flags.
const (
	FlagDiskless  = "DISKLESS"
	FlagEncrypted = "ENCRYPTED"
)

// Property keys.
const (
	KeyStorPoolName        = "StorPoolName"
	KeyStorDriverLvmVg     = "StorDriver/LvmVg"
	KeyStorDriverThinPool  = "StorDriver/ThinPool"
	KeyStorDriverZPool     = "StorDriver/ZPool"
	KeyStorDriverZPoolThin = "StorDriver/ZPoolThin"
	KeyStorDriverFileDir   = "StorDriver/FileDir"
)

// Return code category bits of an APICallResponse. The two top bits of the
// code select the category.
const (
	MaskError   int64 = -0x4000000000000000 // 0xC000000000000000
	MaskWarn    int64 = math.MinInt64       // 0x8000000000000000
	MaskInfo    int64 = 0x4000000000000000
	MaskSuccess int64 = 0
)

// Storage pool drivers (provider kinds).
const (
	DriverLVM      = "LVM"
	DriverLVMThin  = "LVM_THIN"
	DriverZFS      = "ZFS"
	DriverZFSThin  = "ZFS_THIN"
	DriverDiskless = "DISKLESS"
	DriverFile     = "FILE"
	DriverFileThin = "FILE_THIN"
)

var nodeTypes = []string{
	NodeTypeController,
	NodeTypeAuxiliary,
	NodeTypeCombined,
	NodeTypeSatellite,
}

var storageDrivers = []string{
	DriverLVM,
	DriverLVMThin,
	DriverZFS,
	DriverZFSThin,
	DriverDiskless,
	DriverFile,
	DriverFileThin,
}

// NodeTypes returns all node types accepted by NodeCreate.
func NodeTypes() []string {
	return append([]string(nil), nodeTypes...)
}

// LayerList returns the known layer names.
func LayerList() []string {
	return []string{"drbd", "luks", "nvme", "storage"}
}

// ProviderList returns the known storage pool drivers.
func ProviderList() []string {
	return append([]string(nil), storageDrivers...)
}
