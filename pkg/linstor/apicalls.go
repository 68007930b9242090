package linstor

// APICall identifies a controller operation. The identifiers are part of the
// controller protocol and select how a response payload is decoded.
type APICall string

// Controller operation identifiers.
const (
	APICrtNode          APICall = "CrtNode"
	APIModNode          APICall = "ModNode"
	APIDelNode          APICall = "DelNode"
	APILostNode         APICall = "LostNode"
	APINodeReconnect    APICall = "NodeReconnect"
	APILstNode          APICall = "LstNode"
	APICrtNetIf         APICall = "CrtNetIf"
	APIModNetIf         APICall = "ModNetIf"
	APIDelNetIf         APICall = "DelNetIf"
	APILstNetIf         APICall = "LstNetIf"
	APICrtStorPoolDfn   APICall = "CrtStorPoolDfn"
	APIModStorPoolDfn   APICall = "ModStorPoolDfn"
	APIDelStorPoolDfn   APICall = "DelStorPoolDfn"
	APILstStorPoolDfn   APICall = "LstStorPoolDfn"
	APIQryMaxVlmSize    APICall = "QryMaxVlmSize"
	APICrtStorPool      APICall = "CrtStorPool"
	APIModStorPool      APICall = "ModStorPool"
	APIDelStorPool      APICall = "DelStorPool"
	APILstStorPool      APICall = "LstStorPool"
	APICrtRscGrp        APICall = "CrtRscGrp"
	APIModRscGrp        APICall = "ModRscGrp"
	APIDelRscGrp        APICall = "DelRscGrp"
	APILstRscGrp        APICall = "LstRscGrp"
	APISpawnRscDfn      APICall = "SpawnRscDfn"
	APICrtVlmGrp        APICall = "CrtVlmGrp"
	APIModVlmGrp        APICall = "ModVlmGrp"
	APIDelVlmGrp        APICall = "DelVlmGrp"
	APILstVlmGrp        APICall = "LstVlmGrp"
	APICrtRscDfn        APICall = "CrtRscDfn"
	APIModRscDfn        APICall = "ModRscDfn"
	APIDelRscDfn        APICall = "DelRscDfn"
	APILstRscDfn        APICall = "LstRscDfn"
	APICrtVlmDfn        APICall = "CrtVlmDfn"
	APIModVlmDfn        APICall = "ModVlmDfn"
	APIDelVlmDfn        APICall = "DelVlmDfn"
	APILstVlmDfn        APICall = "LstVlmDfn"
	APICrtRsc           APICall = "CrtRsc"
	APIAutoPlaceRsc     APICall = "AutoPlaceRsc"
	APIModRsc           APICall = "ModRsc"
	APIDelRsc           APICall = "DelRsc"
	APILstRsc           APICall = "LstRsc"
	APILstVlm           APICall = "LstVlm"
	APIModVlm           APICall = "ModVlm"
	APIToggleDisk       APICall = "ToggleDisk"
	APILstCtrlProps     APICall = "LstCtrlProps"
	APISetCtrlProp      APICall = "SetCtrlProp"
	APIVersion          APICall = "Version"
	APICrtCryptPass     APICall = "CrtCryptPass"
	APIEnterCryptPass   APICall = "EnterCryptPass"
	APIModCryptPass     APICall = "ModCryptPass"
	APIModRscConn       APICall = "ModRscConn"
	APIReqRscConnList   APICall = "ReqRscConnList"
	APIEnableDrbdProxy  APICall = "EnableDrbdProxy"
	APIDisableDrbdProxy APICall = "DisableDrbdProxy"
	APIModDrbdProxy     APICall = "ModDrbdProxy"
	APICrtSnapshot      APICall = "CrtSnapshot"
	APIRestoreVlmDfn    APICall = "RestoreVlmDfn"
	APIRestoreSnapshot  APICall = "RestoreSnapshot"
	APIDelSnapshot      APICall = "DelSnapshot"
	APIRollbackSnapshot APICall = "RollbackSnapshot"
	APILstSnapshotDfn   APICall = "LstSnapshotDfn"
	APIReqErrorReports  APICall = "ReqErrorReports"
	APIModKvs           APICall = "ModKvs"
	APILstKvs           APICall = "LstKvs"
)

// responseKind is the payload shape registered for an APICall.
type responseKind int

const (
	kindAPICallRc responseKind = iota
	kindErrorReport
	kindNodeList
	kindStoragePoolList
	kindResourceDefinitionList
	kindResourceGroupList
	kindVolumeGroupList
	kindVolumeDefinitionList
	kindResourceList
	kindVolumeList
	kindSnapshotList
	kindControllerProperties
	kindResourceConnectionList
	kindStoragePoolDefinitionList
	kindMaxVolumeSizes
	kindKeyValueStoreList
	kindControllerVersion
)

// kindFor returns the registered response kind for call. Calls without a
// structured response decode to status replies.
func kindFor(call APICall) responseKind {
	switch call {
	case APILstNode:
		return kindNodeList
	case APILstStorPool:
		return kindStoragePoolList
	case APILstRscDfn:
		return kindResourceDefinitionList
	case APILstRscGrp:
		return kindResourceGroupList
	case APILstVlmGrp:
		return kindVolumeGroupList
	case APILstVlmDfn:
		return kindVolumeDefinitionList
	case APILstRsc:
		return kindResourceList
	case APILstVlm:
		return kindVolumeList
	case APILstSnapshotDfn:
		return kindSnapshotList
	case APIReqErrorReports:
		return kindErrorReport
	case APILstCtrlProps:
		return kindControllerProperties
	case APIReqRscConnList:
		return kindResourceConnectionList
	case APILstStorPoolDfn:
		return kindStoragePoolDefinitionList
	case APIQryMaxVlmSize:
		return kindMaxVolumeSizes
	case APILstKvs:
		return kindKeyValueStoreList
	case APIVersion:
		return kindControllerVersion
	default:
		return kindAPICallRc
	}
}

// wrapsElements reports whether every array element is decoded on its own
// rather than the array as a whole.
func (k responseKind) wrapsElements() bool {
	return k == kindAPICallRc || k == kindErrorReport
}
