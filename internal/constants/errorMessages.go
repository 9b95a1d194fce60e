package constants

const (
	MsgPartNotFound       = "Part not found"
	MsgTechnicianNotFound = "Technician not found"
	MsgUserNotFound       = "User not found"
	MsgIllegalTransition  = "Illegal status transition"
	MsgMissingActualHours = "Actual hours are required to complete a repair"
	MsgMissingTechnician  = "A technician must be assigned before repair starts"
	MsgEmptyNote          = "Note text is empty"
	MsgSnapshotMalformed  = "Snapshot payload is malformed"
)
