package world

// NoResource marks an AuditEntry that does not concern a spawned resource.
const NoResource int64 = -1

// AuditEntry records one command applied to the world.
type AuditEntry struct {
	RunID      string `json:"run_id"`
	Seq        uint64 `json:"seq"`
	Step       uint64 `json:"step"`
	Actor      string `json:"actor"`
	Action     string `json:"action"` // e.g. "MINE"
	ResourceID int64  `json:"resource_id"`
	Kind       string `json:"kind,omitempty"`
	Amount     int    `json:"amount,omitempty"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Code       string `json:"code"`
	Reason     string `json:"reason,omitempty"`
}

type AuditSink interface {
	WriteAudit(AuditEntry) error
}
