package eventbus

// Event topics.
const (
	EventGenerationStarted   = "generation:started"
	EventGenerationCompleted = "generation:completed"
	EventGenerationFailed    = "generation:failed"

	EventExportCompleted = "export:completed"

	EventKitCreated  = "brandkit:created"
	EventKitDeleted  = "brandkit:deleted"
	EventKitComplete = "brandkit:complete"
)

// GenerationEventData describes one generation run against a brand kit.
type GenerationEventData struct {
	KitID     uint   `json:"kit_id"`
	UserID    uint   `json:"user_id"`
	Kind      string `json:"kind"`
	Requested int    `json:"requested"`
	Succeeded int    `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// ExportEventData describes one archive assembly.
type ExportEventData struct {
	KitID        uint  `json:"kit_id"`
	UserID       uint  `json:"user_id"`
	ArchiveBytes int   `json:"archive_bytes"`
	SkippedCount int   `json:"skipped_count"`
}

// KitEventData describes brand kit lifecycle changes.
type KitEventData struct {
	KitID  uint `json:"kit_id"`
	UserID uint `json:"user_id"`
}
