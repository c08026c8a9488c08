package events

// Ingestion events report progress of dataset source reads. They carry the
// collection id rather than a workflow id.

type IngestStarted struct {
	BaseEvent

	CollectionID string `json:"collection_id"`
	SourceKind   string `json:"source_kind"`
	Origin       string `json:"origin"`
}

func (i IngestStarted) GetType() EventType {
	return IngestStartedEvent
}

func NewIngestStarted(collectionID, sourceKind, origin string) IngestStarted {
	return IngestStarted{
		BaseEvent:    NewBaseEvent(IngestStartedEvent, ""),
		CollectionID: collectionID,
		SourceKind:   sourceKind,
		Origin:       origin,
	}
}

type IngestCompleted struct {
	BaseEvent

	CollectionID string `json:"collection_id"`
	ChunkCount   int    `json:"chunk_count"`
	DurationMs   int64  `json:"duration_ms"`
}

func (i IngestCompleted) GetType() EventType {
	return IngestCompletedEvent
}

func NewIngestCompleted(collectionID string, chunkCount int, durationMs int64) IngestCompleted {
	return IngestCompleted{
		BaseEvent:    NewBaseEvent(IngestCompletedEvent, ""),
		CollectionID: collectionID,
		ChunkCount:   chunkCount,
		DurationMs:   durationMs,
	}
}

type IngestFailed struct {
	BaseEvent

	CollectionID string `json:"collection_id"`
	Error        string `json:"error"`
}

func (i IngestFailed) GetType() EventType {
	return IngestFailedEvent
}

func NewIngestFailed(collectionID string, err error) IngestFailed {
	event := IngestFailed{
		BaseEvent:    NewBaseEvent(IngestFailedEvent, ""),
		CollectionID: collectionID,
	}
	if err != nil {
		event.Error = err.Error()
	}

	return event
}
