package domain

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// DoneStatuses is the set of statuses counted as completed work.
// Matches the Redmine default done statuses (resolved, closed).
var DoneStatuses = map[TicketStatus]bool{
	StatusResolved: true,
	StatusClosed:   true,
}

type JournalField string

const (
	FieldStatus         JournalField = "status"
	FieldEstimatedHours JournalField = "estimated_hours"
)

// ValidJournalFields is the canonical set of journal fields the replay
// engine understands. Anything else is dropped at ingestion.
var ValidJournalFields = map[JournalField]bool{
	FieldStatus:         true,
	FieldEstimatedHours: true,
}

type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

type SyncMode string

const (
	SyncFull        SyncMode = "full"
	SyncIncremental SyncMode = "incremental"
)
