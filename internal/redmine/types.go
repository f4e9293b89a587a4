package redmine

import (
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

// Wire shapes for the subset of the Redmine REST API the engine reads.

type projectJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Description string `json:"description"`
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}

type namedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type issueJSON struct {
	ID             int       `json:"id"`
	Project        namedRef  `json:"project"`
	Subject        string    `json:"subject"`
	Status         namedRef  `json:"status"`
	AssignedTo     *namedRef `json:"assigned_to"`
	FixedVersion   *namedRef `json:"fixed_version"`
	EstimatedHours *float64  `json:"estimated_hours"`
	CreatedOn      string    `json:"created_on"`
	UpdatedOn      string    `json:"updated_on"`

	Journals []journalJSON `json:"journals"`
}

type journalJSON struct {
	ID        int64        `json:"id"`
	CreatedOn string       `json:"created_on"`
	Details   []detailJSON `json:"details"`
}

type detailJSON struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// statusByID maps the default Redmine status IDs onto the engine's
// coarse status set. Unknown IDs fall back to open.
var statusByID = map[int]domain.TicketStatus{
	1: domain.StatusOpen,       // New
	2: domain.StatusInProgress, // In Progress
	3: domain.StatusResolved,   // Resolved
	4: domain.StatusInProgress, // Feedback
	5: domain.StatusClosed,     // Closed
	6: domain.StatusClosed,     // Rejected
}

func mapStatus(id int) domain.TicketStatus {
	if s, ok := statusByID[id]; ok {
		return s
	}
	return domain.StatusOpen
}

func parseRedmineTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func (p *projectJSON) toDomain() *domain.Project {
	return &domain.Project{
		ID:          p.ID,
		Name:        p.Name,
		Identifier:  p.Identifier,
		Description: p.Description,
		CreatedOn:   parseRedmineTime(p.CreatedOn),
		UpdatedOn:   parseRedmineTime(p.UpdatedOn),
	}
}

func (i *issueJSON) toDomain(projectID int) *domain.Ticket {
	t := &domain.Ticket{
		ID:             i.ID,
		ProjectID:      projectID,
		Subject:        i.Subject,
		EstimatedHours: i.EstimatedHours,
		Status:         mapStatus(i.Status.ID),
		CreatedOn:      parseRedmineTime(i.CreatedOn),
		UpdatedOn:      parseRedmineTime(i.UpdatedOn),
	}
	if i.AssignedTo != nil {
		id := i.AssignedTo.ID
		t.AssigneeID = &id
		t.AssigneeName = i.AssignedTo.Name
	}
	if i.FixedVersion != nil {
		id := i.FixedVersion.ID
		t.VersionID = &id
		t.VersionName = i.FixedVersion.Name
	}
	return t
}
