package redmine

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

func (c *Client) FetchProject(ctx context.Context, projectID int) (*domain.Project, error) {
	var out struct {
		Project projectJSON `json:"project"`
	}
	path := "/projects/" + strconv.Itoa(projectID) + ".json"
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Project.toDomain(), nil
}

func (c *Client) FetchTickets(ctx context.Context, projectID int, since *time.Time) ([]*domain.Ticket, error) {
	issues, err := c.listIssues(ctx, projectID, since)
	if err != nil {
		return nil, err
	}
	tickets := make([]*domain.Ticket, 0, len(issues))
	for _, i := range issues {
		tickets = append(tickets, i.toDomain(projectID))
	}
	return tickets, nil
}

// FetchJournal returns the normalized change history of every issue the
// listing matches. Redmine only inlines journals on the single-issue
// endpoint, so each matched issue costs one extra request.
func (c *Client) FetchJournal(ctx context.Context, projectID int, since *time.Time) ([]*domain.JournalEntry, error) {
	issues, err := c.listIssues(ctx, projectID, since)
	if err != nil {
		return nil, err
	}

	var entries []*domain.JournalEntry
	for _, issue := range issues {
		var out struct {
			Issue issueJSON `json:"issue"`
		}
		path := "/issues/" + strconv.Itoa(issue.ID) + ".json"
		q := url.Values{}
		q.Set("include", "journals")
		if err := c.getJSON(ctx, path, q, &out); err != nil {
			return nil, fmt.Errorf("fetching journals for issue %d: %w", issue.ID, err)
		}
		entries = append(entries, c.normalizeJournals(projectID, &out.Issue)...)
	}
	return entries, nil
}

// normalizeJournals flattens one issue's journals into engine entries.
// The journal ID becomes the entry sequence, which is what makes merging
// the same history twice a no-op.
func (c *Client) normalizeJournals(projectID int, issue *issueJSON) []*domain.JournalEntry {
	var entries []*domain.JournalEntry
	for _, j := range issue.Journals {
		occurredAt := parseRedmineTime(j.CreatedOn)
		for _, d := range j.Details {
			if d.Property != "attr" {
				continue
			}
			e := &domain.JournalEntry{
				ProjectID:  projectID,
				TicketID:   issue.ID,
				OccurredAt: occurredAt,
				Seq:        j.ID,
			}
			switch d.Name {
			case "status_id":
				e.Field = domain.FieldStatus
				e.OldValue = string(mapStatusValue(d.OldValue))
				e.NewValue = string(mapStatusValue(d.NewValue))
			case "estimated_hours":
				e.Field = domain.FieldEstimatedHours
				e.OldValue = d.OldValue
				e.NewValue = d.NewValue
			default:
				c.log.Debug("dropping unrecognized journal detail",
					"issue", issue.ID, "journal", j.ID, "field", d.Name)
				continue
			}
			entries = append(entries, e)
		}
	}
	return entries
}

func mapStatusValue(v string) domain.TicketStatus {
	id, err := strconv.Atoi(v)
	if err != nil {
		return domain.StatusOpen
	}
	return mapStatus(id)
}

// listIssues pages through the project's issues, closed ones included.
func (c *Client) listIssues(ctx context.Context, projectID int, since *time.Time) ([]issueJSON, error) {
	var issues []issueJSON
	offset := 0
	for {
		q := url.Values{}
		q.Set("project_id", strconv.Itoa(projectID))
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("status_id", "*")
		if since != nil {
			q.Set("updated_on", ">="+since.UTC().Format("2006-01-02T15:04:05Z"))
		}

		var page struct {
			Issues     []issueJSON `json:"issues"`
			TotalCount int         `json:"total_count"`
			Offset     int         `json:"offset"`
			Limit      int         `json:"limit"`
		}
		if err := c.getJSON(ctx, "/issues.json", q, &page); err != nil {
			return nil, err
		}
		issues = append(issues, page.Issues...)

		offset += len(page.Issues)
		if len(page.Issues) == 0 || offset >= page.TotalCount {
			return issues, nil
		}
	}
}
