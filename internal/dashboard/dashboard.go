// Package dashboard aggregates store state into portal overview figures.
package dashboard

import (
	"slices"
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/store"
)

// RecentLimit caps the number of clients listed as recent.
const RecentLimit = 5

// ClientActivity is one line of the recent clients list.
type ClientActivity struct {
	ClientID     string        `json:"client_id"`
	Name         string        `json:"name"`
	Status       client.Status `json:"status"`
	ProjectCount int           `json:"project_count"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Summary holds the overview figures.
type Summary struct {
	TotalClients      int                    `json:"total_clients"`
	ActiveClients     int                    `json:"active_clients"`
	TotalProjects     int                    `json:"total_projects"`
	ActiveProjects    int                    `json:"active_projects"`
	CompletedProjects int                    `json:"completed_projects"`
	ProjectsByStatus  map[project.Status]int `json:"projects_by_status"`
	SelectedClientID  string                 `json:"selected_client_id,omitempty"`
	VisibleByStatus   map[project.Status]int `json:"visible_by_status"`
	RecentClients     []ClientActivity       `json:"recent_clients"`
}

// Build computes a summary from a store snapshot.
func Build(snap store.Snapshot) Summary {
	all := snap.Collections.Projects
	byStatus := project.CountByStatus(all)

	sum := Summary{
		TotalClients:      len(snap.Collections.Clients),
		TotalProjects:     len(all),
		ActiveProjects:    byStatus[project.StatusActive],
		CompletedProjects: byStatus[project.StatusCompleted],
		ProjectsByStatus:  byStatus,
		VisibleByStatus:   project.CountByStatus(snap.Selection.Projects),
		RecentClients:     []ClientActivity{},
	}
	if snap.Selection.Client != nil {
		sum.SelectedClientID = snap.Selection.Client.ID
	}

	perClient := make(map[string]int, len(snap.Collections.Clients))
	for _, p := range all {
		perClient[p.ClientID]++
	}

	// Newest first; among equal timestamps the later-created client wins.
	clients := slices.Clone(snap.Collections.Clients)
	slices.Reverse(clients)
	slices.SortStableFunc(clients, func(a, b client.Client) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	for _, c := range snap.Collections.Clients {
		if c.Status == client.StatusActive {
			sum.ActiveClients++
		}
	}
	for _, c := range clients[:min(len(clients), RecentLimit)] {
		sum.RecentClients = append(sum.RecentClients, ClientActivity{
			ClientID:     c.ID,
			Name:         c.Name,
			Status:       c.Status,
			ProjectCount: perClient[c.ID],
			CreatedAt:    c.CreatedAt,
		})
	}
	return sum
}

// Share returns the fraction of all projects that have status, in [0, 1].
func (s Summary) Share(status project.Status) float64 {
	return float64(s.ProjectsByStatus[status]) / float64(max(s.TotalProjects, 1))
}
