package store

import (
	"github.com/rpggio/workspace-nexus/internal/seed"
)

// Export returns the current collections in seed form, so a store can be
// saved and later reopened with the same records. Workspace members become
// user ids; the selected client is not part of the seed.
func (s *Store) Export() seed.Data {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.state.Collections.Clone()
	d := seed.Data{
		Users:      c.Users,
		Clients:    c.Clients,
		Projects:   c.Projects,
		Workspaces: make([]seed.Workspace, 0, len(c.Workspaces)),
		Tasks:      c.Tasks,
	}
	for _, w := range c.Workspaces {
		sw := seed.Workspace{
			ID:        w.ID,
			ClientID:  w.ClientID,
			MemberIDs: make([]string, 0, len(w.Members)),
			CreatedAt: w.CreatedAt,
		}
		for _, m := range w.Members {
			sw.MemberIDs = append(sw.MemberIDs, m.ID)
		}
		d.Workspaces = append(d.Workspaces, sw)
	}
	if s.state.currentUser != nil {
		d.CurrentUserID = s.state.currentUser.ID
	}
	return d
}
