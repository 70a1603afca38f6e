package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/seed"
	"github.com/rpggio/workspace-nexus/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	opts = append([]store.Option{store.WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := store.New(seed.Builtin(), nil, opts...)
	require.NoError(t, err)
	return s
}

func projectIDs(projects []project.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestNew_ImportsSeed(t *testing.T) {
	s := newTestStore(t)

	require.Len(t, s.Clients(), 3)
	require.Len(t, s.Users(), 3)
	require.NotNil(t, s.CurrentUser())
	require.Equal(t, "user1", s.CurrentUser().ID)

	require.Nil(t, s.CurrentClient())
	require.Nil(t, s.CurrentWorkspace())
	require.NotNil(t, s.VisibleProjects())
	require.Empty(t, s.VisibleProjects())
	require.False(t, s.Busy())
	require.Empty(t, s.LastError())

	snap := s.State()
	require.Len(t, snap.Collections.Workspaces, 3)
	require.Equal(t, []string{"project1", "project2"}, snap.Collections.Workspaces[0].ProjectIDs)
	require.Equal(t, []string{"project3"}, snap.Collections.Workspaces[1].ProjectIDs)
	require.Len(t, snap.Collections.Workspaces[0].Members, 3)
	require.Len(t, snap.Collections.Tasks, 4)
}

func TestNew_DoesNotShareSeedData(t *testing.T) {
	d := seed.Builtin()
	s, err := store.New(d, nil)
	require.NoError(t, err)

	d.Clients[0].Name = "mutated"
	d.Workspaces[0].MemberIDs[0] = "user3"

	require.Equal(t, "Acme Corporation", s.Clients()[0].Name)
	require.Equal(t, "user1", s.State().Collections.Workspaces[0].Members[0].ID)
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	d := seed.Builtin()
	d.Projects[0].ClientID = "client99"

	_, err := store.New(d, nil)
	require.ErrorIs(t, err, seed.ErrInvalidSeed)
}

func TestNew_SynthesizesMissingWorkspace(t *testing.T) {
	d := seed.Builtin()
	d.Workspaces = d.Workspaces[:2]

	s, err := store.New(d, nil)
	require.NoError(t, err)

	require.NoError(t, s.SelectClient(context.Background(), "client3"))
	ws := s.CurrentWorkspace()
	require.NotNil(t, ws)
	require.Equal(t, "workspace3", ws.ID)
	require.Equal(t, "client3", ws.ClientID)
	require.Equal(t, []string{"project4"}, ws.ProjectIDs)
	require.Empty(t, ws.Members)
}

func TestNew_NormalizesWorkspaceProjects(t *testing.T) {
	d := seed.Builtin()
	d.Projects[0], d.Projects[1] = d.Projects[1], d.Projects[0]

	s, err := store.New(d, nil)
	require.NoError(t, err)

	require.NoError(t, s.SelectClient(context.Background(), "client1"))
	require.Equal(t, []string{"project2", "project1"}, s.CurrentWorkspace().ProjectIDs)
	require.Equal(t, []string{"project2", "project1"}, projectIDs(s.VisibleProjects()))
}

func TestSelectClient_Found(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SelectClient(context.Background(), "client1"))

	require.Equal(t, "client1", s.CurrentClient().ID)
	require.Equal(t, "workspace1", s.CurrentWorkspace().ID)
	require.Equal(t, []string{"project1", "project2"}, projectIDs(s.VisibleProjects()))
	require.Empty(t, s.LastError())
	require.False(t, s.Busy())
}

func TestSelectClient_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SelectClient(ctx, "client1"))

	err := s.SelectClient(ctx, "nope")
	require.ErrorIs(t, err, client.ErrClientNotFound)
	var nf *client.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "nope", nf.ClientID)

	require.Equal(t, "client with ID nope not found", s.LastError())
	require.Equal(t, "client1", s.CurrentClient().ID)
	require.Equal(t, "workspace1", s.CurrentWorkspace().ID)
	require.False(t, s.Busy())
}

func TestSelectClient_NotFoundWithoutPriorSelection(t *testing.T) {
	s := newTestStore(t)

	require.Error(t, s.SelectClient(context.Background(), "ghost"))
	require.Nil(t, s.CurrentClient())
	require.Nil(t, s.CurrentWorkspace())
	require.Empty(t, s.VisibleProjects())
}

func TestSelectClient_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SelectClient(ctx, "client2"))
	first := s.State()
	require.NoError(t, s.SelectClient(ctx, "client2"))
	second := s.State()

	require.Equal(t, first, second)
}

func TestSelectClient_SuccessClearsLastError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.Error(t, s.SelectClient(ctx, "nope"))
	require.NotEmpty(t, s.LastError())

	require.NoError(t, s.SelectClient(ctx, "client3"))
	require.Empty(t, s.LastError())
}

func TestAddClient(t *testing.T) {
	s := newTestStore(t)

	c, err := s.AddClient(context.Background(), client.CreateRequest{
		Name:  "Initech",
		Email: "bill@initech.test",
		Phone: "555-000-1111",
	})
	require.NoError(t, err)

	require.Equal(t, "client4", c.ID)
	require.Equal(t, "Initech", c.Name)
	require.Equal(t, client.StatusActive, c.Status)
	require.Equal(t, fixedNow, c.CreatedAt)

	require.Len(t, s.Clients(), 4)
	require.Equal(t, c.ID, s.CurrentClient().ID)

	ws := s.CurrentWorkspace()
	require.NotNil(t, ws)
	require.Equal(t, "workspace4", ws.ID)
	require.Equal(t, c.ID, ws.ClientID)
	require.Empty(t, ws.ProjectIDs)
	require.Len(t, ws.Members, 1)
	require.Equal(t, "user1", ws.Members[0].ID)
	require.Equal(t, fixedNow, ws.CreatedAt)

	require.NotNil(t, s.VisibleProjects())
	require.Empty(t, s.VisibleProjects())
	require.Len(t, s.State().Collections.Workspaces, 4)
}

func TestAddClient_WithoutUserHasNoMembers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.SetCurrentUser(ctx, nil)

	_, err := s.AddClient(ctx, client.CreateRequest{Name: "Solo"})
	require.NoError(t, err)
	require.Empty(t, s.CurrentWorkspace().Members)
}

func TestAddClient_RecordsUnknownMember(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.SetCurrentUser(ctx, &user.User{ID: "user9", Name: "Guest", Role: user.RoleClient})

	_, err := s.AddClient(ctx, client.CreateRequest{Name: "Guest Co"})
	require.NoError(t, err)
	require.Len(t, s.Users(), 4)
	require.Equal(t, "user9", s.CurrentWorkspace().Members[0].ID)
}

func TestAddClient_AcceptsEmptyStrings(t *testing.T) {
	s := newTestStore(t)

	c, err := s.AddClient(context.Background(), client.CreateRequest{Status: client.StatusInactive})
	require.NoError(t, err)
	require.Empty(t, c.Name)
	require.Empty(t, c.Email)
	require.Equal(t, client.StatusInactive, c.Status)
}

func TestAddClient_InvalidStatusLeavesStateUnchanged(t *testing.T) {
	s := newTestStore(t)
	before := s.State()

	_, err := s.AddClient(context.Background(), client.CreateRequest{Name: "Bad", Status: "archived"})
	require.ErrorIs(t, err, client.ErrInvalidInput)
	require.Contains(t, s.LastError(), "archived")

	after := s.State()
	require.Equal(t, before.Collections, after.Collections)
	require.Equal(t, before.Selection, after.Selection)
}

func TestAddClient_IDsAreUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for _, c := range s.Clients() {
		seen[c.ID] = true
	}
	for i := range 20 {
		c, err := s.AddClient(ctx, client.CreateRequest{Name: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
		require.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
	require.Len(t, s.Clients(), 23)
}

func TestAddProject_NoClientSelected(t *testing.T) {
	s := newTestStore(t)
	before := s.State()

	p, err := s.AddProject(context.Background(), project.CreateRequest{Name: "Orphan"})
	require.Nil(t, p)
	require.ErrorIs(t, err, client.ErrNoClientSelected)
	require.Equal(t, "no client selected", s.LastError())
	require.Equal(t, before.Collections, s.State().Collections)
}

func TestAddProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SelectClient(ctx, "client2"))

	p, err := s.AddProject(ctx, project.CreateRequest{Name: "Data Warehouse", Description: "ETL"})
	require.NoError(t, err)

	require.Equal(t, "project5", p.ID)
	require.Equal(t, "client2", p.ClientID)
	require.Equal(t, project.StatusPlanning, p.Status)
	require.Equal(t, fixedNow, p.CreatedAt)

	want := []string{"project3", "project5"}
	require.Equal(t, want, projectIDs(s.VisibleProjects()))
	require.Equal(t, want, s.CurrentWorkspace().ProjectIDs)
	require.Equal(t, want, projectIDs(s.ProjectsByClient("client2")))
	require.Len(t, s.State().Collections.Projects, 5)
	require.Empty(t, s.LastError())
}

func TestAddProject_InvalidStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SelectClient(ctx, "client1"))

	_, err := s.AddProject(ctx, project.CreateRequest{Name: "X", Status: "done"})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	require.Len(t, s.VisibleProjects(), 2)
	require.Len(t, s.CurrentWorkspace().ProjectIDs, 2)
}

func TestAddProject_CopiesDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SelectClient(ctx, "client3"))

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	p, err := s.AddProject(ctx, project.CreateRequest{Name: "Launch", Status: project.StatusActive, StartDate: &start})
	require.NoError(t, err)

	start = start.AddDate(1, 0, 0)
	stored := s.ProjectsByClient("client3")[1]
	require.Equal(t, p.ID, stored.ID)
	require.Equal(t, 2024, stored.StartDate.Year())
	require.Nil(t, stored.EndDate)
}

func TestProjectsByClient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	unknown := s.ProjectsByClient("ghost")
	require.NotNil(t, unknown)
	require.Empty(t, unknown)

	for _, c := range s.Clients() {
		require.NoError(t, s.SelectClient(ctx, c.ID))
		require.Equal(t, s.VisibleProjects(), s.ProjectsByClient(c.ID))
	}
}

func TestTasksByProject(t *testing.T) {
	s := newTestStore(t)

	tasks := s.TasksByProject("project1")
	require.Len(t, tasks, 3)
	require.Equal(t, "task1", tasks[0].ID)
	require.Empty(t, s.TasksByProject("project2"))
}

func TestSearchClients(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"client1", "client2", "client3"}},
		{"acme", []string{"client1"}},
		{"GLOBEX.COM", []string{"client2"}},
		{"  stark ", []string{"client3"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := []string{}
			for _, c := range s.SearchClients(tt.query) {
				got = append(got, c.ID)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClient(t *testing.T) {
	s := newTestStore(t)

	c, err := s.Client("client2")
	require.NoError(t, err)
	require.Equal(t, "Globex Industries", c.Name)

	_, err = s.Client("nope")
	require.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestSetCurrentUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SetCurrentUser(ctx, nil)
	require.Nil(t, s.CurrentUser())

	u := s.Users()[1]
	s.SetCurrentUser(ctx, &u)
	u.Name = "changed"
	require.Equal(t, "John Davis", s.CurrentUser().Name)

	got := s.CurrentUser()
	got.Name = "also changed"
	require.Equal(t, "John Davis", s.CurrentUser().Name)
}

func TestReadsReturnCopies(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectClient(context.Background(), "client1"))

	s.Clients()[0].Name = "x"
	s.CurrentClient().Name = "x"
	s.CurrentWorkspace().ProjectIDs[0] = "x"
	s.VisibleProjects()[0].Name = "x"
	snap := s.State()
	snap.Collections.Projects[0].Name = "x"
	*snap.Collections.Projects[0].StartDate = time.Time{}

	require.Equal(t, "Acme Corporation", s.CurrentClient().Name)
	require.Equal(t, "project1", s.CurrentWorkspace().ProjectIDs[0])
	require.Equal(t, "Website Redesign", s.VisibleProjects()[0].Name)
	require.False(t, s.VisibleProjects()[0].StartDate.IsZero())
}

func TestListen_BusyLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var events []store.Event
	var busyDuring []bool
	cancel := s.Listen(func(ev store.Event) {
		events = append(events, ev)
		busyDuring = append(busyDuring, s.Busy())
	})

	require.NoError(t, s.SelectClient(ctx, "client1"))
	require.Error(t, s.SelectClient(ctx, "nope"))

	require.Len(t, events, 4)
	assert.Equal(t, store.Event{Op: store.OpSelectClient, Busy: true}, events[0])
	assert.Equal(t, store.Event{Op: store.OpSelectClient, Busy: false}, events[1])
	assert.True(t, events[2].Busy)
	assert.False(t, events[3].Busy)
	assert.ErrorIs(t, events[3].Err, client.ErrClientNotFound)
	assert.Equal(t, []bool{true, false, true, false}, busyDuring)

	cancel()
	require.NoError(t, s.SelectClient(ctx, "client2"))
	require.Len(t, events, 4)
}

func TestListen_LastErrorResetWhileBusy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.Error(t, s.SelectClient(ctx, "nope"))

	var lastErrWhileBusy []string
	s.Listen(func(ev store.Event) {
		if ev.Busy {
			lastErrWhileBusy = append(lastErrWhileBusy, s.LastError())
		}
	})
	require.NoError(t, s.SelectClient(ctx, "client1"))
	require.Equal(t, []string{""}, lastErrWhileBusy)
}

type panicIDs struct{}

func (panicIDs) NextID(store.Kind) string { panic("generator exploded") }

func TestOperations_RecoverFromPanics(t *testing.T) {
	s := newTestStore(t, store.WithIDGenerator(panicIDs{}))
	ctx := context.Background()
	before := s.State()

	_, err := s.AddClient(ctx, client.CreateRequest{Name: "Boom"})
	require.ErrorIs(t, err, store.ErrOperationFailed)
	require.Equal(t, "failed to create client", s.LastError())
	require.False(t, s.Busy())
	require.Equal(t, before.Collections, s.State().Collections)

	require.NoError(t, s.SelectClient(ctx, "client1"))
	_, err = s.AddProject(ctx, project.CreateRequest{Name: "Boom"})
	require.ErrorIs(t, err, store.ErrOperationFailed)
	require.Equal(t, "failed to create project", s.LastError())
	require.Len(t, s.VisibleProjects(), 2)
	require.Len(t, s.CurrentWorkspace().ProjectIDs, 2)
}

type scriptedIDs struct {
	ids []string
	i   int
}

func (g *scriptedIDs) NextID(store.Kind) string {
	id := g.ids[g.i]
	g.i++
	return id
}

func TestAddClient_SkipsTakenIDs(t *testing.T) {
	gen := &scriptedIDs{ids: []string{"client1", "client2", "fresh-client", "workspace3", "fresh-ws"}}
	s := newTestStore(t, store.WithIDGenerator(gen))

	c, err := s.AddClient(context.Background(), client.CreateRequest{Name: "Skip"})
	require.NoError(t, err)
	require.Equal(t, "fresh-client", c.ID)
	require.Equal(t, "fresh-ws", s.CurrentWorkspace().ID)
}

func TestUUIDs(t *testing.T) {
	s := newTestStore(t, store.WithIDGenerator(store.UUIDs{}))

	c, err := s.AddClient(context.Background(), client.CreateRequest{Name: "Random"})
	require.NoError(t, err)
	_, err = uuid.Parse(c.ID)
	require.NoError(t, err)
	_, err = uuid.Parse(s.CurrentWorkspace().ID)
	require.NoError(t, err)
}

func TestSequenceIDs(t *testing.T) {
	g := store.NewSequenceIDs()
	require.Equal(t, "client1", g.NextID(store.KindClient))

	g.Observe(store.KindClient, "client7")
	g.Observe(store.KindClient, "client3")
	g.Observe(store.KindClient, "acme")
	g.Observe(store.KindClient, "client-2")
	g.Observe(store.KindProject, "client40")

	require.Equal(t, "client8", g.NextID(store.KindClient))
	require.Equal(t, "project1", g.NextID(store.KindProject))
}

func TestConcurrentOperations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := s.AddClient(ctx, client.CreateRequest{Name: fmt.Sprintf("c%d", i)})
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := s.AddProject(ctx, project.CreateRequest{Name: "p"}); err != nil && !errors.Is(err, client.ErrNoClientSelected) {
				t.Error(err)
			}
			_ = s.ProjectsByClient(c.ID)
			_ = s.State()
		}()
	}
	wg.Wait()

	snap := s.State()
	require.Len(t, snap.Collections.Clients, 13)
	require.Len(t, snap.Collections.Workspaces, 13)
	require.Len(t, snap.Collections.Projects, 14)
	for _, ws := range snap.Collections.Workspaces {
		require.Equal(t, projectIDs(s.ProjectsByClient(ws.ClientID)), ws.ProjectIDs)
	}
}
