// Package store implements the workspace store: the single owner of clients,
// projects, workspaces, users and the selection cursor.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/domain/workspace"
	"github.com/rpggio/workspace-nexus/internal/seed"
)

// Op names a mutating store operation.
type Op string

const (
	OpSelectClient   Op = "select_client"
	OpAddClient      Op = "add_client"
	OpAddProject     Op = "add_project"
	OpSetCurrentUser Op = "set_current_user"
)

// Event is delivered to listeners when an operation starts (Busy true) and
// when it finishes (Busy false, Err set on failure).
type Event struct {
	Op   Op
	Busy bool
	Err  error
}

// Snapshot is a consistent view of the whole store taken under one lock.
type Snapshot struct {
	Collections Collections `json:"collections"`
	CurrentUser *user.User  `json:"current_user"`
	Selection   Selection   `json:"selection"`
	Busy        bool        `json:"busy"`
	LastError   string      `json:"last_error"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the function used to stamp CreatedAt on new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the default SequenceIDs generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

type state struct {
	Collections
	currentUser     *user.User
	currentClientID string
}

func (st state) clone() state {
	out := state{
		Collections:     st.Collections.Clone(),
		currentClientID: st.currentClientID,
	}
	if st.currentUser != nil {
		u := *st.currentUser
		out.currentUser = &u
	}
	return out
}

// Store owns all portal state. Operations are serialized; each one is
// applied to a copy of the state and committed only if it succeeds.
type Store struct {
	logger *slog.Logger
	now    func() time.Time
	ids    IDGenerator

	// opMu serializes mutating operations end to end, including listener
	// notification. mu guards the fields below it.
	opMu    sync.Mutex
	mu      sync.RWMutex
	state   state
	sel     Selection
	lastErr string

	busy atomic.Bool

	listenMu  sync.Mutex
	listeners map[int]func(Event)
	nextLID   int
}

// New builds a store from seed data. The data is validated and deep-copied;
// the caller keeps ownership of d.
func New(d seed.Data, logger *slog.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		ids:       NewSequenceIDs(),
		listeners: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := seed.Validate(d); err != nil {
		return nil, fmt.Errorf("import seed: %w", err)
	}
	st, err := s.importSeed(d.Clone())
	if err != nil {
		return nil, fmt.Errorf("import seed: %w", err)
	}
	s.state = st
	s.sel = DeriveSelection(st.Collections, st.currentClientID)

	logger.Debug("store initialized",
		"users", len(st.Users),
		"clients", len(st.Clients),
		"projects", len(st.Projects),
		"workspaces", len(st.Workspaces),
		"tasks", len(st.Tasks))
	return s, nil
}

// Listen registers fn for operation events and returns a function that
// removes it. Listeners run synchronously on the calling goroutine and may
// read the store, but must not start another operation.
func (s *Store) Listen(fn func(Event)) (cancel func()) {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	id := s.nextLID
	s.nextLID++
	s.listeners[id] = fn
	return func() {
		s.listenMu.Lock()
		defer s.listenMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(ev Event) {
	s.listenMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.listenMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// run wraps a mutation with the busy flag, last-error bookkeeping and
// listener notification.
func (s *Store) run(ctx context.Context, op Op, failMsg string, fn func(*state) error) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.busy.Store(true)
	s.notify(Event{Op: op, Busy: true})

	err := s.apply(ctx, op, failMsg, fn)

	s.busy.Store(false)
	s.notify(Event{Op: op, Busy: false, Err: err})
	return err
}

func (s *Store) apply(ctx context.Context, op Op, failMsg string, fn func(*state) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "store operation panicked", "op", op, "panic", r)
			s.lastErr = failMsg
			err = fmt.Errorf("%w: %s", ErrOperationFailed, failMsg)
		}
	}()

	next := s.state.clone()
	if err := fn(&next); err != nil {
		s.lastErr = err.Error()
		s.logger.DebugContext(ctx, "store operation rejected", "op", op, "error", err)
		return err
	}

	s.state = next
	s.sel = DeriveSelection(next.Collections, next.currentClientID)
	s.lastErr = ""
	return nil
}

// nextID asks the generator for an id of kind that is not yet taken in st.
func (s *Store) nextID(st *state, kind Kind) string {
	for range 1000 {
		id := s.ids.NextID(kind)
		if id != "" && !st.hasID(kind, id) {
			return id
		}
	}
	panic(fmt.Sprintf("id generator produced no free %s id", kind))
}

func (st *state) hasID(kind Kind, id string) bool {
	switch kind {
	case KindClient:
		return slices.ContainsFunc(st.Clients, func(c client.Client) bool { return c.ID == id })
	case KindProject:
		return slices.ContainsFunc(st.Projects, func(p project.Project) bool { return p.ID == id })
	case KindWorkspace:
		return slices.ContainsFunc(st.Workspaces, func(w workspace.Workspace) bool { return w.ID == id })
	}
	return false
}

func (st *state) findClient(id string) (client.Client, bool) {
	i := slices.IndexFunc(st.Clients, func(c client.Client) bool { return c.ID == id })
	if i < 0 {
		return client.Client{}, false
	}
	return st.Clients[i], true
}

// SelectClient points the cursor at the client with the given id. An unknown
// id leaves the selection as it was and returns a *client.NotFoundError.
func (s *Store) SelectClient(ctx context.Context, clientID string) error {
	err := s.run(ctx, OpSelectClient, msgSelectFailed, func(st *state) error {
		if _, ok := st.findClient(clientID); !ok {
			return &client.NotFoundError{ClientID: clientID}
		}
		st.currentClientID = clientID
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "client selected", "client_id", clientID)
	return nil
}

// AddClient creates a client together with its workspace and selects it.
// The workspace starts with the current user as its only member, or with no
// members when nobody is signed in.
func (s *Store) AddClient(ctx context.Context, req client.CreateRequest) (*client.Client, error) {
	var created client.Client
	err := s.run(ctx, OpAddClient, msgAddClientFailed, func(st *state) error {
		if err := req.Validate(); err != nil {
			return err
		}
		now := s.now()

		c := client.Client{
			ID:        s.nextID(st, KindClient),
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			CreatedAt: now,
			Status:    req.Status,
			Logo:      req.Logo,
		}
		ws := workspace.Workspace{
			ID:         s.nextID(st, KindWorkspace),
			ClientID:   c.ID,
			ProjectIDs: []string{},
			Members:    []user.User{},
			CreatedAt:  now,
		}
		if u := st.currentUser; u != nil {
			ws.Members = append(ws.Members, *u)
			if !slices.ContainsFunc(st.Users, func(x user.User) bool { return x.ID == u.ID }) {
				st.Users = append(st.Users, *u)
			}
		}

		st.Clients = append(st.Clients, c)
		st.Workspaces = append(st.Workspaces, ws)
		st.currentClientID = c.ID
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "client created", "client_id", created.ID, "name", created.Name)
	return &created, nil
}

// AddProject creates a project for the selected client and records it in
// that client's workspace.
func (s *Store) AddProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	var created project.Project
	err := s.run(ctx, OpAddProject, msgAddProjectFailed, func(st *state) error {
		if st.currentClientID == "" {
			return client.ErrNoClientSelected
		}
		if err := req.Validate(); err != nil {
			return err
		}
		wsIdx := slices.IndexFunc(st.Workspaces, func(w workspace.Workspace) bool {
			return w.ClientID == st.currentClientID
		})
		if wsIdx < 0 {
			panic(fmt.Sprintf("client %s has no workspace", st.currentClientID))
		}

		p := project.Project{
			ID:          s.nextID(st, KindProject),
			ClientID:    st.currentClientID,
			Name:        req.Name,
			Description: req.Description,
			Status:      req.Status,
			CreatedAt:   s.now(),
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
		}
		p = p.Clone()

		st.Projects = append(st.Projects, p)
		st.Workspaces[wsIdx].ProjectIDs = append(st.Workspaces[wsIdx].ProjectIDs, p.ID)
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "project created", "project_id", created.ID, "client_id", created.ClientID)
	out := created.Clone()
	return &out, nil
}

// SetCurrentUser replaces the signed-in user. Nil signs the user out.
func (s *Store) SetCurrentUser(ctx context.Context, u *user.User) {
	var cp *user.User
	if u != nil {
		v := *u
		cp = &v
	}
	_ = s.run(ctx, OpSetCurrentUser, msgSetUserFailed, func(st *state) error {
		st.currentUser = cp
		return nil
	})
	if cp == nil {
		s.logger.InfoContext(ctx, "user signed out")
		return
	}
	s.logger.InfoContext(ctx, "user signed in", "user_id", cp.ID)
}

// ProjectsByClient returns the projects owned by clientID in creation order.
// The result is empty, not nil, for an unknown id.
func (s *Store) ProjectsByClient(clientID string) []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return projectsOf(s.state.Projects, clientID)
}

// TasksByProject returns the tasks of projectID in seed order.
func (s *Store) TasksByProject(projectID string) []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []task.Task{}
	for _, t := range s.state.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// SearchClients returns clients whose name or email contains query, ignoring
// case. An empty query matches every client.
func (s *Store) SearchClients(query string) []client.Client {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []client.Client{}
	for _, c := range s.state.Clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// Client returns the client with the given id.
func (s *Store) Client(id string) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.findClient(id)
	if !ok {
		return nil, &client.NotFoundError{ClientID: id}
	}
	return &c, nil
}

// Users returns every known user.
func (s *Store) Users() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Users)
}

// Clients returns every client in creation order.
func (s *Store) Clients() []client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]client.Client, len(s.state.Clients))
	copy(out, s.state.Clients)
	return out
}

// CurrentUser returns the signed-in user, or nil.
func (s *Store) CurrentUser() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.currentUser == nil {
		return nil
	}
	u := *s.state.currentUser
	return &u
}

// CurrentClient returns the selected client, or nil.
func (s *Store) CurrentClient() *client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.clone().Client
}

// CurrentWorkspace returns the selected client's workspace, or nil.
func (s *Store) CurrentWorkspace() *workspace.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.clone().Workspace
}

// VisibleProjects returns the selected client's projects. It is empty when no
// client is selected.
func (s *Store) VisibleProjects() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.clone().Projects
}

// Busy reports whether an operation is in progress.
func (s *Store) Busy() bool {
	return s.busy.Load()
}

// LastError returns the message of the most recent failed operation, or ""
// if the most recent operation succeeded.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// State returns a snapshot of everything the store exposes.
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Collections: s.state.Collections.Clone(),
		Selection:   s.sel.clone(),
		Busy:        s.busy.Load(),
		LastError:   s.lastErr,
	}
	if s.state.currentUser != nil {
		u := *s.state.currentUser
		snap.CurrentUser = &u
	}
	return snap
}
