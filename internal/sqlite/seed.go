package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/repository"
	"github.com/rpggio/workspace-nexus/internal/seed"
)

const (
	metaCurrentUser = "current_user_id"
	metaSavedAt     = "saved_at"
)

// SeedRepository implements repository.SeedRepository for SQLite
type SeedRepository struct {
	db  *DB
	now func() time.Time
}

// NewSeedRepository creates a new SeedRepository
func NewSeedRepository(db *DB) *SeedRepository {
	return &SeedRepository{db: db, now: time.Now}
}

// Save replaces the stored snapshot with d
func (r *SeedRepository) Save(ctx context.Context, d seed.Data) error {
	if err := seed.Validate(d); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tasks", "workspace_members", "workspaces", "projects", "clients", "users", "seed_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, u := range d.Users {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, email, role, avatar) VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Role, u.Avatar)
		if err != nil {
			return mapWriteError("user", err)
		}
	}

	for _, c := range d.Clients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, name, email, phone, status, logo, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Email, c.Phone, c.Status, c.Logo, c.CreatedAt.UTC())
		if err != nil {
			return mapWriteError("client", err)
		}
	}

	for _, p := range d.Projects {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, client_id, name, description, status, created_at, start_date, end_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.ClientID, p.Name, p.Description, p.Status, p.CreatedAt.UTC(),
			nullTime(p.StartDate), nullTime(p.EndDate))
		if err != nil {
			return mapWriteError("project", err)
		}
	}

	for _, w := range d.Workspaces {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workspaces (id, client_id, created_at) VALUES (?, ?, ?)`,
			w.ID, w.ClientID, w.CreatedAt.UTC())
		if err != nil {
			return mapWriteError("workspace", err)
		}
		for i, memberID := range w.MemberIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO workspace_members (workspace_id, user_id, position) VALUES (?, ?, ?)`,
				w.ID, memberID, i)
			if err != nil {
				return mapWriteError("workspace member", err)
			}
		}
	}

	for _, t := range d.Tasks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, project_id, title, description, status, assigned_to, due_date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.AssignedTo,
			nullTime(t.DueDate), t.CreatedAt.UTC())
		if err != nil {
			return mapWriteError("task", err)
		}
	}

	meta := map[string]string{
		metaCurrentUser: d.CurrentUserID,
		metaSavedAt:     r.now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO seed_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write seed metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. It returns repository.ErrNotFound when
// nothing has been saved yet.
func (r *SeedRepository) Load(ctx context.Context) (seed.Data, error) {
	meta, err := r.loadMeta(ctx)
	if err != nil {
		return seed.Data{}, err
	}
	if _, ok := meta[metaSavedAt]; !ok {
		return seed.Data{}, repository.ErrNotFound
	}

	d := seed.Data{CurrentUserID: meta[metaCurrentUser]}
	if d.Users, err = r.loadUsers(ctx); err != nil {
		return seed.Data{}, err
	}
	if d.Clients, err = r.loadClients(ctx); err != nil {
		return seed.Data{}, err
	}
	if d.Projects, err = r.loadProjects(ctx); err != nil {
		return seed.Data{}, err
	}
	if d.Workspaces, err = r.loadWorkspaces(ctx); err != nil {
		return seed.Data{}, err
	}
	if d.Tasks, err = r.loadTasks(ctx); err != nil {
		return seed.Data{}, err
	}

	if err := seed.Validate(d); err != nil {
		return seed.Data{}, fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
	}
	return d, nil
}

func (r *SeedRepository) loadMeta(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM seed_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan seed metadata: %w", err)
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seed metadata: %w", err)
	}
	return meta, nil
}

func (r *SeedRepository) loadUsers(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, role, avatar FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *SeedRepository) loadClients(ctx context.Context) ([]client.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, status, logo, created_at FROM clients ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []client.Client{}
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.Logo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *SeedRepository) loadProjects(ctx context.Context) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, name, description, status, created_at, start_date, end_date
		FROM projects
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		var p project.Project
		var start, end sql.NullTime
		err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &start, &end)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.StartDate = timePtr(start)
		p.EndDate = timePtr(end)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *SeedRepository) loadWorkspaces(ctx context.Context) ([]seed.Workspace, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, client_id, created_at FROM workspaces ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []seed.Workspace{}
	index := make(map[string]int)
	for rows.Next() {
		w := seed.Workspace{MemberIDs: []string{}}
		if err := rows.Scan(&w.ID, &w.ClientID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		w.CreatedAt = w.CreatedAt.UTC()
		index[w.ID] = len(workspaces)
		workspaces = append(workspaces, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", err)
	}

	members, err := r.db.QueryContext(ctx,
		`SELECT workspace_id, user_id FROM workspace_members ORDER BY workspace_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace members: %w", err)
	}
	defer members.Close()

	for members.Next() {
		var workspaceID, userID string
		if err := members.Scan(&workspaceID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan workspace member: %w", err)
		}
		i, ok := index[workspaceID]
		if !ok {
			return nil, fmt.Errorf("member of unknown workspace %s: %w", workspaceID, repository.ErrForeignKeyViolation)
		}
		workspaces[i].MemberIDs = append(workspaces[i].MemberIDs, userID)
	}
	if err := members.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace member rows: %w", err)
	}
	return workspaces, nil
}

func (r *SeedRepository) loadTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, title, description, status, assigned_to, due_date, created_at
		FROM tasks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		var due sql.NullTime
		err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssignedTo, &due, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		t.DueDate = timePtr(due)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func mapWriteError(entity string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("duplicate %s: %w", entity, repository.ErrInvalidInput)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", entity, repository.ErrForeignKeyViolation)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", entity, repository.ErrInvalidInput)
	}
	return fmt.Errorf("failed to insert %s: %w", entity, err)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

var _ repository.SeedRepository = (*SeedRepository)(nil)

