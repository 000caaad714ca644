package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/stack"
	faultstore "github.com/xraph/faultline/store"
)

// compile-time interface check
var _ faultstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("faultline/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("faultline/postgres: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Organization Store ====================

func (s *Store) CreateOrganization(ctx context.Context, org *organization.Organization) error {
	m := toOrganizationModel(org)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetOrganization(ctx context.Context, orgID string) (*organization.Organization, error) {
	m := new(organizationModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", orgID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fromOrganizationModel(m), nil
}

// ==================== Project Store ====================

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	m := toProjectModel(p)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetProject(ctx context.Context, projectID string) (*project.Project, error) {
	m := new(projectModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", projectID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fromProjectModel(m), nil
}

// FirstProjectByOrganization returns the oldest project owned by the
// organization. Creation-time ties break by id so the default project
// stays stable.
func (s *Store) FirstProjectByOrganization(ctx context.Context, orgID string) (*project.Project, error) {
	m := new(projectModel)
	err := s.pg.NewSelect(m).
		Where("organization_id = $1", orgID).
		OrderExpr("created_at ASC, id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fromProjectModel(m), nil
}

// ==================== Stack Store ====================

func (s *Store) CreateStack(ctx context.Context, st *stack.Stack) error {
	m := toStackModel(st)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetStack(ctx context.Context, stackID string) (*stack.Stack, error) {
	m := new(stackModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", stackID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fromStackModel(m), nil
}

func (s *Store) FindStacks(ctx context.Context, q repository.Query) ([]*stack.Stack, error) {
	var models []stackModel
	sel := s.pg.NewSelect(&models)

	argIdx := 0
	if len(q.OrganizationIDs) > 0 {
		argIdx++
		sel = sel.Where(fmt.Sprintf("organization_id = ANY($%d)", argIdx), q.OrganizationIDs)
	}
	if q.ProjectID != "" {
		argIdx++
		sel = sel.Where(fmt.Sprintf("project_id = $%d", argIdx), q.ProjectID)
	}
	if q.Before != nil {
		argIdx++
		sel = sel.Where(fmt.Sprintf("created_at < $%d", argIdx), *q.Before)
	}
	if q.After != nil {
		argIdx++
		sel = sel.Where(fmt.Sprintf("created_at > $%d", argIdx), *q.After)
	}
	if q.Limit > 0 {
		sel = sel.Limit(q.Limit)
	}
	sel = sel.OrderExpr(orderExpr(q, "created_at"))

	if err := sel.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*stack.Stack, len(models))
	for i := range models {
		result[i] = fromStackModel(&models[i])
	}
	return result, nil
}

// InsertStacks persists the batch as a single multi-row insert.
func (s *Store) InsertStacks(ctx context.Context, stacks []*stack.Stack) error {
	if len(stacks) == 0 {
		return nil
	}
	models := make([]stackModel, len(stacks))
	for i, st := range stacks {
		models[i] = *toStackModel(st)
	}
	_, err := s.pg.NewInsert(&models).Exec(ctx)
	return err
}

// ==================== Event Store ====================

// InsertEvents persists the batch as a single multi-row insert so the
// batch lands all-or-nothing.
func (s *Store) InsertEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]eventModel, len(events))
	for i, evt := range events {
		models[i] = *toEventModel(evt)
	}
	_, err := s.pg.NewInsert(&models).Exec(ctx)
	return err
}

func (s *Store) GetEvent(ctx context.Context, eventID string) (*event.Event, error) {
	m := new(eventModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", eventID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fromEventModel(m), nil
}

func (s *Store) FindEvents(ctx context.Context, q repository.Query) ([]*event.Event, error) {
	var models []eventModel
	sel := s.pg.NewSelect(&models)

	argIdx := 0
	if len(q.OrganizationIDs) > 0 {
		argIdx++
		sel = sel.Where(fmt.Sprintf("organization_id = ANY($%d)", argIdx), q.OrganizationIDs)
	}
	if q.ProjectID != "" {
		argIdx++
		sel = sel.Where(fmt.Sprintf("project_id = $%d", argIdx), q.ProjectID)
	}
	if q.StackID != "" {
		argIdx++
		sel = sel.Where(fmt.Sprintf("stack_id = $%d", argIdx), q.StackID)
	}
	if q.Before != nil {
		argIdx++
		sel = sel.Where(fmt.Sprintf("date < $%d", argIdx), *q.Before)
	}
	if q.After != nil {
		argIdx++
		sel = sel.Where(fmt.Sprintf("date > $%d", argIdx), *q.After)
	}
	if q.Limit > 0 {
		sel = sel.Limit(q.Limit)
	}
	sel = sel.OrderExpr(orderExpr(q, "date"))

	if err := sel.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*event.Event, len(models))
	for i := range models {
		result[i] = fromEventModel(&models[i])
	}
	return result, nil
}

func (s *Store) DeleteEventsByStackID(ctx context.Context, stackID string) (int64, error) {
	res, err := s.pg.NewDelete((*eventModel)(nil)).
		Where("stack_id = $1", stackID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return rows, nil
}

// orderExpr returns the ORDER BY clause for a repository query. Ties on
// the date column break by id so pages stay stable under equal dates.
func orderExpr(q repository.Query, dateCol string) string {
	if q.Ascending {
		return fmt.Sprintf("%s ASC, id ASC", dateCol)
	}
	return fmt.Sprintf("%s DESC, id DESC", dateCol)
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
