package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// uniqueViolationCode is Postgres's SQLSTATE for a unique-constraint
// violation, used to detect the draft_id race of spec §4.E step 6.
const uniqueViolationCode = "23505"

// PgxStore is the Store implementation backed by pgx, generalizing the
// teacher's Repo (internal/projects/repo.go): QueryRow + pgconn.PgError
// code inspection instead of a hand-rolled driver wrapper.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

func (s *PgxStore) FindByDraftID(ctx context.Context, draftID domain.DraftID) (*CommittedProject, error) {
	const q = `
select p.project_id, p.owner_user_id, p.owner_tenant_id, p.draft_id, p.created_at, p.updated_at, p.status,
       c.config_id, c.schema_version, c.config_version, c.template_id, c.template_version, c.config_json, c.config_hash, c.created_at
from projects p
join project_configs c on c.project_id = p.project_id
where p.draft_id = $1
order by c.created_at desc
limit 1;
`
	var (
		cp         CommittedProject
		tenantID   *string
	)
	row := s.pool.QueryRow(ctx, q, draftID.String())
	err := row.Scan(
		&cp.Project.ProjectID, &cp.Project.Owner.UserID, &tenantID, &cp.Project.DraftID,
		&cp.Project.CreatedAt, &cp.Project.UpdatedAt, &cp.Project.Status,
		&cp.Config.ConfigID, &cp.Config.SchemaVersion, &cp.Config.ConfigVersion,
		&cp.Config.TemplateID, &cp.Config.TemplateVersion, &cp.Config.ConfigJSON,
		&cp.Config.ConfigHash, &cp.Config.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: findByDraftID: %w", err)
	}
	cp.Project.Owner.TenantID = tenantID
	cp.Config.ProjectID = cp.Project.ProjectID
	return &cp, nil
}

// InsertCommit implements spec §4.E step 6: a single transaction inserting
// both rows, with a unique-violation on projects.draft_id translated into
// ErrAlreadyCommitted for the coordinator to treat as an idempotent
// replay, mirroring the teacher's retry-on-23505 pattern in
// internal/projects/repo.go applied here to a conflict that must NOT
// retry — it must surface as "someone else already did this".
func (s *PgxStore) InsertCommit(ctx context.Context, project domain.Project, config domain.ProjectConfig) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: begin commit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertProject = `
insert into projects (project_id, owner_user_id, owner_tenant_id, draft_id, created_at, updated_at, status)
values ($1, $2, $3, $4, $5, $6, $7);
`
	_, err = tx.Exec(ctx, insertProject,
		project.ProjectID.String(), project.Owner.UserID, project.Owner.TenantID, project.DraftID.String(),
		project.CreatedAt, project.UpdatedAt, string(project.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrAlreadyCommitted
		}
		return fmt.Errorf("repository: insert project: %w", err)
	}

	const insertConfig = `
insert into project_configs (config_id, project_id, schema_version, config_version, template_id, template_version, config_json, config_hash, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err = tx.Exec(ctx, insertConfig,
		config.ConfigID.String(), config.ProjectID.String(), config.SchemaVersion, config.ConfigVersion,
		config.TemplateID, config.TemplateVersion, config.ConfigJSON, config.ConfigHash, config.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: insert project config: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: commit tx: %w", err)
	}
	return nil
}
