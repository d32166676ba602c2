// Package postgres implements the tenant registry on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	"github.com/ems-iodt/twinscale-api-types/tenants"
	"github.com/ems-iodt/twinscale/pkg/conn/db/postgres/pool"
	"github.com/ems-iodt/twinscale/pkg/conn/db/postgres/scanner"
	"github.com/ems-iodt/twinscale/pkg/domain/tenant"
	"github.com/ems-iodt/twinscale/pkg/utils/slices"
)

type tenantRow struct {
	TenantID    string `sql:"tenant_id"`
	Name        string
	Description string
	IsActive    bool
	MaxThings   int
}

func (r tenantRow) body() tenants.Tenant {
	return tenants.Tenant{
		TenantID:    r.TenantID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		MaxThings:   r.MaxThings,
	}
}

type registry struct {
	pool pool.Queryer
}

var _ tenant.Registry = &registry{}

func New(p pool.Queryer) tenant.Registry {
	return &registry{pool: p}
}

// Init creates the tenant table if the database does not have it yet.
func Init(ctx context.Context, p pool.Queryer) error {
	_, err := p.Exec(
		ctx,
		`create table if not exists "tenant" (
			"tenant_id" varchar(64) primary key,
			"name" varchar(256) not null,
			"description" text not null default '',
			"is_active" boolean not null default true,
			"max_things" integer not null default 0
		)`,
	)
	return err
}

func (r *registry) Create(ctx context.Context, spec tenants.Spec) (tenants.Tenant, error) {
	t := spec.Tenant()
	_, err := r.pool.Exec(
		ctx,
		`insert into "tenant" ("tenant_id", "name", "description", "is_active", "max_things")
		values ($1, $2, $3, $4, $5)`,
		t.TenantID, t.Name, t.Description, t.IsActive, t.MaxThings,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return tenants.Tenant{}, fmt.Errorf("%w: %s", tenant.ErrTenantConflict, t.TenantID)
		}
		return tenants.Tenant{}, err
	}
	return t, nil
}

func (r *registry) Get(ctx context.Context, tenantID string, activeOnly bool) (tenants.Tenant, error) {
	query := `select "tenant_id", "name", "description", "is_active", "max_things"
		from "tenant" where "tenant_id" = $1`
	if activeOnly {
		query += ` and "is_active"`
	}

	t := tenants.Tenant{}
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&t.TenantID, &t.Name, &t.Description, &t.IsActive, &t.MaxThings,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return tenants.Tenant{}, fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, tenantID)
	}
	if err != nil {
		return tenants.Tenant{}, err
	}
	return t, nil
}

func (r *registry) List(ctx context.Context, activeOnly bool) ([]tenants.Tenant, error) {
	query := `select "tenant_id", "name", "description", "is_active", "max_things" from "tenant"`
	if activeOnly {
		query += ` where "is_active"`
	}
	query += ` order by "tenant_id"`

	found, err := scanner.New[tenantRow]().QueryAll(ctx, r.pool, query)
	if err != nil {
		return nil, err
	}
	return slices.Map(found, tenantRow.body), nil
}

func (r *registry) Update(ctx context.Context, tenantID string, u tenants.Update) (tenants.Tenant, error) {
	t := tenants.Tenant{}
	err := r.pool.QueryRow(
		ctx,
		`update "tenant" set
			"name" = coalesce($2, "name"),
			"description" = coalesce($3, "description"),
			"is_active" = coalesce($4, "is_active"),
			"max_things" = coalesce($5, "max_things")
		where "tenant_id" = $1
		returning "tenant_id", "name", "description", "is_active", "max_things"`,
		tenantID, u.Name, u.Description, u.IsActive, u.MaxThings,
	).Scan(&t.TenantID, &t.Name, &t.Description, &t.IsActive, &t.MaxThings)
	if errors.Is(err, pgx.ErrNoRows) {
		return tenants.Tenant{}, fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, tenantID)
	}
	if err != nil {
		return tenants.Tenant{}, err
	}
	return t, nil
}

func (r *registry) Deactivate(ctx context.Context, tenantID string) (tenants.Tenant, error) {
	no := false
	return r.Update(ctx, tenantID, tenants.Update{IsActive: &no})
}

func (r *registry) Delete(ctx context.Context, tenantID string) error {
	tag, err := r.pool.Exec(ctx, `delete from "tenant" where "tenant_id" = $1`, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, tenantID)
	}
	return nil
}
