// Package tenant defines the tenant registry interface backed by the
// relational database.
package tenant

import (
	"context"
	"errors"

	"github.com/ems-iodt/twinscale-api-types/tenants"
)

var (
	ErrTenantNotFound = errors.New("tenant is not found")
	ErrTenantConflict = errors.New("tenant already exists")
)

type Registry interface {
	// Create registers a new tenant. A duplicate tenant id is
	// ErrTenantConflict.
	Create(ctx context.Context, spec tenants.Spec) (tenants.Tenant, error)

	// Get finds a tenant by its id. When activeOnly is set,
	// deactivated tenants count as not found.
	Get(ctx context.Context, tenantID string, activeOnly bool) (tenants.Tenant, error)

	// List yields tenants in id order. When activeOnly is set,
	// deactivated tenants are left out.
	List(ctx context.Context, activeOnly bool) ([]tenants.Tenant, error)

	// Update applies the non-nil fields of u.
	Update(ctx context.Context, tenantID string, u tenants.Update) (tenants.Tenant, error)

	// Deactivate soft-deletes a tenant. Its things stay in the RDF
	// store but the tenant stops listing as active.
	Deactivate(ctx context.Context, tenantID string) (tenants.Tenant, error)

	// Delete removes a tenant record for good.
	Delete(ctx context.Context, tenantID string) error
}
