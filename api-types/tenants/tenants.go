package tenants

import "github.com/ems-iodt/twinscale-api-types/internal/utils/cmp"

// Tenant is one tenant record as served by the tenants API.
type Tenant struct {
	TenantID    string `json:"tenant_id" yaml:"tenantId"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive    bool   `json:"is_active" yaml:"isActive"`
	MaxThings   int    `json:"max_things" yaml:"maxThings"`
}

func (t Tenant) Equal(o Tenant) bool {
	return t.TenantID == o.TenantID &&
		t.Name == o.Name &&
		t.Description == o.Description &&
		t.IsActive == o.IsActive &&
		t.MaxThings == o.MaxThings
}

// Spec is the request body for creating a tenant. IsActive is a
// pointer so that an omitted field defaults to true.
type Spec struct {
	TenantID    string `json:"tenant_id" yaml:"tenantId"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty" yaml:"isActive,omitempty"`
	MaxThings   int    `json:"max_things,omitempty" yaml:"maxThings,omitempty"`
}

// Tenant materializes the spec with its defaults applied.
func (s Spec) Tenant() Tenant {
	return Tenant{
		TenantID:    s.TenantID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive == nil || *s.IsActive,
		MaxThings:   s.MaxThings,
	}
}

func (s Spec) Equal(o Spec) bool {
	return s.TenantID == o.TenantID &&
		s.Name == o.Name &&
		s.Description == o.Description &&
		cmp.DerefEqual(s.IsActive, o.IsActive) &&
		s.MaxThings == o.MaxThings
}

// Update carries a partial tenant update; nil fields are left as they
// are.
type Update struct {
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty" yaml:"isActive,omitempty"`
	MaxThings   *int    `json:"max_things,omitempty" yaml:"maxThings,omitempty"`
}

func (u Update) Equal(o Update) bool {
	return cmp.DerefEqual(u.Name, o.Name) &&
		cmp.DerefEqual(u.Description, o.Description) &&
		cmp.DerefEqual(u.IsActive, o.IsActive) &&
		cmp.DerefEqual(u.MaxThings, o.MaxThings)
}
