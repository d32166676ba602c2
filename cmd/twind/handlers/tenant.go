package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ems-iodt/twinscale-api-types/tenants"
	apierr "github.com/ems-iodt/twinscale/pkg/api-types-binding/errors"
	"github.com/ems-iodt/twinscale/pkg/domain/rdf"
	"github.com/ems-iodt/twinscale/pkg/domain/tenant"
)

// TenantHeader carries the caller's tenant selection. Requests
// without it fall back to the configured default tenant.
const TenantHeader = "X-Tenant-ID"

// tenantOf resolves the tenant a request acts on. The header value
// goes into graph URIs and SPARQL text downstream, so anything
// outside the tenant id format is rejected up front.
func tenantOf(c echo.Context, fallback string) (string, error) {
	t := c.Request().Header.Get(TenantHeader)
	if t == "" {
		return fallback, nil
	}
	if !rdf.ValidTenantID(t) {
		return "", apierr.BadRequest(
			"X-Tenant-ID should start with a letter and contain only letters, digits, '-' and '.' (at most 50 characters)",
			nil,
		)
	}
	return t, nil
}

// interfaceNameOf reads the interface name path parameter. Names end up
// inside graph URIs and SPARQL text, so anything outside the canonical
// slug charset is rejected before it reaches the store.
func interfaceNameOf(c echo.Context, paramKey string) (string, error) {
	name := c.Param(paramKey)
	if !rdf.ValidInterfaceName(name) {
		return "", apierr.BadRequest(
			"interface names should contain only lowercase letters, digits and '-'",
			nil,
		)
	}
	return name, nil
}

func CreateTenantHandler(reg tenant.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := tenants.Spec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("tenant should be sent as json", err)
		}
		if spec.TenantID == "" || spec.Name == "" {
			return apierr.BadRequest("tenant_id and name are required", nil)
		}
		if !rdf.ValidTenantID(spec.TenantID) {
			return apierr.BadRequest(
				"tenant_id should start with a letter and contain only letters, digits, '-' and '.' (at most 50 characters)",
				nil,
			)
		}

		created, err := reg.Create(ctx, spec)
		if errors.Is(err, tenant.ErrTenantConflict) {
			return apierr.Conflict("tenant already exists", apierr.WithError(err))
		}
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func ListTenantsHandler(reg tenant.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		activeOnly := c.QueryParam("active_only") != "false"
		found, err := reg.List(ctx, activeOnly)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, map[string][]tenants.Tenant{"tenants": found})
	}
}

func GetTenantHandler(reg tenant.Registry, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		found, err := reg.Get(ctx, c.Param(paramKey), false)
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, found)
	}
}

func UpdateTenantHandler(reg tenant.Registry, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		update := tenants.Update{}
		if err := c.Bind(&update); err != nil {
			return apierr.BadRequest("tenant update should be sent as json", err)
		}

		updated, err := reg.Update(ctx, c.Param(paramKey), update)
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteTenantHandler deactivates by default; ?hard=true removes the
// record for good.
func DeleteTenantHandler(reg tenant.Registry, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID := c.Param(paramKey)

		if c.QueryParam("hard") == "true" {
			err := reg.Delete(ctx, tenantID)
			if errors.Is(err, tenant.ErrTenantNotFound) {
				return apierr.NotFound()
			}
			if err != nil {
				return apierr.InternalServerError(err)
			}
			return c.NoContent(http.StatusNoContent)
		}

		deactivated, err := reg.Deactivate(ctx, tenantID)
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, deactivated)
	}
}
