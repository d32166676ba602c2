package handlers

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ems-iodt/twinscale-api-types/things"
	apierr "github.com/ems-iodt/twinscale/pkg/api-types-binding/errors"
	"github.com/ems-iodt/twinscale/pkg/domain/location"
	"github.com/ems-iodt/twinscale/pkg/domain/rdf"
	"github.com/ems-iodt/twinscale/pkg/twin/names"
	"github.com/ems-iodt/twinscale/pkg/twin/projection"
)

// CreateThingHandler renders a thing draft into its twin documents
// and stores them in the RDF store. A failing RDF write degrades to
// stored_in_rdf = false rather than failing the request, so the
// caller still gets the rendered documents.
func CreateThingHandler(store rdf.Store, defaultTenant string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID, err := tenantOf(c, defaultTenant)
		if err != nil {
			return err
		}

		spec := things.ThingSpec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("thing should be sent as json", err)
		}
		if spec.ID == "" || spec.Name == "" {
			return apierr.BadRequest("id and name are required", nil)
		}

		ifaceYAML, instanceYAML, err := projection.Documents(spec, tenantID)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		canonical := names.CanonicalName(spec.ID)
		stored := false
		if spec.ShouldStoreInRDF() {
			if err := store.StoreTwin(ctx, tenantID, spec); err != nil {
				c.Logger().Warnf("rdf store rejected %s: %s", canonical, err)
			} else {
				stored = true
			}
		}

		return c.JSON(http.StatusOK, things.CreateResult{
			InterfaceName: canonical,
			InstanceName:  canonical,
			InterfaceYAML: ifaceYAML,
			InstanceYAML:  instanceYAML,
			StoredInRDF:   stored,
		})
	}
}

func FindInterfacesHandler(store rdf.Store, defaultTenant string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID, err := tenantOf(c, defaultTenant)
		if err != nil {
			return err
		}

		limit := 0
		if expr := c.QueryParam("limit"); expr != "" {
			parsed, err := strconv.Atoi(expr)
			if err != nil {
				return apierr.BadRequest("limit should be an integer", err)
			}
			limit = parsed
		}

		found, err := store.FindInterfaces(ctx, tenantID, c.QueryParam("name"), limit)
		if err != nil {
			return apierr.ServiceUnavailable("the RDF store is not reachable", err)
		}
		return c.JSON(http.StatusOK, map[string][]things.Summary{"interfaces": found})
	}
}

func GetInterfaceHandler(store rdf.Store, defaultTenant string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID, err := tenantOf(c, defaultTenant)
		if err != nil {
			return err
		}
		name, err := interfaceNameOf(c, paramKey)
		if err != nil {
			return err
		}

		detail, err := store.GetInterface(ctx, tenantID, name)
		if errors.Is(err, rdf.ErrNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.ServiceUnavailable("the RDF store is not reachable", err)
		}
		return c.JSON(http.StatusOK, detail)
	}
}

func DeleteInterfaceHandler(store rdf.Store, defaultTenant string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID, err := tenantOf(c, defaultTenant)
		if err != nil {
			return err
		}
		name, err := interfaceNameOf(c, paramKey)
		if err != nil {
			return err
		}

		if err := store.DeleteTwin(ctx, tenantID, name); err != nil {
			return apierr.ServiceUnavailable("the RDF store is not reachable", err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ExportHandler re-renders the stored interface into its two twin
// documents and streams them as a zip archive.
func ExportHandler(store rdf.Store, defaultTenant string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID, err := tenantOf(c, defaultTenant)
		if err != nil {
			return err
		}
		name, err := interfaceNameOf(c, paramKey)
		if err != nil {
			return err
		}

		detail, err := store.GetInterface(ctx, tenantID, name)
		if errors.Is(err, rdf.ErrNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.ServiceUnavailable("the RDF store is not reachable", err)
		}

		displayName := detail.DisplayName
		if displayName == "" {
			displayName = detail.Name
		}

		// The canonical prefix comes back when the documents are
		// rendered; keeping it here would double it.
		spec := things.ThingSpec{
			ID:            strings.TrimPrefix(detail.Name, names.CanonicalPrefix),
			Name:          displayName,
			Description:   detail.Description,
			ThingType:     detail.ThingType,
			Properties:    detail.Properties,
			Relationships: detail.Relationships,
			Commands:      detail.Commands,
		}
		ifaceYAML, instanceYAML, err := projection.Documents(spec, tenantID)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		buf := bytes.Buffer{}
		archive := zip.NewWriter(&buf)
		for _, entry := range []struct {
			filename string
			content  string
		}{
			{name + "-interface.yaml", ifaceYAML},
			{name + "-instance.yaml", instanceYAML},
		} {
			w, err := archive.Create(entry.filename)
			if err != nil {
				return apierr.InternalServerError(err)
			}
			if _, err := w.Write([]byte(entry.content)); err != nil {
				return apierr.InternalServerError(err)
			}
		}
		if err := archive.Close(); err != nil {
			return apierr.InternalServerError(err)
		}

		c.Response().Header().Set(
			"Content-Disposition", `attachment; filename="`+name+`.zip"`,
		)
		return c.Blob(http.StatusOK, "application/zip", buf.Bytes())
	}
}

// QueryHandler passes a SPARQL SELECT through to the RDF store.
// Update forms are rejected before they reach the store.
func QueryHandler(store rdf.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		body := struct {
			Query string `json:"query"`
		}{}
		if err := c.Bind(&body); err != nil {
			return apierr.BadRequest("query should be sent as json", err)
		}

		results, err := store.Select(ctx, body.Query)
		if errors.Is(err, rdf.ErrNotSelect) {
			return apierr.BadRequest("only SELECT queries are accepted", err)
		}
		if err != nil {
			return apierr.ServiceUnavailable("the RDF store is not reachable", err)
		}
		return c.JSON(http.StatusOK, map[string]any{"results": results})
	}
}

func LocationHandler(resolver *location.Resolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
		if err != nil {
			return apierr.BadRequest("lat should be a number", err)
		}
		lon, err := strconv.ParseFloat(c.QueryParam("lon"), 64)
		if err != nil {
			return apierr.BadRequest("lon should be a number", err)
		}

		return c.JSON(http.StatusOK, resolver.Resolve(ctx, lat, lon))
	}
}
