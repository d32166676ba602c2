package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/things"
	apierr "github.com/ems-iodt/twinscale/pkg/api-types-binding/errors"
	"github.com/ems-iodt/twinscale/pkg/twin/catalog"
)

func FindDTDLInterfacesHandler(lib *catalog.Library) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := catalog.Filter{
			ThingType: c.QueryParam("thing_type"),
			Domain:    c.QueryParam("domain"),
			Category:  c.QueryParam("category"),
			Keyword:   c.QueryParam("keyword"),
		}
		if tags := c.QueryParam("tags"); tags != "" {
			filter.Tags = strings.Split(tags, ",")
		}

		found := lib.Search(filter)
		return c.JSON(http.StatusOK, map[string][]dtdl.InterfaceRef{"interfaces": found})
	}
}

func GetDTDLSummaryHandler(lib *catalog.Library, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := lib.Get(c.Param(paramKey))
		if errors.Is(err, catalog.ErrInterfaceNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, doc.Summarize())
	}
}

func ValidateThingHandler(lib *catalog.Library) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := struct {
			ThingData things.ThingSpec `json:"thing_data"`
			DTMI      string           `json:"dtmi"`
			Strict    bool             `json:"strict"`
		}{}
		if err := c.Bind(&body); err != nil {
			return apierr.BadRequest("validation request should be sent as json", err)
		}
		if body.DTMI == "" {
			return apierr.BadRequest("dtmi is required", nil)
		}

		return c.JSON(http.StatusOK, lib.Validate(body.ThingData, body.DTMI, body.Strict))
	}
}

func FindBestMatchHandler(lib *catalog.Library) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := struct {
			ThingData things.ThingSpec `json:"thing_data"`
			Limit     int              `json:"limit"`
		}{}
		if err := c.Bind(&body); err != nil {
			return apierr.BadRequest("match request should be sent as json", err)
		}

		matches := lib.BestMatches(body.ThingData, body.Limit)
		return c.JSON(http.StatusOK, map[string][]dtdl.Match{"matches": matches})
	}
}

func ConvertToTwinHandler(lib *catalog.Library, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec, err := lib.ToThingSpec(c.Param(paramKey), c.QueryParam("name"))
		if errors.Is(err, catalog.ErrInterfaceNotFound) {
			return apierr.NotFound()
		}
		if err != nil {
			return apierr.BadRequest("the interface cannot be converted", err)
		}
		return c.JSON(http.StatusOK, spec)
	}
}
