package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/things"
)

func (c *client) FindDTDLInterfaces(ctx context.Context, filter CatalogFilter) ([]dtdl.InterfaceRef, error) {
	q := url.Values{}
	if filter.ThingType != "" {
		q.Set("thing_type", filter.ThingType)
	}
	if filter.Domain != "" {
		q.Set("domain", filter.Domain)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if 0 < len(filter.Tags) {
		q.Set("tags", strings.Join(filter.Tags, ","))
	}
	if filter.Keyword != "" {
		q.Set("keyword", filter.Keyword)
	}

	target := c.apipath("dtdl", "interfaces")
	if 0 < len(q) {
		target = target + "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var found struct {
		Interfaces []dtdl.InterfaceRef `json:"interfaces"`
	}
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: "the catalog cannot be searched with that filter",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found.Interfaces, nil
}

func (c *client) GetDTDLSummary(ctx context.Context, dtmi string) (dtdl.Summary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("dtdl", "interfaces", dtmi, "summary"), nil)
	if err != nil {
		return dtdl.Summary{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return dtdl.Summary{}, err
	}
	defer resp.Body.Close()

	var summary dtdl.Summary
	if err := unmarshalJsonResponse(
		resp, &summary,
		MessageFor{
			Status4xx: fmt.Sprintf("model %s is not found in the catalog", dtmi),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return dtdl.Summary{}, err
	}
	return summary, nil
}

func (c *client) ValidateThing(ctx context.Context, spec things.ThingSpec, dtmi string, strict bool) (dtdl.ValidationResult, error) {
	body, err := json.Marshal(struct {
		ThingData things.ThingSpec `json:"thing_data"`
		DTMI      string           `json:"dtmi"`
		Strict    bool             `json:"strict"`
	}{ThingData: spec, DTMI: dtmi, Strict: strict})
	if err != nil {
		return dtdl.ValidationResult{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.apipath("dtdl", "validate"), bytes.NewReader(body))
	if err != nil {
		return dtdl.ValidationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return dtdl.ValidationResult{}, err
	}
	defer resp.Body.Close()

	var result dtdl.ValidationResult
	if err := unmarshalJsonResponse(
		resp, &result,
		MessageFor{
			Status4xx: fmt.Sprintf("the thing cannot be validated against %s", dtmi),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return dtdl.ValidationResult{}, err
	}
	return result, nil
}

func (c *client) FindBestMatch(ctx context.Context, spec things.ThingSpec, limit int) ([]dtdl.Match, error) {
	body, err := json.Marshal(struct {
		ThingData things.ThingSpec `json:"thing_data"`
		Limit     int              `json:"limit"`
	}{ThingData: spec, Limit: limit})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.apipath("dtdl", "find-best-match"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var found struct {
		Matches []dtdl.Match `json:"matches"`
	}
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: "no model in the catalog can be matched with the thing",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found.Matches, nil
}

func (c *client) ConvertToTwin(ctx context.Context, dtmi string, thingName string) (things.ThingSpec, error) {
	q := url.Values{}
	if thingName != "" {
		q.Set("name", thingName)
	}

	target := c.apipath("dtdl", "convert", "to-twinscale", dtmi)
	if 0 < len(q) {
		target = target + "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodPost, target, nil)
	if err != nil {
		return things.ThingSpec{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return things.ThingSpec{}, err
	}
	defer resp.Body.Close()

	var spec things.ThingSpec
	if err := unmarshalJsonResponse(
		resp, &spec,
		MessageFor{
			Status4xx: fmt.Sprintf("model %s cannot be converted", dtmi),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return things.ThingSpec{}, err
	}
	return spec, nil
}
