package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ems-iodt/twinscale-api-types/things"
)

func (c *client) CreateThing(ctx context.Context, spec things.ThingSpec) (things.CreateResult, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return things.CreateResult{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.apipath("twin", "create"), bytes.NewReader(body))
	if err != nil {
		return things.CreateResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return things.CreateResult{}, err
	}
	defer resp.Body.Close()

	var result things.CreateResult
	if err := unmarshalJsonResponse(
		resp, &result,
		MessageFor{
			Status4xx: "the thing definition is rejected",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return things.CreateResult{}, err
	}
	return result, nil
}

func (c *client) FindInterfaces(ctx context.Context, nameFilter string, limit int) ([]things.Summary, error) {
	q := url.Values{}
	if nameFilter != "" {
		q.Set("name", nameFilter)
	}
	if 0 < limit {
		q.Set("limit", strconv.Itoa(limit))
	}

	target := c.apipath("twin", "rdf", "interfaces")
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
		Interfaces []things.Summary `json:"interfaces"`
	}
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: "interfaces cannot be listed",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found.Interfaces, nil
}

func (c *client) GetInterface(ctx context.Context, name string) (things.Detail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("twin", "rdf", "interfaces", name), nil)
	if err != nil {
		return things.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return things.Detail{}, err
	}
	defer resp.Body.Close()

	var detail things.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("interface %s is not found", name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return things.Detail{}, err
	}
	return detail, nil
}

func (c *client) DeleteInterface(ctx context.Context, name string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.apipath("twin", "rdf", "interfaces", name), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("interface %s is not found", name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) ExportZip(ctx context.Context, name string, handler func(io.Reader) error) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("twin", "export", name), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	stream, err := unmarshalStreamResponse(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("thing %s is not found", name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
	if err != nil {
		return err
	}
	defer stream.Close()

	return handler(stream)
}

func (c *client) Query(ctx context.Context, sparql string) ([]map[string]string, error) {
	body, err := json.Marshal(struct {
		Query string `json:"query"`
	}{Query: sparql})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.apipath("twin", "rdf", "query"), bytes.NewReader(body))
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
		Results []map[string]string `json:"results"`
	}
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: "the query is rejected (only SELECT is allowed)",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found.Results, nil
}
