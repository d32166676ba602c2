package rdf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/pkg/twin/names"
)

var ErrNotSelect = errors.New("only SELECT queries are allowed")
var ErrNotFound = errors.New("twin is not found")

// ErrInvalidID rejects tenant ids and interface names that could
// escape a graph URI or inject SPARQL text.
var ErrInvalidID = errors.New("invalid identifier")

// Store is the gateway to the triple store.
type Store interface {
	// StoreTwin loads the twin of spec into the tenant's named graph.
	// The graph is replaced if it exists.
	StoreTwin(ctx context.Context, tenantID string, spec things.ThingSpec) error

	// DeleteTwin drops the named graph of the interface.
	DeleteTwin(ctx context.Context, tenantID string, interfaceName string) error

	// FindInterfaces lists stored interfaces of a tenant, optionally
	// filtered by a case-insensitive name substring.
	FindInterfaces(ctx context.Context, tenantID string, nameFilter string, limit int) ([]things.Summary, error)

	// GetInterface assembles the full detail of one interface.
	// ErrNotFound when no graph of the tenant holds it.
	GetInterface(ctx context.Context, tenantID string, interfaceName string) (things.Detail, error)

	// Select runs a raw SPARQL SELECT. Non-SELECT text is rejected
	// with ErrNotSelect before touching the store.
	Select(ctx context.Context, sparql string) ([]map[string]string, error)

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}

type fuseki struct {
	httpclient *http.Client
	query      string
	update     string
	data       string
	user       string
	password   string
}

// NewStore builds a Store over a Fuseki dataset, e.g.
// NewStore(http.DefaultClient, "http://fuseki:3030", "twins", "admin", "pw").
func NewStore(hc *http.Client, baseURL, dataset, user, password string) Store {
	base := strings.TrimSuffix(baseURL, "/") + "/" + dataset
	return &fuseki{
		httpclient: hc,
		query:      base + "/query",
		update:     base + "/update",
		data:       base + "/data",
		user:       user,
		password:   password,
	}
}

func (f *fuseki) StoreTwin(ctx context.Context, tenantID string, spec things.ThingSpec) error {
	if !ValidTenantID(tenantID) {
		return fmt.Errorf("%w: tenant %q", ErrInvalidID, tenantID)
	}
	interfaceName := names.CanonicalName(spec.ID)
	graph := GraphURI(tenantID, interfaceName)

	payload := Serialize(TwinTriples(spec))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut,
		f.data+"?graph="+url.QueryEscape(graph),
		strings.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/n-triples")
	f.auth(req)

	resp, err := f.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("cannot store graph %s: %d: %s", graph, resp.StatusCode, string(body))
}

func (f *fuseki) DeleteTwin(ctx context.Context, tenantID string, interfaceName string) error {
	if !ValidTenantID(tenantID) {
		return fmt.Errorf("%w: tenant %q", ErrInvalidID, tenantID)
	}
	if !ValidInterfaceName(interfaceName) {
		return fmt.Errorf("%w: interface %q", ErrInvalidID, interfaceName)
	}
	graph := GraphURI(tenantID, interfaceName)
	return f.execUpdate(ctx, "DROP SILENT GRAPH <"+graph+">")
}

func (f *fuseki) FindInterfaces(ctx context.Context, tenantID string, nameFilter string, limit int) ([]things.Summary, error) {
	if !ValidTenantID(tenantID) {
		return nil, fmt.Errorf("%w: tenant %q", ErrInvalidID, tenantID)
	}
	filter := ""
	if nameFilter != "" {
		filter = fmt.Sprintf(
			`FILTER(CONTAINS(LCASE(?name), "%s"))`,
			escapeLiteral(strings.ToLower(nameFilter)),
		)
	}
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
PREFIX ts: <%s>
SELECT DISTINCT ?name ?displayName ?thingType ?description
WHERE {
  GRAPH ?graph {
    ?interface a ts:TwinInterface .
    ?interface ts:name ?name .
    OPTIONAL { ?interface ts:displayName ?displayName }
    OPTIONAL { ?interface ts:thingType ?thingType }
    OPTIONAL { ?interface ts:description ?description }
    %s
  }
  FILTER(STRSTARTS(STR(?graph), "%s"))
}
ORDER BY ?name
LIMIT %d`,
		NSOntology, filter, TenantGraphPrefix(tenantID), limit,
	)

	rows, err := f.execSelect(ctx, query)
	if err != nil {
		return nil, err
	}

	found := make([]things.Summary, 0, len(rows))
	for _, row := range rows {
		var tt things.ThingType
		if err := tt.Parse(row["thingType"]); err != nil {
			tt = things.Device
		}
		found = append(found, things.Summary{
			Name:        row["name"],
			DisplayName: row["displayName"],
			ThingType:   tt,
			Description: row["description"],
		})
	}
	return found, nil
}

func (f *fuseki) GetInterface(ctx context.Context, tenantID string, interfaceName string) (things.Detail, error) {
	if !ValidTenantID(tenantID) {
		return things.Detail{}, fmt.Errorf("%w: tenant %q", ErrInvalidID, tenantID)
	}
	if !ValidInterfaceName(interfaceName) {
		return things.Detail{}, fmt.Errorf("%w: interface %q", ErrInvalidID, interfaceName)
	}
	ifaceURI := InterfaceURI(interfaceName)

	query := fmt.Sprintf(`
PREFIX ts: <%s>
SELECT ?name ?displayName ?thingType ?description
       ?propName ?propType ?propDesc ?writable ?unit
       ?relName ?relTarget ?relDesc
       ?cmdName ?cmdDesc
WHERE {
  GRAPH ?graph {
    <%s> a ts:TwinInterface .
    <%s> ts:name ?name .
    OPTIONAL { <%s> ts:displayName ?displayName }
    OPTIONAL { <%s> ts:thingType ?thingType }
    OPTIONAL { <%s> ts:description ?description }
    OPTIONAL {
      <%s> ts:hasProperty ?prop .
      ?prop ts:propertyName ?propName .
      ?prop ts:propertyType ?propType .
      OPTIONAL { ?prop ts:description ?propDesc }
      OPTIONAL { ?prop ts:writable ?writable }
      OPTIONAL { ?prop ts:unit ?unit }
    }
    OPTIONAL {
      <%s> ts:hasRelationship ?rel .
      ?rel ts:relationshipName ?relName .
      ?rel ts:targetInterface ?relTarget .
      OPTIONAL { ?rel ts:description ?relDesc }
    }
    OPTIONAL {
      <%s> ts:hasCommand ?cmd .
      ?cmd ts:commandName ?cmdName .
      OPTIONAL { ?cmd ts:description ?cmdDesc }
    }
  }
  FILTER(STRSTARTS(STR(?graph), "%s"))
}`,
		NSOntology,
		ifaceURI, ifaceURI, ifaceURI, ifaceURI, ifaceURI, ifaceURI, ifaceURI, ifaceURI,
		TenantGraphPrefix(tenantID),
	)

	rows, err := f.execSelect(ctx, query)
	if err != nil {
		return things.Detail{}, err
	}
	if len(rows) == 0 {
		return things.Detail{}, fmt.Errorf("%w: %s", ErrNotFound, interfaceName)
	}

	first := rows[0]
	var tt things.ThingType
	if err := tt.Parse(first["thingType"]); err != nil {
		tt = things.Device
	}
	detail := things.Detail{
		Summary: things.Summary{
			Name:        first["name"],
			DisplayName: first["displayName"],
			ThingType:   tt,
			Description: first["description"],
		},
		Properties:    []things.Property{},
		Relationships: []things.Relationship{},
		Commands:      []things.Command{},
	}

	// One SPARQL row per combination; dedupe by name.
	seenProps := map[string]bool{}
	seenRels := map[string]bool{}
	seenCmds := map[string]bool{}
	for _, row := range rows {
		if name := row["propName"]; name != "" && !seenProps[name] {
			seenProps[name] = true
			detail.Properties = append(detail.Properties, things.Property{
				Name:        name,
				Schema:      things.Schema{Type: row["propType"]},
				Description: row["propDesc"],
				Writable:    row["writable"] == "true",
				Unit:        row["unit"],
			})
		}
		if name := row["relName"]; name != "" && !seenRels[name] {
			seenRels[name] = true
			detail.Relationships = append(detail.Relationships, things.Relationship{
				Name:            name,
				TargetInterface: row["relTarget"],
				Description:     row["relDesc"],
			})
		}
		if name := row["cmdName"]; name != "" && !seenCmds[name] {
			seenCmds[name] = true
			detail.Commands = append(detail.Commands, things.Command{
				Name:        name,
				Description: row["cmdDesc"],
			})
		}
	}
	return detail, nil
}

func (f *fuseki) Select(ctx context.Context, sparql string) ([]map[string]string, error) {
	if !isSelect(sparql) {
		return nil, ErrNotSelect
	}
	return f.execSelect(ctx, sparql)
}

func (f *fuseki) Ping(ctx context.Context) error {
	_, err := f.execSelect(ctx, "SELECT (COUNT(*) AS ?count) WHERE { ?s ?p ?o } LIMIT 1")
	return err
}

// isSelect accepts SELECT queries, allowing leading PREFIX and BASE
// declarations and comments.
func isSelect(sparql string) bool {
	for _, line := range strings.Split(sparql, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "PREFIX") || strings.HasPrefix(upper, "BASE") {
			continue
		}
		return strings.HasPrefix(upper, "SELECT")
	}
	return false
}

func (f *fuseki) auth(req *http.Request) {
	if f.user != "" {
		req.SetBasicAuth(f.user, f.password)
	}
}

func (f *fuseki) execSelect(ctx context.Context, query string) ([]map[string]string, error) {
	form := url.Values{}
	form.Set("query", query)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, f.query, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	f.auth(req)

	resp, err := f.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sparql query failed: %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Results struct {
			Bindings []map[string]struct {
				Value string `json:"value"`
			} `json:"bindings"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(payload.Results.Bindings))
	for _, binding := range payload.Results.Bindings {
		row := map[string]string{}
		for name, value := range binding {
			row[name] = value.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fuseki) execUpdate(ctx context.Context, update string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, f.update, strings.NewReader(update),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/sparql-update")
	f.auth(req)

	resp, err := f.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("sparql update failed: %d: %s", resp.StatusCode, string(body))
}
