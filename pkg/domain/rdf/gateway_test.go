package rdf_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/pkg/domain/rdf"
	"github.com/ems-iodt/twinscale/pkg/utils/try"
)

func sparqlResponse(bindings ...map[string]string) []byte {
	type value struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	rows := []map[string]value{}
	for _, b := range bindings {
		row := map[string]value{}
		for k, v := range b {
			row[k] = value{Type: "literal", Value: v}
		}
		rows = append(rows, row)
	}
	buf, _ := json.Marshal(map[string]any{
		"results": map[string]any{"bindings": rows},
	})
	return buf
}

func TestStoreTwin(t *testing.T) {
	t.Run("it PUTs N-Triples into the tenant's named graph", func(t *testing.T) {
		var request *http.Request
		var requestBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			body := try.To(io.ReadAll(r.Body)).OrFatal(t)
			requestBody = string(body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "admin", "pw")

		spec := things.ThingSpec{
			ID:        "acme:TempSensor01",
			Name:      "Temp Sensor",
			ThingType: things.Sensor,
			Properties: []things.Property{
				{Name: "temperature", Schema: things.Schema{Type: "float"}},
			},
			Commands: []things.Command{{Name: "reset", Description: "reboot the device"}},
		}
		if err := testee.StoreTwin(context.Background(), "acme", spec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if request.Method != http.MethodPut {
			t.Errorf("request is not PUT: %s", request.Method)
		}
		if request.URL.Path != "/twins/data" {
			t.Errorf("request path unmatch: %s", request.URL.Path)
		}
		if g := request.URL.Query().Get("graph"); g != "http://twin.io/graphs/acme/ems-iodt2-tempsensor01" {
			t.Errorf("graph unmatch: %s", g)
		}
		if ct := request.Header.Get("Content-Type"); ct != "application/n-triples" {
			t.Errorf("content type unmatch: %s", ct)
		}
		if user, pass, ok := request.BasicAuth(); !ok || user != "admin" || pass != "pw" {
			t.Errorf("basic auth unmatch: %s:%s (%v)", user, pass, ok)
		}

		for _, want := range []string{
			`<http://iodt2.com/ems-iodt2-tempsensor01> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://twin.dtd/ontology#TwinInterface> .`,
			`<http://iodt2.com/ems-iodt2-tempsensor01> <http://twin.dtd/ontology#name> "ems-iodt2-tempsensor01" .`,
			`<http://iodt2.com/ems-iodt2-tempsensor01> <http://twin.dtd/ontology#displayName> "Temp Sensor" .`,
			`<http://iodt2.com/ems-iodt2-tempsensor01/property/temperature> <http://twin.dtd/ontology#propertyType> "float" .`,
			`<http://iodt2.com/ems-iodt2-tempsensor01/command/reset> <http://twin.dtd/ontology#description> "reboot the device" .`,
			`<http://iodt2.com/instance/ems-iodt2-tempsensor01> <http://twin.dtd/ontology#instanceOf> <http://iodt2.com/ems-iodt2-tempsensor01> .`,
		} {
			if !strings.Contains(requestBody, want) {
				t.Errorf("payload misses triple: %s", want)
			}
		}
	})
}

func TestDeleteTwin(t *testing.T) {
	t.Run("it drops the named graph", func(t *testing.T) {
		var request *http.Request
		var requestBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			body := try.To(io.ReadAll(r.Body)).OrFatal(t)
			requestBody = string(body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		if err := testee.DeleteTwin(context.Background(), "acme", "ems-iodt2-pump02"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if request.URL.Path != "/twins/update" {
			t.Errorf("request path unmatch: %s", request.URL.Path)
		}
		if requestBody != "DROP SILENT GRAPH <http://twin.io/graphs/acme/ems-iodt2-pump02>" {
			t.Errorf("update unmatch: %s", requestBody)
		}
	})

	t.Run("identifiers that could escape the graph URI are rejected without touching the store", func(t *testing.T) {
		touched := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			touched = true
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		for _, when := range []struct {
			tenantID string
			name     string
		}{
			{"acme> ; INSERT DATA { <http://x> <http://y> <http://z> } ; DROP SILENT GRAPH <http://twin.io/graphs/x", "ems-iodt2-pump02"},
			{"acme", "pump> ; DELETE WHERE { ?s ?p ?o } ; DROP SILENT GRAPH <x"},
			{"-starts-with-dash", "ems-iodt2-pump02"},
			{"acme", "UpperCase"},
			{strings.Repeat("a", 51), "ems-iodt2-pump02"},
		} {
			err := testee.DeleteTwin(context.Background(), when.tenantID, when.name)
			if !errors.Is(err, rdf.ErrInvalidID) {
				t.Errorf("(%q, %q) should be rejected: %v", when.tenantID, when.name, err)
			}
		}
		if touched {
			t.Error("the store should not be touched")
		}
	})
}

func TestFindInterfaces(t *testing.T) {
	t.Run("it maps bindings into summaries", func(t *testing.T) {
		var query string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			query = r.FormValue("query")
			w.Header().Set("Content-Type", "application/sparql-results+json")
			w.Write(sparqlResponse(
				map[string]string{"name": "ems-iodt2-pump02", "thingType": "device"},
				map[string]string{"name": "ems-iodt2-tempsensor01", "displayName": "Temp Sensor", "thingType": "sensor", "description": "a sensor"},
			))
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		found := try.To(testee.FindInterfaces(context.Background(), "acme", "e", 10)).OrFatal(t)

		expected := []things.Summary{
			{Name: "ems-iodt2-pump02", ThingType: things.Device},
			{Name: "ems-iodt2-tempsensor01", DisplayName: "Temp Sensor", ThingType: things.Sensor, Description: "a sensor"},
		}
		if len(found) != len(expected) {
			t.Fatalf("unexpected length: %d", len(found))
		}
		for i := range found {
			if !found[i].Equal(expected[i]) {
				t.Errorf("item %d unmatch (actual, expected): %v, %v", i, found[i], expected[i])
			}
		}

		if !strings.Contains(query, `STRSTARTS(STR(?graph), "http://twin.io/graphs/acme/")`) {
			t.Errorf("tenant filter is missing: %s", query)
		}
		if !strings.Contains(query, `CONTAINS(LCASE(?name), "e")`) {
			t.Errorf("name filter is missing: %s", query)
		}
	})
}

func TestGetInterface(t *testing.T) {
	t.Run("it assembles detail rows and dedupes by name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/sparql-results+json")
			w.Write(sparqlResponse(
				map[string]string{
					"name": "ems-iodt2-tempsensor01", "displayName": "Temp Sensor", "thingType": "sensor",
					"propName": "temperature", "propType": "float", "writable": "false",
					"cmdName": "reset",
				},
				map[string]string{
					"name": "ems-iodt2-tempsensor01", "thingType": "sensor",
					"propName": "temperature", "propType": "float", "writable": "false",
					"cmdName": "calibrate", "cmdDesc": "recalibrate the sensor",
				},
			))
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		detail := try.To(
			testee.GetInterface(context.Background(), "acme", "ems-iodt2-tempsensor01"),
		).OrFatal(t)

		expected := things.Detail{
			Summary: things.Summary{Name: "ems-iodt2-tempsensor01", DisplayName: "Temp Sensor", ThingType: things.Sensor},
			Properties: []things.Property{
				{Name: "temperature", Schema: things.Schema{Type: "float"}, Writable: false},
			},
			Relationships: []things.Relationship{},
			Commands: []things.Command{
				{Name: "reset"},
				{Name: "calibrate", Description: "recalibrate the sensor"},
			},
		}
		if !detail.Equal(expected) {
			t.Errorf("detail unmatch (actual, expected): %+v, %+v", detail, expected)
		}
	})

	t.Run("no rows means ErrNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/sparql-results+json")
			w.Write(sparqlResponse())
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		_, err := testee.GetInterface(context.Background(), "acme", "no-such")
		if !errors.Is(err, rdf.ErrNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSelect(t *testing.T) {
	t.Run("it rejects anything but SELECT without touching the store", func(t *testing.T) {
		touched := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			touched = true
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		for _, sparql := range []string{
			"DROP GRAPH <http://twin.io/graphs/acme/x>",
			"INSERT DATA { <a> <b> <c> }",
			"DELETE WHERE { ?s ?p ?o }",
			"",
		} {
			if _, err := testee.Select(context.Background(), sparql); !errors.Is(err, rdf.ErrNotSelect) {
				t.Errorf("query should be rejected: %s", sparql)
			}
		}
		if touched {
			t.Error("the store should not be touched")
		}
	})

	t.Run("SELECT with a PREFIX header is accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/sparql-results+json")
			w.Write(sparqlResponse(map[string]string{"s": "x"}))
		}))
		defer server.Close()

		testee := rdf.NewStore(server.Client(), server.URL, "twins", "", "")

		rows := try.To(testee.Select(
			context.Background(),
			"PREFIX ts: <http://twin.dtd/ontology#>\nSELECT ?s WHERE { ?s a ts:TwinInterface }",
		)).OrFatal(t)
		if len(rows) != 1 || rows[0]["s"] != "x" {
			t.Errorf("rows unmatch: %v", rows)
		}
	})
}
