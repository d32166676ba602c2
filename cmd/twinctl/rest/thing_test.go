package rest_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apierr "github.com/ems-iodt/twinscale-api-types/errors"
	"github.com/ems-iodt/twinscale-api-types/things"
	tprof "github.com/ems-iodt/twinscale/cmd/twinctl/config/profiles"
	trst "github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/pkg/utils/try"
)

func TestCreateThing(t *testing.T) {
	t.Run("when server returns a result, it returns that as is", func(t *testing.T) {
		var request *http.Request
		var requestBody []byte
		expectedResponse := things.CreateResult{
			InterfaceName: "ems-iodt2-tempsensor01",
			InstanceName:  "ems-iodt2-tempsensor01",
			InterfaceYAML: "apiVersion: dtd.twinscale/v0\n",
			InstanceYAML:  "apiVersion: dtd.twinscale/v0\n",
			StoredInRDF:   true,
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			requestBody = try.To(io.ReadAll(r.Body)).OrFatal(t)
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(expectedResponse)
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL, Tenant: "acme"}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		spec := things.ThingSpec{ID: "acme:TempSensor01", Name: "Temp Sensor"}
		actualResponse := try.To(testee.CreateThing(context.Background(), spec)).OrFatal(t)

		if !actualResponse.Equal(expectedResponse) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
		if request.Method != http.MethodPost {
			t.Errorf("request is not POST: %s", request.Method)
		}
		if request.URL.Path != "/twin/create" {
			t.Errorf("request path unmatch: %s", request.URL.Path)
		}
		if actual := request.Header.Get(trst.TenantHeader); actual != "acme" {
			t.Errorf("tenant header unmatch: %s", actual)
		}

		sent := things.ThingSpec{}
		if err := json.Unmarshal(requestBody, &sent); err != nil {
			t.Fatal(err)
		}
		if !sent.Equal(spec) {
			t.Errorf("sent spec unmatch (actual,expected): %v,%v", sent, spec)
		}
	})

	t.Run("a server responding with error is given", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
			t.Run(fmt.Sprintf("when server responding with %d, it returns error", status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					buf := try.To(json.Marshal(apierr.ErrorMessage{
						Reason: "something wrong",
					})).OrFatal(t)
					w.Write(buf)
				}))
				defer server.Close()

				profile := tprof.TwinProfile{ApiRoot: server.URL}
				testee := try.To(trst.NewClient(&profile)).OrFatal(t)

				if _, err := testee.CreateThing(context.Background(), things.ThingSpec{ID: "x"}); err == nil {
					t.Errorf("it does not return error")
				}
			})
		}
	})
}

func TestFindInterfaces(t *testing.T) {
	t.Run("it passes filters as query parameters and decodes the list", func(t *testing.T) {
		var request *http.Request
		expectedResponse := []things.Summary{
			{Name: "ems-iodt2-tempsensor01", ThingType: things.Sensor, Description: "a sensor"},
			{Name: "ems-iodt2-pump02", ThingType: things.Device},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string][]things.Summary{
				"interfaces": expectedResponse,
			})
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		actualResponse := try.To(testee.FindInterfaces(context.Background(), "temp", 10)).OrFatal(t)

		if len(actualResponse) != len(expectedResponse) {
			t.Fatalf("unexpected length: %d", len(actualResponse))
		}
		for i := range actualResponse {
			if !actualResponse[i].Equal(expectedResponse[i]) {
				t.Errorf("item %d unmatch (actual,expected): %v,%v", i, actualResponse[i], expectedResponse[i])
			}
		}

		if request.URL.Path != "/twin/rdf/interfaces" {
			t.Errorf("request path unmatch: %s", request.URL.Path)
		}
		q := request.URL.Query()
		if q.Get("name") != "temp" || q.Get("limit") != "10" {
			t.Errorf("query unmatch: %s", request.URL.RawQuery)
		}
	})
}

func TestGetInterface(t *testing.T) {
	t.Run("when server returns a detail, it returns that as is", func(t *testing.T) {
		var request *http.Request
		expectedResponse := things.Detail{
			Summary: things.Summary{Name: "ems-iodt2-tempsensor01", ThingType: things.Sensor},
			Properties: []things.Property{
				{Name: "temperature", Schema: things.Schema{Type: "float"}, Writable: false},
			},
			Relationships: []things.Relationship{},
			Commands:      []things.Command{{Name: "reset", Description: "reboot"}},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			json.NewEncoder(w).Encode(expectedResponse)
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		actualResponse := try.To(
			testee.GetInterface(context.Background(), "ems-iodt2-tempsensor01"),
		).OrFatal(t)

		if !actualResponse.Equal(expectedResponse) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
		if request.URL.Path != "/twin/rdf/interfaces/ems-iodt2-tempsensor01" {
			t.Errorf("request path unmatch: %s", request.URL.Path)
		}
	})

	t.Run("when server responds 404, it returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(apierr.ErrorResponse{
				Message: apierr.ErrorMessage{Reason: "no such interface"},
			})
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		if _, err := testee.GetInterface(context.Background(), "no-such"); err == nil {
			t.Errorf("it does not return error")
		}
	})
}

func TestDeleteInterface(t *testing.T) {
	t.Run("it sends DELETE and succeeds on 200", func(t *testing.T) {
		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL, Tenant: "acme"}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		if err := testee.DeleteInterface(context.Background(), "ems-iodt2-pump02"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request.Method != http.MethodDelete {
			t.Errorf("request is not DELETE: %s", request.Method)
		}
		if request.URL.Path != "/twin/rdf/interfaces/ems-iodt2-pump02" {
			t.Errorf("request path unmatch: %s", request.URL.Path)
		}
	})
}

func TestExportZip(t *testing.T) {
	t.Run("it streams the archive to the handler", func(t *testing.T) {
		payload := bytes.NewBuffer(nil)
		{
			zw := zip.NewWriter(payload)
			f := try.To(zw.Create("interface.yaml")).OrFatal(t)
			f.Write([]byte("apiVersion: dtd.twinscale/v0\n"))
			zw.Close()
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/zip")
			w.Write(payload.Bytes())
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		received := bytes.NewBuffer(nil)
		err := testee.ExportZip(context.Background(), "ems-iodt2-tempsensor01", func(r io.Reader) error {
			_, err := io.Copy(received, r)
			return err
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		zr := try.To(zip.NewReader(bytes.NewReader(received.Bytes()), int64(received.Len()))).OrFatal(t)
		if len(zr.File) != 1 || zr.File[0].Name != "interface.yaml" {
			t.Errorf("unexpected archive content: %+v", zr.File)
		}
	})
}

func TestQuery(t *testing.T) {
	t.Run("it posts the query text and decodes bindings", func(t *testing.T) {
		var requestBody []byte
		expectedResponse := []map[string]string{
			{"s": "http://twin.dtd/ontology#tempsensor01", "p": "rdf:type"},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestBody = try.To(io.ReadAll(r.Body)).OrFatal(t)
			w.Header().Add("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string][]map[string]string{
				"results": expectedResponse,
			})
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		sparql := "SELECT ?s ?p WHERE { ?s ?p ?o } LIMIT 1"
		actualResponse := try.To(testee.Query(context.Background(), sparql)).OrFatal(t)

		if len(actualResponse) != 1 || actualResponse[0]["s"] != expectedResponse[0]["s"] {
			t.Errorf("response unmatch: %v", actualResponse)
		}

		sent := map[string]string{}
		if err := json.Unmarshal(requestBody, &sent); err != nil {
			t.Fatal(err)
		}
		if sent["query"] != sparql {
			t.Errorf("sent query unmatch: %s", sent["query"])
		}
	})
}

func TestGetLocation(t *testing.T) {
	t.Run("when server resolves the coordinates, it returns the info", func(t *testing.T) {
		var request *http.Request
		altitude := 890.5
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"address":    "Ankara, Türkiye",
				"altitude":   altitude,
				"components": map[string]string{"city": "Ankara"},
			})
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		info := try.To(testee.GetLocation(context.Background(), 39.9334, 32.8597)).OrFatal(t)
		if info == nil {
			t.Fatal("info should not be nil")
		}
		if info.Address != "Ankara, Türkiye" {
			t.Errorf("address unmatch: %s", info.Address)
		}
		if info.Altitude == nil || *info.Altitude != altitude {
			t.Errorf("altitude unmatch: %v", info.Altitude)
		}

		q := request.URL.Query()
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("coordinates are not sent: %s", request.URL.RawQuery)
		}
	})

	t.Run("when server fails, it returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		profile := tprof.TwinProfile{ApiRoot: server.URL}
		testee := try.To(trst.NewClient(&profile)).OrFatal(t)

		info, err := testee.GetLocation(context.Background(), 39.9334, 32.8597)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info != nil {
			t.Errorf("info should be nil: %+v", info)
		}
	})
}
