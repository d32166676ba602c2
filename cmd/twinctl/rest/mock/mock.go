package mock

import (
	"context"
	"io"
	"testing"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/locations"
	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
)

type FindInterfacesArgs struct {
	NameFilter string
	Limit      int
}

type ValidateThingArgs struct {
	Spec   things.ThingSpec
	DTMI   string
	Strict bool
}

type FindBestMatchArgs struct {
	Spec  things.ThingSpec
	Limit int
}

type ConvertToTwinArgs struct {
	DTMI      string
	ThingName string
}

type GetLocationArgs struct {
	Lat, Lon float64
}

func New(t *testing.T) *mockTwinClient {
	return &mockTwinClient{t: t, Tenant_: "acme"}
}

type mockTwinClient struct {
	t *testing.T

	// Tenant_ is what Tenant() reports. New() presets a non-empty one;
	// blank it out to script a profile without tenant.
	Tenant_ string

	Impl struct {
		CreateThing        func(ctx context.Context, spec things.ThingSpec) (things.CreateResult, error)
		FindInterfaces     func(ctx context.Context, nameFilter string, limit int) ([]things.Summary, error)
		GetInterface       func(ctx context.Context, name string) (things.Detail, error)
		DeleteInterface    func(ctx context.Context, name string) error
		ExportZip          func(ctx context.Context, name string, handler func(io.Reader) error) error
		Query              func(ctx context.Context, sparql string) ([]map[string]string, error)
		FindDTDLInterfaces func(ctx context.Context, filter rest.CatalogFilter) ([]dtdl.InterfaceRef, error)
		GetDTDLSummary     func(ctx context.Context, dtmi string) (dtdl.Summary, error)
		ValidateThing      func(ctx context.Context, spec things.ThingSpec, dtmi string, strict bool) (dtdl.ValidationResult, error)
		FindBestMatch      func(ctx context.Context, spec things.ThingSpec, limit int) ([]dtdl.Match, error)
		ConvertToTwin      func(ctx context.Context, dtmi string, thingName string) (things.ThingSpec, error)
		GetLocation        func(ctx context.Context, lat, lon float64) (*locations.Info, error)
	}
	Calls struct {
		CreateThing        []things.ThingSpec
		FindInterfaces     []FindInterfacesArgs
		GetInterface       []string
		DeleteInterface    []string
		ExportZip          []string
		Query              []string
		FindDTDLInterfaces []rest.CatalogFilter
		GetDTDLSummary     []string
		ValidateThing      []ValidateThingArgs
		FindBestMatch      []FindBestMatchArgs
		ConvertToTwin      []ConvertToTwinArgs
		GetLocation        []GetLocationArgs
	}
}

var _ rest.TwinClient = &mockTwinClient{}

func (m *mockTwinClient) Tenant() string {
	return m.Tenant_
}

func (m *mockTwinClient) CreateThing(ctx context.Context, spec things.ThingSpec) (things.CreateResult, error) {
	m.t.Helper()

	m.Calls.CreateThing = append(m.Calls.CreateThing, spec)
	if m.Impl.CreateThing == nil {
		m.t.Fatal("CreateThing is not ready to be called")
	}
	return m.Impl.CreateThing(ctx, spec)
}

func (m *mockTwinClient) FindInterfaces(ctx context.Context, nameFilter string, limit int) ([]things.Summary, error) {
	m.t.Helper()

	m.Calls.FindInterfaces = append(m.Calls.FindInterfaces, FindInterfacesArgs{nameFilter, limit})
	if m.Impl.FindInterfaces == nil {
		m.t.Fatal("FindInterfaces is not ready to be called")
	}
	return m.Impl.FindInterfaces(ctx, nameFilter, limit)
}

func (m *mockTwinClient) GetInterface(ctx context.Context, name string) (things.Detail, error) {
	m.t.Helper()

	m.Calls.GetInterface = append(m.Calls.GetInterface, name)
	if m.Impl.GetInterface == nil {
		m.t.Fatal("GetInterface is not ready to be called")
	}
	return m.Impl.GetInterface(ctx, name)
}

func (m *mockTwinClient) DeleteInterface(ctx context.Context, name string) error {
	m.t.Helper()

	m.Calls.DeleteInterface = append(m.Calls.DeleteInterface, name)
	if m.Impl.DeleteInterface == nil {
		m.t.Fatal("DeleteInterface is not ready to be called")
	}
	return m.Impl.DeleteInterface(ctx, name)
}

func (m *mockTwinClient) ExportZip(ctx context.Context, name string, handler func(io.Reader) error) error {
	m.t.Helper()

	m.Calls.ExportZip = append(m.Calls.ExportZip, name)
	if m.Impl.ExportZip == nil {
		m.t.Fatal("ExportZip is not ready to be called")
	}
	return m.Impl.ExportZip(ctx, name, handler)
}

func (m *mockTwinClient) Query(ctx context.Context, sparql string) ([]map[string]string, error) {
	m.t.Helper()

	m.Calls.Query = append(m.Calls.Query, sparql)
	if m.Impl.Query == nil {
		m.t.Fatal("Query is not ready to be called")
	}
	return m.Impl.Query(ctx, sparql)
}

func (m *mockTwinClient) FindDTDLInterfaces(ctx context.Context, filter rest.CatalogFilter) ([]dtdl.InterfaceRef, error) {
	m.t.Helper()

	m.Calls.FindDTDLInterfaces = append(m.Calls.FindDTDLInterfaces, filter)
	if m.Impl.FindDTDLInterfaces == nil {
		m.t.Fatal("FindDTDLInterfaces is not ready to be called")
	}
	return m.Impl.FindDTDLInterfaces(ctx, filter)
}

func (m *mockTwinClient) GetDTDLSummary(ctx context.Context, dtmi string) (dtdl.Summary, error) {
	m.t.Helper()

	m.Calls.GetDTDLSummary = append(m.Calls.GetDTDLSummary, dtmi)
	if m.Impl.GetDTDLSummary == nil {
		m.t.Fatal("GetDTDLSummary is not ready to be called")
	}
	return m.Impl.GetDTDLSummary(ctx, dtmi)
}

func (m *mockTwinClient) ValidateThing(ctx context.Context, spec things.ThingSpec, dtmi string, strict bool) (dtdl.ValidationResult, error) {
	m.t.Helper()

	m.Calls.ValidateThing = append(m.Calls.ValidateThing, ValidateThingArgs{spec, dtmi, strict})
	if m.Impl.ValidateThing == nil {
		m.t.Fatal("ValidateThing is not ready to be called")
	}
	return m.Impl.ValidateThing(ctx, spec, dtmi, strict)
}

func (m *mockTwinClient) FindBestMatch(ctx context.Context, spec things.ThingSpec, limit int) ([]dtdl.Match, error) {
	m.t.Helper()

	m.Calls.FindBestMatch = append(m.Calls.FindBestMatch, FindBestMatchArgs{spec, limit})
	if m.Impl.FindBestMatch == nil {
		m.t.Fatal("FindBestMatch is not ready to be called")
	}
	return m.Impl.FindBestMatch(ctx, spec, limit)
}

func (m *mockTwinClient) ConvertToTwin(ctx context.Context, dtmi string, thingName string) (things.ThingSpec, error) {
	m.t.Helper()

	m.Calls.ConvertToTwin = append(m.Calls.ConvertToTwin, ConvertToTwinArgs{dtmi, thingName})
	if m.Impl.ConvertToTwin == nil {
		m.t.Fatal("ConvertToTwin is not ready to be called")
	}
	return m.Impl.ConvertToTwin(ctx, dtmi, thingName)
}

func (m *mockTwinClient) GetLocation(ctx context.Context, lat, lon float64) (*locations.Info, error) {
	m.t.Helper()

	m.Calls.GetLocation = append(m.Calls.GetLocation, GetLocationArgs{lat, lon})
	if m.Impl.GetLocation == nil {
		m.t.Fatal("GetLocation is not ready to be called")
	}
	return m.Impl.GetLocation(ctx, lat, lon)
}
