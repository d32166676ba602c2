package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/locations"
	"github.com/ems-iodt/twinscale-api-types/things"
	tprof "github.com/ems-iodt/twinscale/cmd/twinctl/config/profiles"
	"github.com/ems-iodt/twinscale/pkg/utils/slices"
)

// TenantHeader carries the selected tenant on every request.
const TenantHeader = "X-Tenant-ID"

// CatalogFilter narrows a DTDL catalog search. Zero values mean "no
// filter".
type CatalogFilter struct {
	ThingType string
	Domain    string
	Category  string
	Tags      []string
	Keyword   string
}

// TwinClient is the gateway to a twind server.
type TwinClient interface {
	// Tenant reports the tenant this client sends as X-Tenant-ID.
	// Empty means the profile selected no tenant.
	Tenant() string

	// CreateThing registers a new thing definition.
	//
	// The server renders and stores both twin documents; the returned
	// CreateResult carries them verbatim.
	CreateThing(ctx context.Context, spec things.ThingSpec) (things.CreateResult, error)

	// FindInterfaces lists stored interfaces, optionally filtered by
	// a name substring. limit <= 0 means server default.
	FindInterfaces(ctx context.Context, nameFilter string, limit int) ([]things.Summary, error)

	// GetInterface fetches one stored interface by canonical name.
	GetInterface(ctx context.Context, name string) (things.Detail, error)

	// DeleteInterface removes a stored interface and its instance.
	DeleteInterface(ctx context.Context, name string) error

	// ExportZip downloads the ZIP holding both YAML documents of the
	// named thing and passes the raw stream to handler.
	ExportZip(ctx context.Context, name string, handler func(io.Reader) error) error

	// Query runs a raw SPARQL SELECT against the triple store.
	// Each result row maps variable name to value.
	Query(ctx context.Context, sparql string) ([]map[string]string, error)

	// FindDTDLInterfaces browses the DTDL catalog.
	FindDTDLInterfaces(ctx context.Context, filter CatalogFilter) ([]dtdl.InterfaceRef, error)

	// GetDTDLSummary fetches the denormalized contents of a catalog
	// interface.
	GetDTDLSummary(ctx context.Context, dtmi string) (dtdl.Summary, error)

	// ValidateThing scores a thing definition against a catalog
	// interface.
	ValidateThing(ctx context.Context, spec things.ThingSpec, dtmi string, strict bool) (dtdl.ValidationResult, error)

	// FindBestMatch ranks catalog interfaces by fit to the given
	// definition. limit <= 0 means server default.
	FindBestMatch(ctx context.Context, spec things.ThingSpec, limit int) ([]dtdl.Match, error)

	// ConvertToTwin derives a thing definition template from a
	// catalog interface.
	ConvertToTwin(ctx context.Context, dtmi string, thingName string) (things.ThingSpec, error)

	// GetLocation reverse-geocodes coordinates. Best-effort: lookup
	// failures yield (nil, nil), never an error that blocks the
	// caller's main workflow.
	GetLocation(ctx context.Context, lat, lon float64) (*locations.Info, error)
}

type client struct {
	httpclient *http.Client
	api        string
	tenant     string
}

// NewClient builds a TwinClient for a profile.
//
// If the profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *tprof.TwinProfile) (TwinClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	c := &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
		tenant:     prof.Tenant,
	}

	return c, nil
}

func (c *client) Tenant() string {
	return c.tenant
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = slices.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

// newRequest builds a request with the tenant header applied.
func (c *client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if c.tenant != "" {
		req.Header.Set(TenantHeader, c.tenant)
	}
	return req, nil
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
