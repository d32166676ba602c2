// Package location reverse-geocodes coordinates with two public
// services: Nominatim for the address and Open-Elevation for the
// altitude. Lookups are best-effort; either side failing leaves its
// fields empty rather than failing the whole call.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	NominatimURL = "https://nominatim.openstreetmap.org/reverse"
	ElevationURL = "https://api.open-elevation.com/api/v1/lookup"

	// Nominatim's usage policy requires an identifying agent.
	userAgent = "TwinScale-Lite/1.0"

	DefaultTimeout = 10 * time.Second
)

// Info mirrors locations.Info but lives on the server side with the
// lookup that fills it.
type Info struct {
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Address    string            `json:"address,omitempty"`
	Altitude   *float64          `json:"altitude,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

type Resolver struct {
	httpclient   *http.Client
	nominatimURL string
	elevationURL string
}

type Option func(*Resolver)

// WithEndpoints points the resolver at other services, for tests and
// self-hosted mirrors.
func WithEndpoints(nominatimURL, elevationURL string) Option {
	return func(r *Resolver) {
		r.nominatimURL = nominatimURL
		r.elevationURL = elevationURL
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) { r.httpclient = hc }
}

func NewResolver(options ...Option) *Resolver {
	r := &Resolver{
		httpclient:   &http.Client{Timeout: DefaultTimeout},
		nominatimURL: NominatimURL,
		elevationURL: ElevationURL,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Resolve looks up the address and altitude of a coordinate. It never
// fails: fields whose lookup did not work stay empty.
func (r *Resolver) Resolve(ctx context.Context, latitude, longitude float64) Info {
	info := Info{Latitude: latitude, Longitude: longitude}

	if address, components, ok := r.address(ctx, latitude, longitude); ok {
		info.Address = address
		info.Components = components
	}
	if altitude, ok := r.elevation(ctx, latitude, longitude); ok {
		info.Altitude = &altitude
	}
	return info
}

func (r *Resolver) address(ctx context.Context, latitude, longitude float64) (string, map[string]string, bool) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", latitude))
	q.Set("lon", fmt.Sprintf("%g", longitude))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, r.nominatimURL+"?"+q.Encode(), nil,
	)
	if err != nil {
		return "", nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpclient.Do(req)
	if err != nil {
		return "", nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, false
	}

	payload := struct {
		DisplayName string            `json:"display_name"`
		Address     map[string]string `json:"address"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", nil, false
	}
	return payload.DisplayName, payload.Address, true
}

func (r *Resolver) elevation(ctx context.Context, latitude, longitude float64) (float64, bool) {
	q := url.Values{}
	q.Set("locations", fmt.Sprintf("%g,%g", latitude, longitude))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, r.elevationURL+"?"+q.Encode(), nil,
	)
	if err != nil {
		return 0, false
	}

	resp, err := r.httpclient.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	payload := struct {
		Results []struct {
			Elevation float64 `json:"elevation"`
		} `json:"results"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, false
	}
	if len(payload.Results) == 0 {
		return 0, false
	}
	return payload.Results[0].Elevation, true
}
