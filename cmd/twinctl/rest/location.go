package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ems-iodt/twinscale-api-types/locations"
)

// GetLocation is best-effort. When the server cannot resolve the coordinates
// (network trouble, upstream geocoder down), it returns (nil, nil) so that
// callers can go on without location metadata.
func (c *client) GetLocation(ctx context.Context, lat, lon float64) (*locations.Info, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("lon", fmt.Sprintf("%g", lon))

	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("twin", "location")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var info locations.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, nil
	}
	return &info, nil
}
