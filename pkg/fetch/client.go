// Package fetch retrieves river centerline tiles and DEM raster tiles from
// their configured base URLs.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb/geojson"

	"river_graph/pkg/geo"
)

// Client fetches tiles over HTTP. Any transport failure, non-OK status, or
// malformed body is returned as an error; callers treat these as fatal for
// the whole run, so the client does not retry.
type Client struct {
	http      *http.Client
	riverBase string
	demBase   string
}

// NewClient builds a client for the two tile services. Base URLs are joined
// with path suffixes as-is, so they should end with a slash.
func NewClient(riverBase, demBase string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		riverBase: riverBase,
		demBase:   demBase,
	}
}

// VectorTile fetches one centerline tile document by its path suffix
// (e.g. "16/58211/25806.geojson").
func (c *Client) VectorTile(ctx context.Context, suffix string) (*geojson.FeatureCollection, error) {
	url := c.riverBase + suffix
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return fc, nil
}

// DEMTile fetches the raw image bytes of one elevation tile. The tile path
// places y before x, per the GSJ elevation tile scheme.
func (c *Client) DEMTile(ctx context.Context, tile geo.Tile) ([]byte, error) {
	url := fmt.Sprintf("%s%d/%d/%d.png", c.demBase, tile.Zoom, tile.Y, tile.X)
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
