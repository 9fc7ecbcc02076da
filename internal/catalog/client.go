package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "rittmatch/1.0"
)

// Client reads restaurants and menus from a catalog service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a catalog client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) getAndDecode(ctx context.Context, op, reqURL, restaurantID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Op: op, URL: reqURL, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if restaurantID != "" {
		req.Header.Set("X-Restaurant-ID", restaurantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, URL: reqURL, Err: fmt.Errorf("executing request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: op, URL: reqURL, StatusCode: resp.StatusCode}
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return &FetchError{Op: op, URL: reqURL, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return &FetchError{Op: op, URL: reqURL, Err: errors.New("decoding response: trailing JSON content")}
	}
	return nil
}

// FetchRestaurants lists the restaurants the service knows about. Menus are
// not included.
func (c *Client) FetchRestaurants(ctx context.Context) ([]Restaurant, error) {
	var resp RestaurantsResponse
	if err := c.getAndDecode(ctx, "fetching restaurants", c.baseURL+"/restaurants", "", &resp); err != nil {
		return nil, err
	}
	return resp.Restaurants, nil
}

// FetchMenu fetches one restaurant's menu.
func (c *Client) FetchMenu(ctx context.Context, restaurantID string) ([]Category, error) {
	reqURL := c.baseURL + "/restaurants/" + url.PathEscape(restaurantID) + "/menu"

	var resp MenuResponse
	if err := c.getAndDecode(ctx, "fetching menu for "+restaurantID, reqURL, restaurantID, &resp); err != nil {
		return nil, err
	}
	return resp.Menu, nil
}

// FetchFile assembles a full catalog: the restaurant list plus every menu.
// A restaurant list that fails Validate is reported as a FetchError wrapping
// ErrInvalid.
func (c *Client) FetchFile(ctx context.Context) (*File, error) {
	restaurants, err := c.FetchRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		if len(restaurants[i].Menu) > 0 {
			continue
		}
		menu, err := c.FetchMenu(ctx, restaurants[i].ID)
		if err != nil {
			return nil, err
		}
		restaurants[i].Menu = menu
	}

	cf := &File{Restaurants: restaurants}
	if err := cf.Validate(); err != nil {
		return nil, &FetchError{Op: "validating catalog", URL: c.baseURL, Err: invalid(err)}
	}
	return cf, nil
}
