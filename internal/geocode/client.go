package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"materialOrderManagement/models"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client is a Provider backed by the Google-style geocoding HTTP API.
// One request per call; callers decide whether to retry.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

// WithBaseURL overrides the provider endpoint (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a geocoding client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response mirrors the provider payload; only the fields this core reads.
type response struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location models.LatLng `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Forward resolves address text to a point. ZERO_RESULTS normalizes to
// ErrAddressNotFound; everything else non-OK, including transport failures
// and timeouts, to ErrProvider.
func (c *Client) Forward(ctx context.Context, address string) (models.LatLng, error) {
	q := url.Values{}
	q.Set("address", address)
	resp, err := c.call(ctx, q)
	if err != nil {
		return models.LatLng{}, err
	}
	if len(resp.Results) == 0 {
		return models.LatLng{}, ErrAddressNotFound
	}
	return resp.Results[0].Geometry.Location, nil
}

// Reverse resolves a point to a structured address. Missing components come
// back as empty strings so the caller can still prefill what is known.
func (c *Client) Reverse(ctx context.Context, point models.LatLng) (models.Address, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", point.Lat, point.Lng))
	resp, err := c.call(ctx, q)
	if err != nil {
		return models.Address{}, err
	}
	if len(resp.Results) == 0 {
		return models.Address{}, ErrAddressNotFound
	}
	components := resp.Results[0].AddressComponents
	pick := func(types ...string) string {
		for _, comp := range components {
			for _, want := range types {
				for _, have := range comp.Types {
					if have == want {
						return comp.LongName
					}
				}
			}
		}
		return ""
	}
	return models.Address{
		Street:       pick("route"),
		Number:       pick("street_number"),
		Colony:       pick("neighborhood", "sublocality"),
		Municipality: pick("locality", "administrative_area_level_2"),
		State:        pick("administrative_area_level_1"),
		PostalCode:   pick("postal_code"),
	}, nil
}

func (c *Client) call(ctx context.Context, q url.Values) (*response, error) {
	q.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrProvider, err)
	}
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %d", ErrProvider, httpResp.StatusCode)
	}
	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrProvider, err)
	}
	switch resp.Status {
	case "OK":
		return &resp, nil
	case "ZERO_RESULTS":
		return nil, ErrAddressNotFound
	default:
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrProvider, resp.Status, resp.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: %s", ErrProvider, resp.Status)
	}
}
