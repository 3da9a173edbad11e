package fmi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service endpoints.
const (
	DefaultBaseURL = "https://opendata.fmi.fi/wfs"
	DefaultMetaURL = "https://opendata.fmi.fi/meta"
)

// HTTPClient is the transport collaborator. The core only builds requests
// and consumes returned documents; retries, TLS and connection lifecycle
// belong to the implementation behind this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the FMI open data API.
type Client struct {
	baseURL    string
	metaURL    string
	httpClient HTTPClient
	logger     *slog.Logger
	chunkDelay time.Duration
	useGzip    bool
	now        func() time.Time
}

// NewClient creates a client with a default HTTP transport.
func NewClient() *Client {
	return NewClientWithHTTP(&http.Client{Timeout: 120 * time.Second})
}

// NewClientWithHTTP creates a client over a caller-supplied transport.
func NewClientWithHTTP(httpClient HTTPClient) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		metaURL:    DefaultMetaURL,
		httpClient: httpClient,
		logger:     slog.Default(),
		chunkDelay: time.Second,
		now:        time.Now,
	}
}

// SetBaseURL overrides the WFS endpoint.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(l *slog.Logger) { c.logger = l }

// SetChunkDelay sets the pause between chunked requests. The default of one
// second keeps long range fetches under the upstream rate limit.
func (c *Client) SetChunkDelay(d time.Duration) { c.chunkDelay = d }

// SetGzip enables gzip content negotiation for data requests.
func (c *Client) SetGzip(enabled bool) { c.useGzip = enabled }

// QueryOptions hold the optional inputs of the public query functions.
// Nil times resolve to domain-appropriate defaults at call time, a zero
// Resolution means one hour, and nil Parameters requests the service's
// default parameter set.
type QueryOptions struct {
	StartTime  *time.Time
	EndTime    *time.Time
	Resolution time.Duration
	Parameters []string
	Strict     bool
}

// GetWeather fetches weather observations for a station.
func (c *Client) GetWeather(ctx context.Context, fmisid int, opts QueryOptions) ([]Observation, error) {
	return c.GetSeries(ctx, newRequest(Weather, ModeObservation, fmisid, opts))
}

// GetRadiation fetches solar radiation observations for a station.
func (c *Client) GetRadiation(ctx context.Context, fmisid int, opts QueryOptions) ([]Observation, error) {
	return c.GetSeries(ctx, newRequest(Radiation, ModeObservation, fmisid, opts))
}

// GetAirQuality fetches hourly air quality observations for a station.
func (c *Client) GetAirQuality(ctx context.Context, fmisid int, opts QueryOptions) ([]Observation, error) {
	return c.GetSeries(ctx, newRequest(AirQuality, ModeObservation, fmisid, opts))
}

// GetWeatherForecast fetches the MEPS surface forecast for a station. It
// shares the model output with GetRadiationForecast; restrict Parameters to
// select weather quantities.
func (c *Client) GetWeatherForecast(ctx context.Context, fmisid int, opts QueryOptions) ([]Observation, error) {
	return c.GetSeries(ctx, newRequest(Weather, ModeForecast, fmisid, opts))
}

// GetRadiationForecast fetches the MEPS surface forecast for a station.
func (c *Client) GetRadiationForecast(ctx context.Context, fmisid int, opts QueryOptions) ([]Observation, error) {
	return c.GetSeries(ctx, newRequest(Radiation, ModeForecast, fmisid, opts))
}

// GetAirQualityForecast fetches the SILAM air quality forecast for a station.
func (c *Client) GetAirQualityForecast(ctx context.Context, fmisid int, opts QueryOptions) ([]Observation, error) {
	return c.GetSeries(ctx, newRequest(AirQuality, ModeForecast, fmisid, opts))
}

func newRequest(domain Domain, mode Mode, fmisid int, opts QueryOptions) Request {
	return Request{
		Domain:     domain,
		Mode:       mode,
		StationID:  fmisid,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
		Resolution: opts.Resolution,
		Parameters: opts.Parameters,
		Strict:     opts.Strict,
	}
}

// GetSeries validates the request, dispatches it to its stored query, and
// decodes the response into observations. Long ranges are split into
// chunks issued sequentially through the same transport; validation errors
// surface before any transport call is made.
func (c *Client) GetSeries(ctx context.Context, req Request) ([]Observation, error) {
	n, err := req.normalize(c.now())
	if err != nil {
		return nil, err
	}

	var observations []Observation
	for i, w := range chunkLimits(n.start, n.end, n.step) {
		if i > 0 && c.chunkDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, &TransportError{Err: ctx.Err()}
			case <-time.After(c.chunkDelay):
			}
		}
		c.logger.Debug("querying stored query",
			"storedquery_id", n.queryID,
			"fmisid", n.fmisid,
			"start", w.start.Format(timestampFormat),
			"end", w.end.Format(timestampFormat),
		)
		body, err := c.fetchWFS(ctx, n.values(w.start, w.end))
		if err != nil {
			return nil, err
		}
		obs, err := DecodeObservations(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs...)
	}

	if n.strict && len(observations) == 0 {
		return nil, fmt.Errorf("%w: %s returned no records", ErrEmptyResponse, n.queryID)
	}
	return observations, nil
}

// fetchWFS performs one WFS request and returns the raw document.
func (c *Client) fetchWFS(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if c.useGzip {
		req.Header.Set("Accept-Encoding", "gzip")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if err := CheckResponse(resp); err != nil {
		return nil, err
	}
	return readBody(resp)
}

// Fetch performs one GET through the given transport and returns the raw
// document. The metadata catalogs share this helper for their own stored
// queries.
func Fetch(ctx context.Context, client HTTPClient, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if err := CheckResponse(resp); err != nil {
		return nil, err
	}
	return readBody(resp)
}

// CheckResponse converts a non-200 response into a *TransportError,
// surfacing the OWS exception text when the body carries one.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	msg := parseExceptionReport(body)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &TransportError{StatusCode: resp.StatusCode, Message: msg}
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &TransportError{Err: err}
		}
		defer gz.Close()
		reader = gz
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}

// parseExceptionReport extracts a readable message from an OWS
// ExceptionReport body, or returns "" if the body is something else.
func parseExceptionReport(body []byte) string {
	var report ExceptionReport
	if err := xml.Unmarshal(body, &report); err != nil || len(report.Exceptions) == 0 {
		return ""
	}
	exc := report.Exceptions[0]
	msg := exc.ExceptionCode
	if len(exc.ExceptionText) > 0 {
		msg += ": " + strings.Join(exc.ExceptionText, " | ")
	}
	return msg
}
