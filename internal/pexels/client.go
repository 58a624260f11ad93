package pexels

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"wallcraft/internal/apperr"
	"wallcraft/internal/model"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// PerPage is fixed for both curated and search listings.
	PerPage = 30

	DefaultBaseURL = "https://api.pexels.com/v1"

	instrumentationName = "wallcraft/internal/pexels"
)

// Lister is the read side of the catalog used by feeds.
type Lister interface {
	Curated(ctx context.Context, page int) ([]model.Wallpaper, error)
	Search(ctx context.Context, query string, page int) ([]model.Wallpaper, error)
}

// Page is one listing response. Only Photos is consumed by feeds.
type Page struct {
	Page         int
	PerPage      int
	TotalResults int
	NextPage     string
	PrevPage     string
	Photos       []model.Wallpaper
}

type Client struct {
	BaseURL string
	APIKey  string
	HC      *http.Client

	requests metric.Int64Counter
}

func New(baseURL, apiKey string, hc *http.Client) *Client {
	c := &Client{BaseURL: baseURL, APIKey: apiKey, HC: hc}

	requests, err := otel.Meter(instrumentationName).Int64Counter(
		"pexels.requests",
		metric.WithDescription("Catalog requests by endpoint and outcome"),
	)
	if err == nil {
		c.requests = requests
	}
	return c
}

// Curated fetches one page of the editor-curated feed.
func (c *Client) Curated(ctx context.Context, page int) ([]model.Wallpaper, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(PerPage))
	q.Set("page", strconv.Itoa(page))

	p, err := c.List(ctx, "curated", q)
	if err != nil {
		return nil, err
	}
	return p.Photos, nil
}

// Search fetches one page of results for query. The query is sent as given.
func (c *Client) Search(ctx context.Context, query string, page int) ([]model.Wallpaper, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(PerPage))
	q.Set("page", strconv.Itoa(page))

	p, err := c.List(ctx, "search", q)
	if err != nil {
		return nil, err
	}
	return p.Photos, nil
}

// List performs a single GET against endpoint and decodes the page.
func (c *Client) List(ctx context.Context, endpoint string, q url.Values) (*Page, error) {
	op := "pexels." + endpoint
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, op, trace.WithAttributes(
		attribute.String("pexels.endpoint", endpoint),
		attribute.String("pexels.page", q.Get("page")),
	))
	defer span.End()

	p, err := c.list(ctx, op, endpoint, q)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	if c.requests != nil {
		c.requests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("endpoint", endpoint),
			attribute.String("outcome", outcome),
		))
	}
	return p, err
}

func (c *Client) list(ctx context.Context, op, endpoint string, q url.Values) (*Page, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperr.RemoteFetchError(op, 0, "build request", err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")

	hc := c.HC
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, apperr.RemoteFetchError(op, 0, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.RemoteFetchError(op, resp.StatusCode, "read body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.RemoteFetchError(op, resp.StatusCode, upstreamMessage(body, resp.Status), nil)
	}

	p := new(Page)
	if err := p.Decode(jx.DecodeBytes(body)); err != nil {
		return nil, apperr.RemoteFetchError(op, resp.StatusCode, "decode response", err)
	}
	return p, nil
}

func (p *Page) Decode(d *jx.Decoder) error {
	p.Photos = make([]model.Wallpaper, 0, PerPage)
	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		var err error
		switch string(k) {
		case "page":
			p.Page, err = d.Int()
		case "per_page":
			p.PerPage, err = d.Int()
		case "total_results":
			p.TotalResults, err = d.Int()
		case "next_page":
			p.NextPage, err = optStr(d)
		case "prev_page":
			p.PrevPage, err = optStr(d)
		case "photos":
			err = d.Arr(func(d *jx.Decoder) error {
				var w model.Wallpaper
				if err := w.Decode(d); err != nil {
					return err
				}
				p.Photos = append(p.Photos, w)
				return nil
			})
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "decode %q", k)
		}
		return nil
	})
}

// upstreamMessage extracts {"error": "..."} from an error body, falling back
// to the status line.
func upstreamMessage(body []byte, status string) string {
	var msg string
	err := jx.DecodeBytes(body).ObjBytes(func(d *jx.Decoder, k []byte) error {
		if string(k) == "error" && d.Next() == jx.String {
			s, err := d.Str()
			msg = s
			return err
		}
		return d.Skip()
	})
	if err != nil || msg == "" {
		return status
	}
	return msg
}

func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}
