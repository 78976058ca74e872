package basegov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"strconv"
	"time"

	"basegov/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultBaseUrl = "https://www.base.gov.pt"
	apiVersion     = "141.0"

	searchPath = "/Base4/pt/resultados/"
	warmupPath = "/Base4/pt/pesquisa/"
)

var userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:141.0) Gecko/20100101 Firefox/141.0"

type ClientOptions struct {
	// defaults to DefaultBaseUrl, overridable for tests
	BaseUrl string
	// results requested per search page, defaults to 100
	PageSize int
	// bounded transient-failure retries, defaults to 3
	RetryCount int
	RetryWait  time.Duration
	// politeness throttle between consecutive requests
	RequestDelay time.Duration
}

// Client talks to the portal's internal search and detail endpoints. Both
// are POST form endpoints behind a session cookie obtained by loading the
// public search page once.
type Client struct {
	Http     *resty.Client
	baseUrl  string
	pageSize int
	delay    time.Duration
	lastReq  time.Time
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.RetryCount <= 0 {
		opts.RetryCount = 3
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second * 2
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetHeader("x-requested-with", "XMLHttpRequest")
	client.SetHeader("origin", opts.BaseUrl)
	client.SetTimeout(time.Second * 30)
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWait)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return err != nil || res.StatusCode() >= 500
	})

	telemetry.InstrumentResty(client, "scrapers/basegov/http")

	c := &Client{
		Http:     client,
		baseUrl:  opts.BaseUrl,
		pageSize: opts.PageSize,
		delay:    opts.RequestDelay,
	}

	// the portal rejects search posts without the session cookie set by
	// the public search page
	res, err := client.R().SetContext(ctx).Get(warmupPath)
	if err != nil {
		return nil, fmt.Errorf("session warm-up: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("session warm-up: status %d", res.StatusCode())
	}

	return c, nil
}

func (c *Client) PageSize() int {
	return c.pageSize
}

// DetailPageLink returns the public web page for a contract, which is what
// the report links to.
func (c *Client) DetailPageLink(id int64) string {
	return fmt.Sprintf("%s/Base4/pt/detalhe/?type=contratos&id=%d", c.baseUrl, id)
}

// one request in flight at a time, spaced by the configured delay
func (c *Client) throttle(ctx context.Context) error {
	wait := c.delay - time.Since(c.lastReq)
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastReq = time.Now()
	return nil
}

// SearchPage fetches one page of contract summaries for a keyword scoped to
// a portal district id (0 means the whole country). The second return value
// reports whether more pages may remain.
func (c *Client) SearchPage(ctx context.Context, keyword string, districtID, page int) ([]SearchItem, bool, error) {
	ctx, span := tracer.Start(ctx, "client:SearchPage")
	defer span.End()

	err := c.throttle(ctx)
	if err != nil {
		return nil, false, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"type":    "search_contratos",
			"version": apiVersion,
			"query": fmt.Sprintf(
				"texto=%s&tipo=0&tipocontrato=0&pais=0&distrito=%d&concelho=0",
				keyword, districtID,
			),
			"sort": "-publicationDate",
			"page": strconv.Itoa(page),
			"size": strconv.Itoa(c.pageSize),
		}).
		Post(searchPath)
	if err != nil {
		span.SetStatus(codes.Error, "search request failed")
		return nil, false, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "search request failed")
		return nil, false, fmt.Errorf("search %q page %d: status %d", keyword, page, res.StatusCode())
	}

	var parsed SearchResponse
	err = json.Unmarshal(res.Body(), &parsed)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse search response")
		return nil, false, fmt.Errorf("search %q page %d: %w", keyword, page, err)
	}

	more := len(parsed.Items) == c.pageSize
	return parsed.Items, more, nil
}

// GetDetail fetches the full record for one contract id.
func (c *Client) GetDetail(ctx context.Context, id int64) (ContractDetail, error) {
	ctx, span := tracer.Start(ctx, "client:GetDetail")
	defer span.End()

	err := c.throttle(ctx)
	if err != nil {
		return ContractDetail{}, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("referer", c.DetailPageLink(id)).
		SetFormData(map[string]string{
			"id":      strconv.FormatInt(id, 10),
			"type":    "detail_contratos",
			"version": apiVersion,
		}).
		Post(searchPath)
	if err != nil {
		span.SetStatus(codes.Error, "detail request failed")
		return ContractDetail{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "detail request failed")
		return ContractDetail{}, fmt.Errorf("detail %d: status %d", id, res.StatusCode())
	}

	var detail ContractDetail
	err = json.Unmarshal(res.Body(), &detail)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse detail response")
		return ContractDetail{}, fmt.Errorf("detail %d: %w", id, err)
	}
	if detail.ID == 0 {
		detail.ID = id
	}

	return detail, nil
}
