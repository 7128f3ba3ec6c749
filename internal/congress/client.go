package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/leveneer/congress-member-data/internal/calendar"
	"github.com/leveneer/congress-member-data/internal/errors"
)

const (
	// DefaultBaseURL is the Congress.gov API root.
	DefaultBaseURL = "https://api.congress.gov/v3"

	// DefaultPageSize is the upstream maximum per request.
	DefaultPageSize = 250

	// defaultRateLimit keeps well under the 5,000 requests/hour cap.
	defaultRateLimit = 2
)

// ClientConfig configures a Client. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL   string
	APIKey    string
	PageSize  int
	RateLimit int // requests per second
	Timeout   time.Duration
}

// Client wraps the Congress.gov member endpoint with rate limiting.
// Fetches are strictly sequential; each page request is issued only
// after the prior page has been consumed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	limiter    *rate.Limiter
	log        *logrus.Logger
}

// NewClient creates a new Congress.gov client.
func NewClient(cfg ClientConfig, log *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if log == nil {
		log = logrus.New()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		pageSize:   cfg.PageSize,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		log:        log,
	}
}

// FetchOptions narrows a member fetch. Chamber must already be a
// canonical label ("House"/"Senate"); State is a two-letter code.
type FetchOptions struct {
	Chamber string
	State   string
}

// FetchMembers retrieves all members of the given Congress, applies the
// state and chamber filters, and computes summary statistics in one
// pass. The state code is validated before any upstream call. Upstream
// failures abort immediately and are never retried.
func (c *Client) FetchMembers(ctx context.Context, congress int, opts FetchOptions) ([]Member, Stats, error) {
	var stateName string
	if opts.State != "" {
		name, err := StateName(opts.State)
		if err != nil {
			return nil, Stats{}, err
		}
		stateName = name
	}

	// The upstream's currentMember parameter must be true only when
	// querying the Congress currently in session; historical queries
	// with currentMember=true drop members who have since left.
	isCurrent := congress == calendar.CongressForDate(time.Now())

	var all []Member
	offset := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, Stats{}, fmt.Errorf("rate limiter: %w", err)
		}

		page, err := c.fetchPage(ctx, congress, opts.Chamber, isCurrent, offset)
		if err != nil {
			return nil, Stats{}, err
		}
		c.log.WithFields(logrus.Fields{
			"offset": offset,
			"count":  len(page.Members),
		}).Debug("fetched member page")

		if len(page.Members) == 0 {
			break
		}
		all = append(all, page.Members...)

		// An absent or malformed continuation marker means stop.
		if page.Pagination.Next == "" {
			break
		}
		offset += c.pageSize
	}
	c.log.WithField("total", len(all)).Debug("finished paging members")

	if stateName != "" {
		all = filterByState(all, stateName)
		c.log.WithFields(logrus.Fields{"state": stateName, "count": len(all)}).Debug("applied state filter")
	}
	if opts.Chamber != "" {
		all = filterByChamber(all, opts.Chamber)
		c.log.WithFields(logrus.Fields{"chamber": opts.Chamber, "count": len(all)}).Debug("applied chamber filter")
	}

	return all, ComputeStats(all, congress, isCurrent), nil
}

func (c *Client) fetchPage(ctx context.Context, congress int, chamber string, currentOnly bool, offset int) (*memberPage, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("currentMember", strconv.FormatBool(currentOnly))
	q.Set("offset", strconv.Itoa(offset))
	if chamber != "" {
		q.Set("chamber", chamber)
	}

	endpoint := fmt.Sprintf("%s/member/congress/%d?%s", c.baseURL, congress, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.InternalErrorf("building member request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkErrorf(err, "fetching members from %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.ExternalErrorf("upstream returned %s at offset %d: %s",
			resp.Status, offset, strings.TrimSpace(string(body))).
			WithContext("status_code", resp.StatusCode).
			WithContext("offset", offset)
	}

	var page memberPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errors.ExternalError(err, "decoding member page")
	}
	return &page, nil
}

// filterByState keeps members whose state matches the full state name
// exactly.
func filterByState(members []Member, stateName string) []Member {
	filtered := make([]Member, 0, len(members))
	for _, m := range members {
		if m.State == stateName {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// filterByChamber keeps members whose current chamber matches the
// canonical label. Case-sensitive: the upstream chamber parameter is
// unreliable, so this is the authoritative filter.
func filterByChamber(members []Member, chamber string) []Member {
	filtered := make([]Member, 0, len(members))
	for _, m := range members {
		if CurrentChamber(m) == chamber {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
