package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ebayer/folio/internal/reference"
)

const (
	// CrossrefBaseURL is the Crossref REST API base URL.
	CrossrefBaseURL = "https://api.crossref.org"

	// CrossrefRateLimit stays under Crossref's polite-pool guidance.
	CrossrefRateLimit = 5.0

	// crossrefTimeout bounds one metadata lookup.
	crossrefTimeout = 30 * time.Second
)

// CrossrefClient is a rate-limited client for the Crossref works API.
type CrossrefClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// CrossrefOption configures a CrossrefClient.
type CrossrefOption func(*CrossrefClient)

// WithCrossrefBaseURL sets a custom base URL (for testing).
func WithCrossrefBaseURL(u string) CrossrefOption {
	return func(c *CrossrefClient) { c.baseURL = u }
}

// WithMailto adds a mailto parameter, which routes requests to Crossref's
// polite pool.
func WithMailto(email string) CrossrefOption {
	return func(c *CrossrefClient) { c.mailto = email }
}

// WithCrossrefHTTPClient sets a custom HTTP client.
func WithCrossrefHTTPClient(hc *http.Client) CrossrefOption {
	return func(c *CrossrefClient) { c.httpClient = hc }
}

// NewCrossrefClient creates a Crossref API client.
func NewCrossrefClient(opts ...CrossrefOption) *CrossrefClient {
	c := &CrossrefClient{
		httpClient: &http.Client{Timeout: crossrefTimeout},
		limiter:    rate.NewLimiter(rate.Limit(CrossrefRateLimit), 1),
		baseURL:    CrossrefBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// crossrefWork mirrors the subset of the Crossref message we consume.
type crossrefWork struct {
	Message struct {
		Type   string `json:"type"`
		Title  []string
		Author []struct {
			Family string `json:"family"`
			Given  string `json:"given"`
		} `json:"author"`
		ContainerTitle []string `json:"container-title"`
		Volume         string   `json:"volume"`
		Issue          string   `json:"issue"`
		Page           string   `json:"page"`
		DOI            string   `json:"DOI"`
		URL            string   `json:"URL"`
		PublishedPrint struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"published-print"`
		PublishedOnline struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"published-online"`
		Created struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"created"`
	} `json:"message"`
}

// Work fetches metadata for one DOI.
func (c *CrossrefClient) Work(ctx context.Context, doi string) (reference.Reference, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return reference.Reference{}, err
	}

	u := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi))
	if c.mailto != "" {
		u += "?mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return reference.Reference{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return reference.Reference{}, fmt.Errorf("crossref request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return reference.Reference{}, fmt.Errorf("crossref status %d for %s", resp.StatusCode, doi)
	}

	var work crossrefWork
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		return reference.Reference{}, fmt.Errorf("parsing crossref response: %w", err)
	}

	return toReference(work), nil
}

// toReference maps a Crossref message to the engine's reference record.
// Year preference: published-print, then published-online, then created.
func toReference(work crossrefWork) reference.Reference {
	m := work.Message

	ref := reference.Reference{
		Type:   m.Type,
		Volume: m.Volume,
		Issue:  m.Issue,
		Pages:  m.Page,
		DOI:    m.DOI,
		URL:    m.URL,
	}
	if ref.Type == "" {
		ref.Type = "article-journal"
	}
	if len(m.Title) > 0 {
		ref.Title = m.Title[0]
	}
	if len(m.ContainerTitle) > 0 {
		ref.Container = m.ContainerTitle[0]
	}
	for _, a := range m.Author {
		ref.Authors = append(ref.Authors, reference.Author{Family: a.Family, Given: a.Given})
	}

	for _, parts := range [][][]int{m.PublishedPrint.DateParts, m.PublishedOnline.DateParts, m.Created.DateParts} {
		if len(parts) > 0 && len(parts[0]) > 0 && parts[0][0] > 0 {
			ref.Year = parts[0][0]
			break
		}
	}
	if ref.Year == 0 {
		ref.Year = time.Now().Year()
	}
	return ref
}
