// Package entrez is a minimal client for the NCBI E-utilities endpoints
// used by this tool: taxonomy lookup, nucleotide search with server-side
// history, and batched nucleotide fetch.
package entrez

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MaxFetchBatch is the largest number of records the service accepts in a
// single fetch. Larger requests are capped, and the cap is logged.
const MaxFetchBatch = 500

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client issues E-utilities requests. Every request carries the contact
// email, the tool name, and the API key when one is set.
type Client struct {
	email   string
	apiKey  string
	tool    string
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the E-utilities base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// New creates a Client for the given contact email and API key.
func New(email, apiKey string, opts ...Option) *Client {
	c := &Client{
		email:   email,
		apiKey:  apiKey,
		tool:    "taxfetch",
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session holds the server-side history handles and total match count
// returned by a successful search. It is immutable; Fetch takes it as an
// argument, so a fetch cannot happen without a search having produced one.
type Session struct {
	WebEnv   string
	QueryKey string
	Count    int
}

type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count    string `json:"count"`
	QueryKey string `json:"querykey"`
	WebEnv   string `json:"webenv"`
}

type taxaSet struct {
	Taxa []struct {
		TaxID          string `xml:"TaxId"`
		ScientificName string `xml:"ScientificName"`
	} `xml:"Taxon"`
}

func (c *Client) params() url.Values {
	q := url.Values{}
	q.Set("email", c.email)
	q.Set("tool", c.tool)
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	return q
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse request url: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eutils %s (status %d): %s", endpoint, resp.StatusCode, string(body))
	}
	return body, nil
}

// LookupOrganism fetches the taxonomy record for taxid and returns its
// scientific name.
func (c *Client) LookupOrganism(ctx context.Context, taxid string) (string, error) {
	q := c.params()
	q.Set("db", "taxonomy")
	q.Set("id", taxid)
	q.Set("retmode", "xml")

	body, err := c.get(ctx, "efetch.fcgi", q)
	if err != nil {
		return "", fmt.Errorf("taxonomy fetch: %w", err)
	}

	var set taxaSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return "", fmt.Errorf("parse taxonomy response: %w", err)
	}
	if len(set.Taxa) == 0 || set.Taxa[0].ScientificName == "" {
		return "", fmt.Errorf("no taxonomy record for taxid %s", taxid)
	}
	return set.Taxa[0].ScientificName, nil
}

// Search queries the nucleotide database for all records under the given
// taxonomic subtree with server-side history enabled. It returns nil with
// no error when the query matches zero records.
func (c *Client) Search(ctx context.Context, taxid string) (*Session, error) {
	q := c.params()
	q.Set("db", "nucleotide")
	q.Set("term", fmt.Sprintf("txid%s[Organism]", taxid))
	q.Set("usehistory", "y")
	q.Set("retmode", "json")

	body, err := c.get(ctx, "esearch.fcgi", q)
	if err != nil {
		return nil, fmt.Errorf("nucleotide search: %w", err)
	}

	var res esearchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	count, err := strconv.Atoi(res.Result.Count)
	if err != nil {
		return nil, fmt.Errorf("parse result count %q: %w", res.Result.Count, err)
	}
	if count == 0 {
		return nil, nil
	}
	if res.Result.WebEnv == "" || res.Result.QueryKey == "" {
		return nil, fmt.Errorf("search response missing history handles")
	}
	return &Session{
		WebEnv:   res.Result.WebEnv,
		QueryKey: res.Result.QueryKey,
		Count:    count,
	}, nil
}

// Fetch retrieves up to maxRecords nucleotide records starting at the given
// offset, as FASTA flat-file text. A nil session returns an empty result
// without touching the network. Requests above MaxFetchBatch are capped.
func (c *Client) Fetch(ctx context.Context, s *Session, start, maxRecords int) (string, error) {
	if s == nil {
		slog.Info("no search session, skipping fetch")
		return "", nil
	}

	batch := maxRecords
	if batch > MaxFetchBatch {
		slog.Info("capping fetch batch", "requested", maxRecords, "batch", MaxFetchBatch)
		batch = MaxFetchBatch
	}

	q := c.params()
	q.Set("db", "nucleotide")
	q.Set("rettype", "fasta")
	q.Set("retmode", "text")
	q.Set("retstart", strconv.Itoa(start))
	q.Set("retmax", strconv.Itoa(batch))
	q.Set("WebEnv", s.WebEnv)
	q.Set("query_key", s.QueryKey)

	body, err := c.get(ctx, "efetch.fcgi", q)
	if err != nil {
		return "", fmt.Errorf("nucleotide fetch: %w", err)
	}
	return string(body), nil
}
