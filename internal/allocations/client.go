// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package allocations reads the allocations catalog, either from its paged
// JSON API or from a YAML fixture file.
package allocations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/allocations-engine/internal/httputil"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

// defaultBaseURL is the public current-projects endpoint. Declared as a var
// so tests can substitute an httptest server.
var defaultBaseURL = "https://allocations.access-ci.org/current-projects.json"

// Client fetches pages from the allocations JSON API.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

// NewClient builds a Client from configuration. An empty base URL selects the
// public endpoint.
func NewClient(cfg types.AllocationsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   base,
		UserAgent: cfg.UserAgent,
	}
}

// FetchPage returns one 1-based page of projects and the catalog's page count.
func (c *Client) FetchPage(ctx context.Context, page int) (types.ProjectPage, error) {
	if page < 1 {
		return types.ProjectPage{}, fmt.Errorf("page %d out of range", page)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return types.ProjectPage{}, fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return types.ProjectPage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return types.ProjectPage{}, fmt.Errorf("allocations API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ProjectPage{}, fmt.Errorf("allocations API returned HTTP %d", resp.StatusCode)
	}

	var ar apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return types.ProjectPage{}, fmt.Errorf("parsing allocations response: %w", err)
	}

	out := types.ProjectPage{TotalPages: ar.Pages}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	for _, p := range ar.Projects {
		out.Projects = append(out.Projects, p.toProject())
	}
	return out, nil
}

func (p apiProject) toProject() types.Project {
	proj := types.Project{
		ID:             p.ProjectID,
		Title:          strings.TrimSpace(p.RequestTitle),
		PI:             strings.TrimSpace(p.PI),
		Institution:    strings.TrimSpace(p.PIInstitution),
		FieldOfScience: strings.TrimSpace(p.FOS),
		AllocationType: strings.TrimSpace(p.AllocationType),
		Abstract:       strings.TrimSpace(p.Abstract),
		StartDate:      parseDate(p.BeginDate),
		EndDate:        parseDate(p.EndDate),
	}
	for _, r := range p.Resources {
		proj.Resources = append(proj.Resources, types.ResourceAllocation{
			ResourceName: strings.TrimSpace(r.ResourceName),
			Units:        strings.TrimSpace(r.Units),
			Amount:       float64(r.Allocation),
		})
	}
	return proj
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "01/02/2006"}

// parseDate accepts the layouts the catalog has been seen to use. Unknown
// values yield the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// amount decodes a JSON number, a numeric string ("12,500") or null.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid allocation amount %q", string(b))
	}
	*a = amount(f)
	return nil
}

// Allocations API JSON structures.
type apiResponse struct {
	Projects []apiProject `json:"projects"`
	Pages    int          `json:"pages"`
}

type apiProject struct {
	ProjectID      int           `json:"projectId"`
	RequestNumber  string        `json:"requestNumber"`
	RequestTitle   string        `json:"requestTitle"`
	PI             string        `json:"pi"`
	PIInstitution  string        `json:"piInstitution"`
	FOS            string        `json:"fos"`
	Abstract       string        `json:"abstract"`
	AllocationType string        `json:"allocationType"`
	BeginDate      string        `json:"beginDate"`
	EndDate        string        `json:"endDate"`
	Resources      []apiResource `json:"resources"`
}

type apiResource struct {
	ResourceName string `json:"resourceName"`
	Units        string `json:"units"`
	Allocation   amount `json:"allocation"`
}
