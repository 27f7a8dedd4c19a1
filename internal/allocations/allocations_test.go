// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package allocations

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/allocations-engine/internal/httputil"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const pageJSON = `{
  "pages": 3,
  "projects": [
    {
      "projectId": 41,
      "requestNumber": "CIS230041",
      "requestTitle": " Deep Learning for Protein Folding ",
      "pi": "Jane A. Doe",
      "piInstitution": "Massachusetts Institute of Technology",
      "fos": "Biophysics",
      "abstract": "We train transformers on structures.",
      "allocationType": "Explore",
      "beginDate": "2023-07-01",
      "endDate": "2024-06-30T00:00:00Z",
      "resources": [
        {"resourceName": "NCSA Delta GPU", "units": "GPU Hours", "allocation": 5000},
        {"resourceName": "Ranch Storage", "units": "TB", "allocation": "1,500"},
        {"resourceName": "Anvil", "units": "SUs", "allocation": null}
      ]
    }
  ]
}`

func TestClientFetchPage(t *testing.T) {
	var gotPage, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pageJSON)
	}))
	defer ts.Close()

	c := &Client{HTTP: ts.Client(), BaseURL: ts.URL, UserAgent: "allocations-engine/test"}
	page, err := c.FetchPage(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "allocations-engine/test", gotUA)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Projects, 1)

	p := page.Projects[0]
	assert.Equal(t, 41, p.ID)
	assert.Equal(t, "Deep Learning for Protein Folding", p.Title)
	assert.Equal(t, "Jane A. Doe", p.PI)
	assert.Equal(t, "Biophysics", p.FieldOfScience)
	assert.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, 2024, p.EndDate.Year())
	require.Len(t, p.Resources, 3)
	assert.Equal(t, 5000.0, p.Resources[0].Amount)
	assert.Equal(t, 1500.0, p.Resources[1].Amount)
	assert.Equal(t, 0.0, p.Resources[2].Amount)
	assert.Equal(t, 6500.0, p.TotalAllocation())
}

func TestClientKeepsExistingQuery(t *testing.T) {
	var raw string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		fmt.Fprint(w, `{"pages": 0, "projects": []}`)
	}))
	defer ts.Close()

	c := &Client{HTTP: ts.Client(), BaseURL: ts.URL + "?status=current"}
	page, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, raw, "status=current")
	assert.Contains(t, raw, "page=1")
	assert.Equal(t, 1, page.TotalPages, "page count is at least one")
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			errMsg:  "HTTP 502",
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `{"projects": [`) },
			errMsg:  "parsing allocations response",
		},
		{
			name: "bad amount",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"projects": [{"projectId": 1, "resources": [{"allocation": "lots"}]}]}`)
			},
			errMsg: "invalid allocation amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := &Client{HTTP: ts.Client(), BaseURL: ts.URL}
			_, err := c.FetchPage(context.Background(), 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClientRejectsPageZero(t *testing.T) {
	c := &Client{HTTP: http.DefaultClient, BaseURL: "http://127.0.0.1:0"}
	_, err := c.FetchPage(context.Background(), 0)
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.AllocationsConfig{})
	assert.Equal(t, defaultBaseURL, c.BaseURL)
	assert.Equal(t, 30*time.Second, c.HTTP.Timeout)

	c = NewClient(types.AllocationsConfig{BaseURL: "http://local", HTTPConfig: types.HTTPConfig{Timeout: time.Second}})
	assert.Equal(t, "http://local", c.BaseURL)
	assert.Equal(t, time.Second, c.HTTP.Timeout)
}

func TestFileSourcePaging(t *testing.T) {
	projects := make([]types.Project, 5)
	for i := range projects {
		projects[i] = types.Project{ID: i + 1}
	}
	src := NewFileSource(projects, 2)
	assert.Equal(t, 3, src.TotalPages())

	ctx := context.Background()
	var ids []int
	for page := 1; page <= 4; page++ {
		pp, err := src.FetchPage(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, 3, pp.TotalPages)
		for _, p := range pp.Projects {
			ids = append(ids, p.ID)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)

	_, err := src.FetchPage(ctx, 0)
	assert.Error(t, err)

	assert.Equal(t, 1, NewFileSource(nil, 0).TotalPages())
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	content := `page_size: 1
projects:
  - id: 7
    title: Climate Emulators
    pi: Ana Lopez
    institution: University of Colorado Boulder
    field_of_science: Atmospheric Sciences
    start_date: 2022-01-01
    resources:
      - resource_name: Delta GPU
        amount: 1200
  - id: 8
    title: Lattice QCD
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, 2, src.TotalPages())

	pp, err := src.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pp.Projects, 1)
	assert.Equal(t, "Climate Emulators", pp.Projects[0].Title)
	assert.Equal(t, 2022, pp.Projects[0].StartDate.Year())
	assert.Equal(t, 1200.0, pp.Projects[0].TotalAllocation())

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, 2021, parseDate("2021-09-01").Year())
	assert.Equal(t, 2021, parseDate("09/01/2021").Year())
	assert.True(t, parseDate("soon").IsZero())
	assert.True(t, parseDate("").IsZero())
}
