// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package allocations

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

const defaultFixturePageSize = 25

// Fixture is the on-disk layout of a project fixture file.
type Fixture struct {
	PageSize int             `yaml:"page_size"`
	Projects []types.Project `yaml:"projects"`
}

// FileSource serves a fixture file as if it were the paged catalog. It is
// used for offline runs and tests.
type FileSource struct {
	pageSize int
	projects []types.Project
}

// NewFileSource pages projects in memory. A non-positive pageSize uses 25.
func NewFileSource(projects []types.Project, pageSize int) *FileSource {
	if pageSize <= 0 {
		pageSize = defaultFixturePageSize
	}
	return &FileSource{pageSize: pageSize, projects: projects}
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return NewFileSource(f.Projects, f.PageSize), nil
}

// TotalPages is at least 1, even for an empty fixture.
func (s *FileSource) TotalPages() int {
	n := (len(s.projects) + s.pageSize - 1) / s.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// FetchPage returns the 1-based page. Pages past the end are empty.
func (s *FileSource) FetchPage(ctx context.Context, page int) (types.ProjectPage, error) {
	if err := ctx.Err(); err != nil {
		return types.ProjectPage{}, err
	}
	if page < 1 {
		return types.ProjectPage{}, fmt.Errorf("page %d out of range", page)
	}
	out := types.ProjectPage{TotalPages: s.TotalPages()}
	start := (page - 1) * s.pageSize
	if start >= len(s.projects) {
		return out, nil
	}
	end := min(start+s.pageSize, len(s.projects))
	out.Projects = append([]types.Project(nil), s.projects[start:end]...)
	return out, nil
}
