package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportYAML_ContainsForumRoutes(t *testing.T) {
	raw, err := exportYAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "swagger.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	spec, err := loadSpec(path)
	require.NoError(t, err)
	assert.Contains(t, spec.Paths, "/auth/login")
	assert.Contains(t, spec.Paths, "/feedback")

	assert.Empty(t, compare(spec, spec))
}

func TestCompare_ReportsRemovals(t *testing.T) {
	base := parsedSpec{Paths: map[string]map[string]operation{
		"/forum":       {"get": {Responses: map[string]struct{}{"200": {}, "302": {}}}},
		"/auth/logout": {"post": {Responses: map[string]struct{}{"302": {}}}},
	}}
	revision := parsedSpec{Paths: map[string]map[string]operation{
		"/forum": {"get": {Responses: map[string]struct{}{"200": {}}}},
	}}

	issues := compare(base, revision)
	assert.Equal(t, []string{
		"removed path: /auth/logout",
		"removed response code: GET /forum -> 302",
	}, issues)
}
