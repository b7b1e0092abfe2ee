package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), "rendered document must be valid JSON")

	routes := map[string][]string{
		"/api/v1/activate":                      {"post"},
		"/api/v1/validate":                      {"post"},
		"/api/v1/deactivate":                    {"post"},
		"/api/v1/releases/latest":               {"get"},
		"/api/admin/releases":                   {"get", "post"},
		"/api/admin/releases/{id}/set-latest":   {"post"},
		"/api/admin/admins":                     {"get", "post"},
		"/api/admin/admins/{id}/reset-password": {"post"},
	}
	for path, methods := range routes {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, "%s %s", m, path)
		}
	}

	for _, def := range []string{"models.APIResponse", "models.Release", "models.CreateReleaseRequest", "models.LatestReleaseResponse"} {
		assert.Contains(t, doc.Definitions, def)
	}
}
