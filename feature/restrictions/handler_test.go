package restrictions_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"loot-restrictions/feature/restrictions"
	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/specs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *restrictions.Service) {
	t.Helper()
	svc, _ := setupService(t, testConfig())
	app := fiber.New()
	require.NoError(t, restrictions.NewFeature(svc).Load(app))
	return app, svc
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandleGetDeterminations(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doRequest(t, app, "GET", "/restrictions/items/5001", "")
	assert.Equal(t, 200, status)

	var report restrictions.ItemReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, uint32(strengthNeck), report.ItemID)
	assert.Equal(t, specs.All.Without(specs.Caster), report.Allowed)
	assert.Len(t, report.Determinations, specs.Caster.Len())

	status, _ = doRequest(t, app, "GET", "/restrictions/items/424242", "")
	assert.Equal(t, 404, status)

	status, body = doRequest(t, app, "GET", "/restrictions/items/abc", "")
	assert.Equal(t, 400, status)
	assert.Contains(t, string(body), "error")
}

func TestHandleGetAllowedSpecs(t *testing.T) {
	app, _ := setupApp(t)

	var resp struct {
		Specs []string `json:"specs"`
	}

	status, body := doRequest(t, app, "GET", "/restrictions/items/5003/specs", "")
	assert.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Empty(t, resp.Specs)

	status, body = doRequest(t, app, "GET", "/restrictions/items/5003/specs?include_review=true", "")
	assert.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Len(t, resp.Specs, specs.All.Len())
}

func TestHandleGetDisallowedReasons(t *testing.T) {
	app, _ := setupApp(t)

	var resp struct {
		Spec    string   `json:"spec"`
		Reasons []string `json:"reasons"`
	}

	status, body := doRequest(t, app, "GET", "/restrictions/items/5001/reasons?spec=FireMage", "")
	assert.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, specs.FireMage.Key(), resp.Spec)
	assert.Equal(t, []string{reasonStrength}, resp.Reasons)

	status, _ = doRequest(t, app, "GET", "/restrictions/items/5001/reasons?spec=Bard", "")
	assert.Equal(t, 400, status)

	status, _ = doRequest(t, app, "GET", "/restrictions/items/5001/reasons", "")
	assert.Equal(t, 400, status)
}

func TestHandleReconcile(t *testing.T) {
	app, svc := setupApp(t)

	status, body := doRequest(t, app, "POST", "/restrictions/reconcile?dry_run=true", "")
	assert.Equal(t, 200, status)
	var report restrictions.RunReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.Added)
	assert.Equal(t, 0, report.Executed)

	status, body = doRequest(t, app, "POST", "/restrictions/reconcile", "")
	assert.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 3, report.Executed)

	stored, err := svc.Restrictions(context.Background(), defenseNeck)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	status, _ = doRequest(t, app, "POST", "/restrictions/reconcile?match=fuzzy", "")
	assert.Equal(t, 400, status)
}

func TestHandleManualAndPromote(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doRequest(t, app, "POST", "/restrictions/items/5002/manual",
		`{"specializations":"Mage,HolyPriest","level":"Disallowed","reason":"Reserved for the raid leader"}`)
	require.Equal(t, 201, status, string(body))
	var created models.Restriction
	require.NoError(t, json.Unmarshal(body, &created))
	assert.False(t, created.Automated)
	assert.Equal(t, specs.Mage.Union(specs.Of(specs.HolyPriest)), created.Specializations)

	status, _ = doRequest(t, app, "POST", "/restrictions/items/5002/manual", `{"specializations":"Mage","reason":"x"}`)
	assert.Equal(t, 400, status)

	status, _ = doRequest(t, app, "POST", "/restrictions/items/5002/manual", `not json`)
	assert.Equal(t, 400, status)

	status, _ = doRequest(t, app, "POST", "/restrictions/reconcile", "")
	require.Equal(t, 200, status)

	status, body = doRequest(t, app, "GET", "/restrictions/items/5002/persisted", "")
	require.Equal(t, 200, status)
	var stored []models.Restriction
	require.NoError(t, json.Unmarshal(body, &stored))
	require.Len(t, stored, 2)

	var automated models.Restriction
	for _, r := range stored {
		if r.Automated {
			automated = r
		}
	}
	require.NotZero(t, automated.ID)

	status, body = doRequest(t, app, "POST", "/restrictions/records/"+strconv.FormatUint(uint64(automated.ID), 10)+"/promote", "")
	assert.Equal(t, 200, status)
	var promoted models.Restriction
	require.NoError(t, json.Unmarshal(body, &promoted))
	assert.False(t, promoted.Automated)

	status, _ = doRequest(t, app, "POST", "/restrictions/records/99999/promote", "")
	assert.Equal(t, 404, status)
}

// TestLoader tests the feature wiring.
func TestLoader(t *testing.T) {
	svc, _ := setupService(t, testConfig())

	f := restrictions.NewFeature(svc)
	assert.Equal(t, "restrictions", f.Name())
	assert.True(t, f.IsEnabled())
	assert.Same(t, svc, f.Service())
	assert.NoError(t, f.Load(fiber.New()))

	disabled := restrictions.NewFeature(nil)
	assert.False(t, disabled.IsEnabled())
}
