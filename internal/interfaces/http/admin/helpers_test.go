package admin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
)

func TestMapAdminStats_GroupCountsKeyedByDimension(t *testing.T) {
	payload := mapAdminStats(&statsapp.DashboardStats{
		TopRegions: []statsapp.GroupCount{{Name: "Ashanti", Count: 2}},
		TopSectors: []statsapp.GroupCount{{Name: "Government", Count: 1}},
	})

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"topRegions":[{"region":"Ashanti","count":2}]`)
	assert.Contains(t, string(raw), `"topSectors":[{"sector":"Government","count":1}]`)
}
