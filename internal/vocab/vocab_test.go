package vocab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRegion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ashanti", "Ashanti"},
		{"  ashanti  ", "Ashanti"},
		{"GREATER ACCRA", "Greater Accra"},
		{"gt accra", "Greater Accra"},
		{"brong ahafo", "Bono"},
	}
	for _, tc := range cases {
		got, err := CanonicalRegion(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := CanonicalRegion("")
	assert.Error(t, err)
	_, err = CanonicalRegion("Atlantis")
	assert.Error(t, err)
}

func TestCanonicalDisease(t *testing.T) {
	got, err := CanonicalDisease(" diabetes ")
	require.NoError(t, err)
	assert.Equal(t, "Diabetes", got)

	got, err = CanonicalDisease("CVD")
	require.NoError(t, err)
	assert.Equal(t, "Cardiovascular Disease", got)

	_, err = CanonicalDisease("common cold")
	assert.Error(t, err)
}

func TestValidYear(t *testing.T) {
	assert.False(t, ValidYear(MinReportingYear-1))
	assert.True(t, ValidYear(MinReportingYear))
	assert.True(t, ValidYear(time.Now().Year()))
	assert.False(t, ValidYear(time.Now().Year()+1))
}

func TestReportingYears_NewestFirst(t *testing.T) {
	years := ReportingYears()
	require.NotEmpty(t, years)
	assert.Equal(t, MaxReportingYear(), years[0])
	assert.Equal(t, MinReportingYear, years[len(years)-1])
}
