package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tunza-app/tunza/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of contract strings the API clients rely on.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"LabelAgeUnknown", config.LabelAgeUnknown},
		{"LabelNotBornYet", config.LabelNotBornYet},
		{"TrimesterUnknown", config.TrimesterUnknown},
		{"ICalProdid", config.ICalProdid},
		{"EventLogFileName", config.EventLogFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestTemporalConstants_Sanity checks the classification math inputs.
// These values are contract: brackets were calibrated against them.
func TestTemporalConstants_Sanity(t *testing.T) {
	assert.Equal(t, 280, config.GestationDays, "Gestation must stay 40 weeks * 7 days")
	assert.Equal(t, 40, config.GestationWeeksMax)
	assert.Equal(t, 13, config.TrimesterTwoWeek)
	assert.Equal(t, 28, config.TrimesterThreeWeek)
	assert.InDelta(t, 30.44, config.AvgDaysPerMonth, 0.001, "Average month divisor is a deliberate approximation")
	assert.InDelta(t, 365.25, config.AvgDaysPerYear, 0.001)
	assert.Equal(t, 24, config.AgeMonthsCap)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Tunza/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	// The API serves JSON catalogs, not media. Keep the cap tight.
	assert.LessOrEqual(t, int64(config.MaxHTTPResponseSize), int64(64*1024*1024), "MaxHTTPResponseSize should stay small for JSON payloads")
}

func TestSettings_Validate(t *testing.T) {
	valid := func() *config.Settings {
		return &config.Settings{
			API:    config.APISettings{BaseURL: "https://api.tunza.app", Timeout: 30 * time.Second},
			Server: config.ServerSettings{Port: "18480", RefreshMinutes: 60},
			Locale: config.LocaleSettings{Language: "en"},
		}
	}

	t.Run("valid settings pass", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("empty base URL rejected", func(t *testing.T) {
		s := valid()
		s.API.BaseURL = ""
		assert.Error(t, s.Validate())
	})

	t.Run("non-numeric port rejected", func(t *testing.T) {
		s := valid()
		s.Server.Port = "caldav"
		assert.Error(t, s.Validate())
	})

	t.Run("out-of-range port rejected", func(t *testing.T) {
		s := valid()
		s.Server.Port = "70000"
		assert.Error(t, s.Validate())
	})

	t.Run("unsupported language rejected", func(t *testing.T) {
		s := valid()
		s.Locale.Language = "xx"
		assert.Error(t, s.Validate())
	})

	t.Run("swahili accepted", func(t *testing.T) {
		s := valid()
		s.Locale.Language = "sw"
		assert.NoError(t, s.Validate())
	})
}
