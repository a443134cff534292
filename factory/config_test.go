package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/factory"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/schedule"
)

func TestParse_EmptyDocumentKeepsDefaults(t *testing.T) {
	settings, err := factory.Parse(nil)

	require.NoError(t, err)
	assert.Equal(t, factory.Defaults(), settings)
}

func TestParse_OverlaysOnlyPresentFields(t *testing.T) {
	// GIVEN: A document touching one field per section
	document := []byte(`{
		"schedule": {"timezone": "UTC"},
		"eligibility": {"min_age": 21},
		"activity": {"inactivity_threshold_seconds": 60},
		"leave": {"weekend_penalty_per_day": 55},
		"payroll": {"hourly_rate": 150}
	}`)

	settings, err := factory.Parse(document)
	require.NoError(t, err)

	// Overridden fields take the document's value.
	assert.Equal(t, "UTC", settings.Schedule.Timezone)
	assert.Equal(t, 21, settings.Eligibility.MinAge)
	assert.Equal(t, int64(60), settings.Activity.InactivityThresholdSeconds)
	assert.True(t, decimal.NewFromInt(55).Equal(settings.Leave.WeekendPenaltyPerDay))
	assert.True(t, decimal.NewFromInt(150).Equal(settings.Payroll.HourlyRate))

	// Untouched fields keep the defaults.
	defaults := factory.Defaults()
	assert.Equal(t, defaults.Schedule.Standard, settings.Schedule.Standard)
	assert.Equal(t, defaults.Eligibility.MaxAge, settings.Eligibility.MaxAge)
	assert.Equal(t, defaults.Activity.MinimumDailyHours, settings.Activity.MinimumDailyHours)
	assert.Equal(t, defaults.Leave.MaxConsecutiveDays, settings.Leave.MaxConsecutiveDays)
	assert.True(t, defaults.Payroll.SecurityFund.Equal(settings.Payroll.SecurityFund))
}

func TestParse_WindowsAndPerTypeMaps(t *testing.T) {
	document := []byte(`{
		"schedule": {
			"standard_window": {"start": "20:00", "end": "04:00"},
			"special_access_tenure_days": 30
		},
		"leave": {
			"notice_hours": {"LONG": 96},
			"short_notice_penalty": {"SHORT": 60}
		}
	}`)

	settings, err := factory.Parse(document)
	require.NoError(t, err)

	assert.Equal(t, schedule.At(20, 0), settings.Schedule.Standard.Start)
	assert.Equal(t, schedule.At(4, 0), settings.Schedule.Standard.End)
	assert.Equal(t, 30, settings.Schedule.SpecialAccessTenureDays)

	// Per-type maps merge key by key.
	assert.Equal(t, 96, settings.Leave.NoticeHours[leave.TypeLong])
	assert.Equal(t, 4, settings.Leave.NoticeHours[leave.TypeShort], "untouched key keeps default")
	assert.True(t, decimal.NewFromInt(60).Equal(settings.Leave.ShortNoticePenalty[leave.TypeShort]))
}

func TestParse_MalformedDocument(t *testing.T) {
	_, err := factory.Parse([]byte(`{"schedule": `))
	assert.Error(t, err)

	_, err = factory.Parse([]byte(`{"schedule": {"standard_window": {"start": "25:99", "end": "02:00"}}}`))
	assert.Error(t, err)
}
