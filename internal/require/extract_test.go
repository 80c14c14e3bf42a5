package require

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/esgtrack/internal/clock"
	"github.com/verdantiq/esgtrack/internal/domain"
)

func fixedClock() clock.Fixed {
	return clock.Fixed{T: time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)}
}

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(fixedClock(), PeriodModeCurrent, 0, zerolog.Nop())
}

func officeLocations() []domain.Location {
	return []domain.Location{
		{
			Name: "Main Office",
			Meters: []domain.RawMeter{
				{MeterNumber: "ELC0001", Type: "electricity", Provider: "DEWA"},
			},
		},
	}
}

func fieldKeys(fields []domain.DataField) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return keys
}

func docKeys(docs []domain.DocumentRequirement) []string {
	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.Key)
	}
	return keys
}

func TestPeriods(t *testing.T) {
	e := testExtractor(t)

	t.Run("current mode emits the current calendar month", func(t *testing.T) {
		periods := e.Periods(&domain.Task{Title: "Upload monthly electricity bills"})
		require.Len(t, periods, 1)

		p := periods[0]
		assert.Equal(t, "current", p.Key)
		assert.Equal(t, "March 2026", p.Name)
		assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("fuel purchase tasks have no recurring periods", func(t *testing.T) {
		periods := e.Periods(&domain.Task{Title: "Track diesel generator fuel purchases"})
		assert.Nil(t, periods)
	})

	t.Run("lpg cooking tasks have no recurring periods", func(t *testing.T) {
		periods := e.Periods(&domain.Task{Title: "Record LPG used for cooking"})
		assert.Nil(t, periods)
	})

	t.Run("window mode emits trailing months oldest first", func(t *testing.T) {
		we := NewExtractor(fixedClock(), PeriodModeWindow, 3, zerolog.Nop())
		periods := we.Periods(&domain.Task{Title: "Upload monthly electricity bills"})
		require.Len(t, periods, 3)
		assert.Equal(t, "2026-01", periods[0].Key)
		assert.Equal(t, "2026-02", periods[1].Key)
		assert.Equal(t, "2026-03", periods[2].Key)
		assert.Equal(t, "January 2026", periods[0].Name)
	})
}

func TestDataFields(t *testing.T) {
	e := testExtractor(t)

	t.Run("electricity bills task with configured meter", func(t *testing.T) {
		task := &domain.Task{
			Title:          "Upload monthly electricity bills",
			ActionRequired: "Upload 1 month of electricity bills",
		}
		fields := e.DataFields(task, officeLocations())
		assert.Equal(t, []string{"ELC0001_current", "ELC0001_cost", "notes"}, fieldKeys(fields))

		reading := fields[0]
		assert.Equal(t, "Electricity Reading - March 2026", reading.Label)
		assert.Equal(t, domain.FieldTypeNumber, reading.Type)
		assert.Equal(t, "kWh", reading.Unit)
		assert.True(t, reading.Required)
		require.NotNil(t, reading.Meter)
		assert.Equal(t, "ELC0001", reading.Meter.ID)

		cost := fields[1]
		assert.False(t, cost.Required)
		assert.Equal(t, "AED", cost.Unit)

		assert.False(t, fields[2].Required, "notes are always optional")
	})

	t.Run("missing meter type yields a warning pseudo-field", func(t *testing.T) {
		task := &domain.Task{Title: "Log electricity and gas consumption"}
		fields := e.DataFields(task, officeLocations())

		var warning *domain.DataField
		for i := range fields {
			if fields[i].Type == domain.FieldTypeWarning {
				warning = &fields[i]
			}
		}
		require.NotNil(t, warning)
		assert.Equal(t, "no_meters_warning", warning.Key)
		assert.False(t, warning.Required)
		assert.Equal(t, []domain.MeterType{domain.MeterTypeGas}, warning.MissingMeterTypes)
		assert.Contains(t, warning.Message, "gas")
	})

	t.Run("fuel-only task gets no meter fields", func(t *testing.T) {
		task := &domain.Task{Title: "Track diesel generator fuel purchases"}
		fields := e.DataFields(task, officeLocations())
		assert.Equal(t, []string{"notes"}, fieldKeys(fields))
	})

	t.Run("cooling task gets no meter fields despite electricity mention", func(t *testing.T) {
		task := &domain.Task{Title: "Review district cooling electricity charges"}
		fields := e.DataFields(task, officeLocations())
		assert.Equal(t, []string{"notes"}, fieldKeys(fields))
	})

	t.Run("percentage rule emits a required percentage field", func(t *testing.T) {
		task := &domain.Task{Title: "Report percentage of waste recycled"}
		fields := e.DataFields(task, officeLocations())
		assert.Equal(t, []string{"percentage", "notes"}, fieldKeys(fields))
		assert.True(t, fields[0].Required)
		assert.Equal(t, "%", fields[0].Unit)
	})

	t.Run("peak demand field for electricity when mentioned", func(t *testing.T) {
		task := &domain.Task{Title: "Upload electricity bills including peak demand"}
		fields := e.DataFields(task, officeLocations())
		assert.Contains(t, fieldKeys(fields), "ELC0001_peak_demand")
	})

	t.Run("window mode emits one reading field per period", func(t *testing.T) {
		we := NewExtractor(fixedClock(), PeriodModeWindow, 3, zerolog.Nop())
		task := &domain.Task{Title: "Upload monthly electricity bills"}
		fields := we.DataFields(task, officeLocations())
		keys := fieldKeys(fields)
		assert.Contains(t, keys, "ELC0001_2026-01")
		assert.Contains(t, keys, "ELC0001_2026-02")
		assert.Contains(t, keys, "ELC0001_2026-03")
	})
}

func TestDocuments(t *testing.T) {
	e := testExtractor(t)

	t.Run("per-meter bill documents", func(t *testing.T) {
		task := &domain.Task{
			Title:          "Monthly electricity evidence",
			ActionRequired: "Upload 1 month of electricity bills",
		}
		docs := e.Documents(task, officeLocations())
		assert.Equal(t, []string{"bills_ELC0001"}, docKeys(docs))
		assert.True(t, docs[0].Required)
		assert.Contains(t, docs[0].Description, "1 month")
		assert.Equal(t, ".pdf,.jpg,.jpeg,.png", docs[0].FileTypes)
	})

	t.Run("generic bills fallback without matching meters", func(t *testing.T) {
		task := &domain.Task{ActionRequired: "Upload 1 month of electricity bills"}
		docs := e.Documents(task, nil)
		assert.Equal(t, []string{"bills"}, docKeys(docs))
		assert.True(t, docs[0].Required)
	})

	t.Run("policy documents", func(t *testing.T) {
		task := &domain.Task{Description: "Publish the written policy on waste"}
		docs := e.Documents(task, nil)
		assert.Equal(t, []string{"policy"}, docKeys(docs))
		assert.Equal(t, ".pdf,.doc,.docx", docs[0].FileTypes)
	})

	t.Run("photos and spreadsheets are optional", func(t *testing.T) {
		task := &domain.Task{Description: "Collect photos and an excel summary of recycling points"}
		docs := e.Documents(task, nil)
		assert.Equal(t, []string{"photos", "spreadsheet"}, docKeys(docs))
		for _, d := range docs {
			assert.False(t, d.Required)
		}
	})

	t.Run("general fallback when nothing matches", func(t *testing.T) {
		task := &domain.Task{ActionRequired: "Track diesel generator fuel purchases"}
		docs := e.Documents(task, nil)
		assert.Equal(t, []string{"general"}, docKeys(docs))
		assert.True(t, docs[0].Required)
	})

	t.Run("title-only keyword mention does not demand paperwork", func(t *testing.T) {
		task := &domain.Task{Title: "Upload monthly electricity bills"}
		docs := e.Documents(task, officeLocations())
		assert.Equal(t, []string{"general"}, docKeys(docs),
			"document rules read the action and description only")
	})
}

func TestTaskRequirements(t *testing.T) {
	e := testExtractor(t)

	t.Run("counts required fields and documents only", func(t *testing.T) {
		task := &domain.Task{Title: "Upload monthly electricity bills"}
		reqs := e.TaskRequirements(task, officeLocations())

		assert.Equal(t, 1, reqs.ExpectedDataFields, "reading required; cost and notes optional")
		assert.Equal(t, 1, reqs.ExpectedFiles)
		assert.Len(t, reqs.DataFields, 3)
		assert.Len(t, reqs.Documents, 1)
	})

	t.Run("fuel purchase has no required fields", func(t *testing.T) {
		task := &domain.Task{Title: "Track diesel generator fuel purchases"}
		reqs := e.TaskRequirements(task, officeLocations())

		assert.Zero(t, reqs.ExpectedDataFields)
		assert.Equal(t, 1, reqs.ExpectedFiles, "general fallback document")
	})

	t.Run("malformed task text never panics", func(t *testing.T) {
		reqs := e.TaskRequirements(&domain.Task{}, nil)
		assert.NotEmpty(t, reqs.Documents, "documents always have at least one entry")
	})
}

func TestDescriptors(t *testing.T) {
	e := testExtractor(t)
	task := &domain.Task{Title: "Upload monthly electricity bills"}

	descs := Descriptors(e.DataFields(task, officeLocations()))
	require.Len(t, descs, 3)
	assert.Equal(t, "ELC0001_current", descs[0].Key)
	assert.True(t, descs[0].Required)
	assert.False(t, descs[1].Required)
}
