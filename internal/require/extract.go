package require

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verdantiq/esgtrack/internal/clock"
	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/meter"
)

// PeriodMode selects how reporting periods are derived from a task.
type PeriodMode string

// Period mode constants.
const (
	// PeriodModeCurrent emits exactly one period covering the current
	// calendar month. This is the default and converged behavior.
	PeriodModeCurrent PeriodMode = "current"

	// PeriodModeWindow emits a trailing window of calendar months ending
	// with the current one. Window length comes from configuration.
	PeriodModeWindow PeriodMode = "window"
)

// Valid reports whether the mode is a known period mode.
func (m PeriodMode) Valid() bool {
	return m == PeriodModeCurrent || m == PeriodModeWindow
}

// CurrentPeriodKey is the key used for the single current-month period.
const CurrentPeriodKey = "current"

// titleCaser capitalizes meter type names for field labels.
//
//nolint:gochecknoglobals // Immutable caser, safe for concurrent use
var titleCaser = cases.Title(language.English)

// Extractor derives requirements deterministically from task text and the
// configured meter inventory. Output is a pure function of its inputs:
// no hidden mutable state, no randomness.
type Extractor struct {
	clk          clock.Clock
	mode         PeriodMode
	windowMonths int
	logger       zerolog.Logger
}

// NewExtractor creates an Extractor.
// windowMonths is only consulted in PeriodModeWindow; values below 1 fall
// back to 3 so extraction always produces some result.
func NewExtractor(clk clock.Clock, mode PeriodMode, windowMonths int, logger zerolog.Logger) *Extractor {
	if !mode.Valid() {
		mode = PeriodModeCurrent
	}
	if windowMonths < 1 {
		windowMonths = 3
	}
	return &Extractor{
		clk:          clk,
		mode:         mode,
		windowMonths: windowMonths,
		logger:       logger.With().Str("component", "require").Logger(),
	}
}

// Periods returns the ordered reporting periods the task requires.
//
// One-off fuel/LPG purchase tasks need receipts rather than recurring
// bills, so they return no periods at all. Every other task returns the
// current calendar month (default mode) or a trailing window of months.
func (e *Extractor) Periods(task *domain.Task) []domain.Period {
	blob := normalize(task.Text())

	if isFuelPurchase(blob) || isLPGUse(blob) {
		return nil
	}

	now := e.clk.Now()
	if e.mode == PeriodModeWindow {
		periods := make([]domain.Period, 0, e.windowMonths)
		for i := e.windowMonths - 1; i >= 0; i-- {
			m := now.AddDate(0, -i, 0)
			periods = append(periods, monthPeriod(m, m.Format("2006-01")))
		}
		return periods
	}

	return []domain.Period{monthPeriod(now, CurrentPeriodKey)}
}

// monthPeriod builds the Period covering the calendar month containing t.
func monthPeriod(t time.Time, key string) domain.Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, -1)
	return domain.Period{
		Key:   key,
		Name:  t.Format("January 2006"),
		Start: start,
		End:   end,
	}
}

// DataFields returns the ordered data-entry fields the task requires.
//
// Rule order: exclusion classification first (fuel-only, cooling), then
// meter-derived fields for resolved meters, then a warning pseudo-field for
// missing meter types, then the percentage rule, and always a trailing
// optional notes field.
func (e *Extractor) DataFields(task *domain.Task, locations []domain.Location) []domain.DataField {
	blob := normalize(task.Text())
	var fields []domain.DataField

	meterTask := !isFuelOnly(blob) && !isCooling(blob) && len(meter.RequiredTypes(blob)) > 0
	if meterTask {
		resolution := meter.Resolve(task, locations, e.logger)
		periods := e.Periods(task)

		for _, m := range resolution.Meters {
			fields = append(fields, e.meterFields(m, periods, blob)...)
		}

		if len(resolution.MissingTypes) > 0 {
			fields = append(fields, missingMeterField(resolution.MissingTypes))
		}
	}

	if mentionsPercentage(blob) {
		fields = append(fields, domain.DataField{
			Key:      "percentage",
			Label:    "Percentage",
			Type:     domain.FieldTypeNumber,
			Unit:     "%",
			Required: true,
		})
	}

	fields = append(fields, domain.DataField{
		Key:      "notes",
		Label:    "Additional Notes",
		Type:     domain.FieldTypeText,
		Required: false,
	})

	return fields
}

// meterFields emits the fields one resolved meter contributes.
func (e *Extractor) meterFields(m domain.Meter, periods []domain.Period, blob string) []domain.DataField {
	var fields []domain.DataField

	unit := m.Unit
	if unit == "" {
		unit = m.Type.DefaultUnit()
	}
	sublabel := fmt.Sprintf("Meter: %s • Location: %s", m.ID, m.Location)
	typeName := titleCaser.String(m.Type.String())

	if m.ReadingRequired {
		for _, p := range periods {
			mCopy := m
			fields = append(fields, domain.DataField{
				Key:      m.ID + "_" + p.Key,
				Label:    fmt.Sprintf("%s Reading - %s", typeName, p.Name),
				Sublabel: sublabel,
				Type:     domain.FieldTypeNumber,
				Unit:     unit,
				Required: true,
				Period:   p.Start.Format("Jan 02") + " - " + p.End.Format("Jan 02"),
				Meter:    &mCopy,
			})
		}
	}

	if m.BillsRequired {
		mCopy := m
		fields = append(fields, domain.DataField{
			Key:      m.ID + "_cost",
			Label:    typeName + " Cost",
			Sublabel: sublabel,
			Type:     domain.FieldTypeNumber,
			Unit:     "AED",
			Required: false,
			Meter:    &mCopy,
		})
	}

	if m.Type == domain.MeterTypeElectricity && mentionsPeak(blob) {
		mCopy := m
		fields = append(fields, domain.DataField{
			Key:      m.ID + "_peak_demand",
			Label:    "Peak Demand",
			Sublabel: sublabel,
			Type:     domain.FieldTypeNumber,
			Unit:     "kW",
			Required: false,
			Meter:    &mCopy,
		})
	}

	return fields
}

// missingMeterField builds the non-required warning pseudo-field that
// surfaces unconfigured meter types as an actionable gap instead of a
// false completion.
func missingMeterField(missing []domain.MeterType) domain.DataField {
	names := make([]string, len(missing))
	for i, mt := range missing {
		names[i] = mt.String()
	}
	plural := ""
	if len(missing) > 1 {
		plural = "s"
	}
	return domain.DataField{
		Key:               "no_meters_warning",
		Label:             "Meter Reading Required",
		Type:              domain.FieldTypeWarning,
		Required:          false,
		MissingMeterTypes: missing,
		Message: fmt.Sprintf(
			"This task requires %s meter%s. Add the missing meter type%s to your location settings.",
			strings.Join(names, ", "), plural, plural,
		),
	}
}

// Documents returns the ordered supporting-document requirements for the task.
// Every task has at least one document requirement: when no specific rule
// matches, a single generic required entry is emitted.
//
// Document rules read only the action and description fields; a keyword
// appearing in the title alone does not demand paperwork.
func (e *Extractor) Documents(task *domain.Task, locations []domain.Location) []domain.DocumentRequirement {
	blob := normalize(task.ActionRequired + " " + task.Description)
	var docs []domain.DocumentRequirement

	resolution := meter.Resolve(task, locations, e.logger)
	periods := e.Periods(task)

	if mentionsDocuments(blob) && len(resolution.Meters) > 0 {
		for _, m := range resolution.Meters {
			if !m.BillsRequired {
				continue
			}
			mCopy := m
			docs = append(docs, domain.DocumentRequirement{
				Key:   "bills_" + m.ID,
				Title: "Supporting Documents",
				Description: fmt.Sprintf("Upload %d %s of %s bills (%s)",
					len(periods), monthWord(len(periods)), m.Type, m.ID),
				FileTypes: ".pdf,.jpg,.jpeg,.png",
				Required:  true,
				Periods:   periods,
				Meter:     &mCopy,
			})
		}
	} else if mentionsBills(blob) {
		docs = append(docs, domain.DocumentRequirement{
			Key:         "bills",
			Title:       "Supporting Documents",
			Description: fmt.Sprintf("Upload %d %s of utility bills", len(periods), monthWord(len(periods))),
			FileTypes:   ".pdf,.jpg,.jpeg,.png",
			Required:    true,
			Periods:     periods,
		})
	}

	if mentionsPolicy(blob) {
		docs = append(docs, domain.DocumentRequirement{
			Key:         "policy",
			Title:       "Supporting Documents",
			Description: "Upload the policy or compliance document",
			FileTypes:   ".pdf,.doc,.docx",
			Required:    true,
		})
	}

	if mentionsPhotos(blob) {
		docs = append(docs, domain.DocumentRequirement{
			Key:         "photos",
			Title:       "Supporting Documents",
			Description: "Upload photos as evidence",
			FileTypes:   ".jpg,.jpeg,.png",
			Required:    false,
		})
	}

	if mentionsSpreadsheet(blob) {
		docs = append(docs, domain.DocumentRequirement{
			Key:         "spreadsheet",
			Title:       "Supporting Documents",
			Description: "Upload completed data template",
			FileTypes:   ".xlsx,.xls,.csv",
			Required:    false,
		})
	}

	if len(docs) == 0 {
		docs = append(docs, domain.DocumentRequirement{
			Key:         "general",
			Title:       "Supporting Documents",
			Description: "Upload relevant evidence",
			FileTypes:   ".pdf,.doc,.docx,.jpg,.jpeg,.png",
			Required:    true,
		})
	}

	return docs
}

// monthWord pluralizes "month" for document descriptions.
func monthWord(n int) string {
	if n == 1 {
		return "month"
	}
	return "months"
}

// TaskRequirements aggregates data-field and document requirements for a
// task. This is the single aggregation point the ledger, reconciler and
// any rendering code must use so counting logic never diverges.
func (e *Extractor) TaskRequirements(task *domain.Task, locations []domain.Location) domain.Requirements {
	fields := e.DataFields(task, locations)
	docs := e.Documents(task, locations)

	var requiredFields, requiredDocs int
	for _, f := range fields {
		if f.Required {
			requiredFields++
		}
	}
	for _, d := range docs {
		if d.Required {
			requiredDocs++
		}
	}

	return domain.Requirements{
		ExpectedDataFields: requiredFields,
		ExpectedFiles:      requiredDocs,
		DataFields:         fields,
		Documents:          docs,
	}
}

// Descriptors converts extracted data fields into the compact descriptor
// form the ledger persists.
func Descriptors(fields []domain.DataField) []domain.FieldDescriptor {
	descs := make([]domain.FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		descs = append(descs, domain.FieldDescriptor{
			Key:      f.Key,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
		})
	}
	return descs
}
