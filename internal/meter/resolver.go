// Package meter resolves which of the user's configured utility meters a
// compliance task concerns, and flags meter types the task needs but the
// user has not set up.
//
// The resolver is the single authority on task-to-meter mapping: the
// requirement extractor and any rendering code must go through it so the
// two never disagree about which meters apply.
package meter

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/verdantiq/esgtrack/internal/domain"
)

// Resolution is the outcome of mapping a task onto the configured meters.
// An empty meter list plus populated MissingTypes is the honest signal of
// an incomplete setup; placeholder meters are never fabricated.
type Resolution struct {
	// Meters is the subset of configured meters the task concerns.
	Meters []domain.Meter

	// MissingTypes lists required meter types with no configured meter.
	MissingTypes []domain.MeterType
}

// typeKeywords maps each meter type to the task-text keywords that imply it.
// Unit symbols count as keywords (kWh, m³).
//
//nolint:gochecknoglobals // Static keyword table
var typeKeywords = map[domain.MeterType][]string{
	domain.MeterTypeElectricity: {"electricity", "electric", "kwh", "power"},
	domain.MeterTypeWater:       {"water", "m³", "cubic meter"},
	domain.MeterTypeGas:         {"gas", "natural gas", "lpg", "cooking gas", "heating gas"},
}

// orderedTypes fixes the evaluation order so output is deterministic.
//
//nolint:gochecknoglobals // Static ordering table
var orderedTypes = []domain.MeterType{
	domain.MeterTypeElectricity,
	domain.MeterTypeWater,
	domain.MeterTypeGas,
}

// RequiredTypes returns the meter types the task text implies, in a fixed
// electricity/water/gas order. The text is matched case-insensitively.
func RequiredTypes(text string) []domain.MeterType {
	blob := strings.ToLower(text)
	var types []domain.MeterType
	for _, mt := range orderedTypes {
		for _, kw := range typeKeywords[mt] {
			if strings.Contains(blob, kw) {
				types = append(types, mt)
				break
			}
		}
	}
	return types
}

// NeedsMeters reports whether the task text references metering at all.
func NeedsMeters(text string) bool {
	blob := strings.ToLower(text)
	for _, kw := range []string{"meter", "electricity", "water", "gas", "consumption", "read meters", "utility bills"} {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}

// Normalize converts raw onboarding location records into deduplicated Meter
// entities. Records without a valid type are skipped with a warning, never
// raised as fatal errors. Deduplication is by meter identifier, first
// occurrence wins.
func Normalize(locations []domain.Location, logger zerolog.Logger) []domain.Meter {
	seen := make(map[string]bool)
	var meters []domain.Meter

	for _, loc := range locations {
		for _, raw := range loc.Meters {
			mt := domain.MeterType(strings.ToLower(strings.TrimSpace(raw.Type)))
			if !mt.Valid() {
				logger.Warn().
					Str("component", "meter").
					Str("location", loc.Name).
					Str("type", raw.Type).
					Msg("skipping meter with invalid type")
				continue
			}

			id := raw.MeterNumber
			if id == "" {
				id = raw.ID
			}
			if id == "" {
				logger.Warn().
					Str("component", "meter").
					Str("location", loc.Name).
					Msg("skipping meter without identifier")
				continue
			}
			if seen[id] {
				continue
			}
			seen[id] = true

			label := loc.Name
			if raw.Description != "" {
				label = loc.Name + " - " + raw.Description
			}

			meters = append(meters, domain.Meter{
				ID:       id,
				Type:     mt,
				Location: label,
				Provider: raw.Provider,
				Unit:     mt.DefaultUnit(),
				// Readings are always expected for configured meters; bills
				// only when a provider is known to issue them.
				ReadingRequired: true,
				BillsRequired:   raw.Provider != "",
			})
		}
	}

	return meters
}

// Resolve maps a task to the subset of configured meters it concerns.
//
// A server-persisted assigned_meters list is authoritative and returned
// verbatim. Otherwise the raw location configuration is normalized,
// deduplicated and filtered by the meter types the task text requires.
func Resolve(task *domain.Task, locations []domain.Location, logger zerolog.Logger) Resolution {
	if task != nil && task.AssignedMeters != nil {
		return Resolution{Meters: task.AssignedMeters.Meters}
	}

	required := RequiredTypes(task.Text())
	if len(required) == 0 {
		return Resolution{}
	}

	configured := Normalize(locations, logger)

	byType := make(map[domain.MeterType]bool)
	var matched []domain.Meter
	for _, m := range configured {
		for _, mt := range required {
			if m.Type == mt {
				matched = append(matched, m)
				byType[mt] = true
				break
			}
		}
	}

	var missing []domain.MeterType
	for _, mt := range required {
		if !byType[mt] {
			missing = append(missing, mt)
		}
	}

	return Resolution{Meters: matched, MissingTypes: missing}
}
