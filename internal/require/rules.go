// Package require derives what evidence a compliance task needs from its
// free text and the user's configured meter inventory.
//
// The extraction logic is an ordered rule set over keyword predicates
// evaluated against a normalized lowercase text blob. Exclusion rules run
// before inclusion rules; that precedence resolves ambiguous tasks (for
// example a task mentioning both "cooling" and "electricity" is treated as
// a cooling-service task and excluded from meter fields).
package require

import "strings"

// predicate tests a normalized lowercase text blob.
type predicate func(blob string) bool

// containsAny returns a predicate matching when any keyword is present.
func containsAny(keywords ...string) predicate {
	return func(blob string) bool {
		for _, kw := range keywords {
			if strings.Contains(blob, kw) {
				return true
			}
		}
		return false
	}
}

// and combines predicates conjunctively.
func and(preds ...predicate) predicate {
	return func(blob string) bool {
		for _, p := range preds {
			if !p(blob) {
				return false
			}
		}
		return true
	}
}

// not negates a predicate.
func not(p predicate) predicate {
	return func(blob string) bool {
		return !p(blob)
	}
}

// Exclusion predicates. These run first; a match suppresses recurring
// periods and meter-derived fields for the task.
//
//nolint:gochecknoglobals // Static rule table
var (
	// isFuelPurchase matches one-off fuel purchases (receipts, not monthly bills).
	isFuelPurchase = and(
		containsAny("fuel"),
		containsAny("generator", "diesel", "petrol"),
	)

	// isLPGUse matches LPG cooking/heating tasks (purchase receipts, not bills).
	isLPGUse = and(
		containsAny("lpg"),
		containsAny("cooking", "heating"),
	)

	// isFuelOnly matches tasks that are exclusively about fuel or generators,
	// with no utility mention that would still warrant meter fields.
	isFuelOnly = and(
		containsAny("fuel", "generator", "diesel", "petrol"),
		not(containsAny("electricity", "electric", "gas", "water")),
	)

	// isCooling matches district-cooling service tasks.
	isCooling = containsAny("cooling", "district cooling")
)

// Inclusion predicates.
//
//nolint:gochecknoglobals // Static rule table
var (
	mentionsBills      = containsAny("bill", "invoice")
	mentionsDocuments  = containsAny("bill", "invoice", "meter", "consumption")
	mentionsPeak       = containsAny("peak", "demand", "maximum")
	mentionsPercentage = containsAny("percentage", "%")
	mentionsPolicy     = containsAny(
		"policy",
		"compliance document",
		"policy document",
		"written policy",
		"formal policy",
		"sustainability policy",
	)
	mentionsPhotos      = containsAny("photo", "picture", "image")
	mentionsSpreadsheet = containsAny("excel", "csv", "spreadsheet")
)

// normalize lowercases a text blob for rule evaluation.
func normalize(text string) string {
	return strings.ToLower(text)
}
