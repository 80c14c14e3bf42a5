package domain

import "time"

// FieldType describes how a data-entry field is rendered and validated.
type FieldType string

// Field type constants.
const (
	// FieldTypeNumber is a numeric entry field (readings, costs, percentages).
	FieldTypeNumber FieldType = "number"

	// FieldTypeText is a free-text entry field (notes).
	FieldTypeText FieldType = "text"

	// FieldTypeWarning is a pseudo-field surfacing a configuration gap.
	// Warning fields are never required and carry MissingMeterTypes.
	FieldTypeWarning FieldType = "warning"
)

// Period is a reporting window a task requires data or documents for.
type Period struct {
	// Key identifies the period within field keys (e.g. "current", "2026-06").
	Key string `json:"key"`

	// Name is the display name (e.g. "August 2026").
	Name string `json:"name"`

	// Start is the first day of the period.
	Start time.Time `json:"start"`

	// End is the last day of the period.
	End time.Time `json:"end"`
}

// DataField is a single data-entry requirement derived for a task.
// Keys are unique within a task.
type DataField struct {
	// Key uniquely identifies the field within the task
	// (e.g. "ELC0001_current", "percentage", "notes").
	Key string `json:"key"`

	// Label is the display name for the field.
	Label string `json:"label"`

	// Sublabel carries meter identification for meter-backed fields.
	Sublabel string `json:"sublabel,omitempty"`

	// Type is the entry type (number, text, warning).
	Type FieldType `json:"type"`

	// Unit is the measurement unit, if any.
	Unit string `json:"unit,omitempty"`

	// Required marks the field as counting toward completion.
	Required bool `json:"required"`

	// Period is the display range for period-bound fields.
	Period string `json:"period,omitempty"`

	// Meter back-references the meter this field reads, if any.
	Meter *Meter `json:"meter,omitempty"`

	// MissingMeterTypes lists required meter types the user has not
	// configured. Only populated on warning fields.
	MissingMeterTypes []MeterType `json:"missing_meter_types,omitempty"`

	// Message is the human-readable warning text for warning fields.
	Message string `json:"message,omitempty"`
}

// DocumentRequirement is a supporting-document requirement derived for a task.
type DocumentRequirement struct {
	// Key uniquely identifies the requirement (e.g. "bills_ELC0001", "policy").
	Key string `json:"key"`

	// Title is the display heading.
	Title string `json:"title"`

	// Description explains what to upload.
	Description string `json:"description"`

	// FileTypes is the accepted file extension set (e.g. ".pdf,.jpg,.jpeg,.png").
	FileTypes string `json:"file_types"`

	// Required marks the document as counting toward completion.
	Required bool `json:"required"`

	// Periods lists the reporting windows the documents must cover.
	Periods []Period `json:"periods,omitempty"`

	// Meter associates the requirement with a specific meter, if any.
	Meter *Meter `json:"meter,omitempty"`
}

// Requirements aggregates everything a task needs. It is derived, ephemeral
// and recomputed on demand; it is never persisted. For the same task and
// meter configuration the result is reproducible.
type Requirements struct {
	// ExpectedDataFields is the count of required data fields.
	ExpectedDataFields int `json:"expected_data_fields"`

	// ExpectedFiles is the count of required document requirements.
	ExpectedFiles int `json:"expected_files"`

	// DataFields is the full ordered field list, required and optional.
	DataFields []DataField `json:"data_fields"`

	// Documents is the full ordered document list, required and optional.
	Documents []DocumentRequirement `json:"documents"`
}
