package domain

// MeterType identifies the utility a meter measures.
type MeterType string

// Meter type constants match the onboarding wizard's configuration values.
const (
	MeterTypeElectricity MeterType = "electricity"
	MeterTypeWater       MeterType = "water"
	MeterTypeGas         MeterType = "gas"
)

// String returns the string representation of the MeterType.
func (m MeterType) String() string {
	return string(m)
}

// Valid reports whether the meter type is one of the supported utilities.
func (m MeterType) Valid() bool {
	switch m {
	case MeterTypeElectricity, MeterTypeWater, MeterTypeGas:
		return true
	}
	return false
}

// DefaultUnit returns the measurement unit conventionally used for the type.
func (m MeterType) DefaultUnit() string {
	switch m {
	case MeterTypeElectricity:
		return "kWh"
	case MeterTypeWater, MeterTypeGas:
		return "m³"
	}
	return "units"
}

// Meter is a normalized utility measurement point configured by the user.
// Identifiers are unique within a location's meter list; cross-location
// uniqueness is enforced by the resolver via identifier deduplication.
type Meter struct {
	// ID is the meter number or identifier entered during onboarding.
	ID string `json:"id"`

	// Type is the utility this meter measures.
	Type MeterType `json:"type"`

	// Location is a display label combining location name and meter description.
	Location string `json:"location,omitempty"`

	// Provider is the utility provider name, if known.
	Provider string `json:"provider,omitempty"`

	// Unit is the measurement unit for readings (kWh, m³).
	Unit string `json:"unit,omitempty"`

	// ReadingRequired indicates the user must log periodic readings.
	ReadingRequired bool `json:"reading_required"`

	// BillsRequired indicates the user must upload provider bills.
	BillsRequired bool `json:"bills_required"`
}

// RawMeter is a meter record exactly as the onboarding flow persists it.
// Field names and optionality mirror the wizard's output; normalization
// into Meter happens in the resolver.
type RawMeter struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	MeterNumber string `json:"meterNumber,omitempty" yaml:"meter_number,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Provider    string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Location is a raw onboarding location record with its meter list.
type Location struct {
	Name   string     `json:"name" yaml:"name"`
	Meters []RawMeter `json:"meters,omitempty" yaml:"meters,omitempty"`
}
