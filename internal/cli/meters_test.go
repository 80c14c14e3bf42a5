package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocations(t *testing.T) {
	t.Run("bare location list", func(t *testing.T) {
		locations, err := parseLocations([]byte(`
- name: Main Office
  meters:
    - meter_number: ELC0001
      type: electricity
      provider: DEWA
`))
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, "Main Office", locations[0].Name)
		require.Len(t, locations[0].Meters, 1)
		assert.Equal(t, "ELC0001", locations[0].Meters[0].MeterNumber)
	})

	t.Run("wrapped under locations key", func(t *testing.T) {
		locations, err := parseLocations([]byte(`
locations:
  - name: Warehouse
    meters:
      - meter_number: WTR0001
        type: water
`))
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, "Warehouse", locations[0].Name)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := parseLocations([]byte("locations: ["))
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		locations, err := parseLocations([]byte(""))
		require.NoError(t, err)
		assert.Empty(t, locations)
	})
}
