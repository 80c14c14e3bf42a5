package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/meter"
	"github.com/verdantiq/esgtrack/internal/storage"
	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddMetersCommand adds the meters command group to the root command.
func AddMetersCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "meters",
		Short: "Manage the location and meter configuration",
	}
	cmd.AddCommand(newMetersImportCmd())
	cmd.AddCommand(newMetersListCmd(flags))
	root.AddCommand(cmd)
}

// newMetersImportCmd creates the meters import command.
func newMetersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import locations and meters from a YAML file",
		Long: `Import reads a YAML file describing your locations and their meters and
stores it as this user's meter configuration.

The file holds a list of locations, either bare or under a 'locations' key:

  locations:
    - name: Main Office
      meters:
        - meter_number: ELC0001
          type: electricity
          provider: DEWA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetersImport(cmd.OutOrStdout(), args[0])
		},
	}
}

func runMetersImport(out io.Writer, path string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path) //#nosec G304 -- user-provided import path
	if err != nil {
		return errors.Wrapf(err, "failed to read '%s'", path)
	}

	locations, err := parseLocations(data)
	if err != nil {
		return errors.Wrapf(err, "failed to parse '%s'", path)
	}
	if len(locations) == 0 {
		return errors.Wrap(errors.ErrNoLocations, "import file holds no locations")
	}

	if err := a.store.Put(storage.LocationsKey, locations); err != nil {
		return err
	}

	meters := meter.Normalize(locations, a.logger)

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()
	fmt.Fprintf(out, "%s Imported %d locations with %d usable meters\n",
		styles.Success.Render("✓"), len(locations), len(meters))
	return nil
}

// parseLocations accepts either a bare location list or a document with a
// top-level locations key.
func parseLocations(data []byte) ([]domain.Location, error) {
	var bare []domain.Location
	if err := yaml.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	var wrapped struct {
		Locations []domain.Location `yaml:"locations"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Locations, nil
}

// newMetersListCmd creates the meters list command.
func newMetersListCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured meters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMetersList(cmd.OutOrStdout(), flags)
		},
	}
}

func runMetersList(out io.Writer, flags *GlobalFlags) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	locations := a.locations()
	if len(locations) == 0 {
		return errors.Wrap(errors.ErrNoLocations, "nothing to list")
	}

	meters := meter.Normalize(locations, a.logger)

	if flags.Output == OutputJSON {
		return json.NewEncoder(out).Encode(meters)
	}

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()
	fmt.Fprintln(out, styles.Title.Render("Configured Meters"))
	fmt.Fprintln(out)
	for _, m := range meters {
		bills := "no bills"
		if m.BillsRequired {
			bills = "bills from " + m.Provider
		}
		fmt.Fprintf(out, "  %-12s %-12s %s  %s\n",
			m.ID, m.Type, m.Location,
			styles.Dim.Render(fmt.Sprintf("(%s, %s)", m.Unit, bills)))
	}
	return nil
}
