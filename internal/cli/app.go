package cli

import (
	"github.com/rs/zerolog"

	"github.com/verdantiq/esgtrack/internal/api"
	"github.com/verdantiq/esgtrack/internal/clock"
	"github.com/verdantiq/esgtrack/internal/config"
	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/ledger"
	"github.com/verdantiq/esgtrack/internal/reconcile"
	"github.com/verdantiq/esgtrack/internal/require"
	"github.com/verdantiq/esgtrack/internal/storage"
)

// app wires the core services for one command invocation. Each invocation
// builds a fresh app from configuration; nothing is cached between runs.
type app struct {
	cfg        *config.Config
	store      *storage.Store
	ledger     *ledger.Service
	extractor  *require.Extractor
	reconciler *reconcile.Reconciler
	logger     zerolog.Logger
}

// newApp loads configuration and constructs the service graph.
// Requires user.email (or ESGTRACK_USER_EMAIL) for storage partitioning.
func newApp() (*app, error) {
	logger := GetLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	partition, err := storage.PartitionKey(cfg.User.Email)
	if err != nil {
		return nil, errors.Wrap(err, "set user.email in the config file or ESGTRACK_USER_EMAIL")
	}

	baseDir, err := config.StorageDir(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(baseDir, partition)
	if err != nil {
		return nil, err
	}

	clk := clock.RealClock{}
	ledgerSvc := ledger.NewService(store, clk, logger)
	extractor := require.NewExtractor(clk, require.PeriodMode(cfg.Periods.Mode), cfg.Periods.WindowMonths, logger)
	reconciler := reconcile.NewReconciler(ledgerSvc, extractor, logger)

	return &app{
		cfg:        cfg,
		store:      store,
		ledger:     ledgerSvc,
		extractor:  extractor,
		reconciler: reconciler,
		logger:     logger,
	}, nil
}

// apiClient constructs the platform client; errors when api.base_url is
// unset so offline commands stay usable without platform configuration.
func (a *app) apiClient() (api.Service, error) {
	if a.cfg.API.BaseURL == "" {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "api.base_url is not set")
	}
	return api.NewClient(api.ClientOptions{
		BaseURL:        a.cfg.API.BaseURL,
		Token:          a.cfg.API.Token,
		Timeout:        a.cfg.API.Timeout,
		MaxUploadBytes: int64(a.cfg.Upload.MaxSizeMB) * 1024 * 1024,
	}, a.logger)
}

// locations loads the onboarding location configuration for this user.
// A missing document yields an empty list, never an error.
func (a *app) locations() []domain.Location {
	var locations []domain.Location
	found, err := a.store.Get(storage.LocationsKey, &locations)
	if err != nil {
		a.logger.Warn().Err(err).Msg("location configuration unreadable, treating as empty")
		return nil
	}
	if !found {
		return nil
	}
	return locations
}
