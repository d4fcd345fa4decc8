// Package cli implements the edgeos command tree. Resource subcommands
// mirror the REST API one call per command and print the JSON response
// as received; the applications commands go through the review services
// so the cached-data contract is exercised end to end.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"edgeos-client/internal/api"
	"edgeos-client/internal/cache"
	"edgeos-client/internal/config"
	"edgeos-client/internal/logger"
	"edgeos-client/internal/security"
	"edgeos-client/internal/service"
)

// App carries the wired dependencies every subcommand uses.
type App struct {
	cfg        *config.Config
	client     *api.Client
	store      *cache.Store
	reviews    service.ReviewService
	strategies service.StrategyService

	popupFlag int64
	yesFlag   bool
}

// NewRootCommand builds the edgeos command tree.
func NewRootCommand() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "edgeos",
		Short:         "Command line client for the EdgeOS registration platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize()
		},
	}
	root.PersistentFlags().Int64Var(&app.popupFlag, "popup", 0, "popup ID (overrides configured popup_id)")
	root.PersistentFlags().BoolVarP(&app.yesFlag, "yes", "y", false, "skip confirmation prompts")

	root.AddCommand(
		app.newApplicationsCommand(),
		app.newTemplatesCommand(),
		app.newPaymentsCommand(),
		app.newHumansCommand(),
		app.newTenantsCommand(),
		app.newCouponsCommand(),
		app.newWhoamiCommand(),
	)
	return root
}

// Execute runs the CLI and returns the failure, if any.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *App) initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Debug("configuration loaded", "api_url", cfg.APIURL, "tenant_id", cfg.TenantID, "popup_id", cfg.PopupID)

	a.client = api.New(cfg.APIURL, cfg.Token,
		api.WithTenant(cfg.TenantID),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	)
	a.store = cache.New()
	a.reviews = service.NewReviewService(a.client, a.store)
	a.strategies = service.NewStrategyService(a.client, a.store)
	return nil
}

// popupID resolves the popup scope: flag first, then config.
func (a *App) popupID() (int64, error) {
	if a.popupFlag != 0 {
		return a.popupFlag, nil
	}
	if a.cfg.PopupID != 0 {
		return a.cfg.PopupID, nil
	}
	return 0, fmt.Errorf("no popup selected: pass --popup or set EDGEOS_POPUP_ID")
}

func (a *App) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the configured token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Token == "" {
				return errors.New("no token configured: set EDGEOS_TOKEN or token in the config file")
			}
			claims, err := security.CheckSession(a.cfg.Token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Email:  %s\n", claims.Email)
			if claims.TenantID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Tenant: %s\n", claims.TenantID)
			}
			if claims.ExpiresAt != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

// ErrorText converts a CLI failure to the text printed on stderr. API
// errors pass the server's detail through, an expired local session gets
// the same phrasing a 401 does, and everything else prints as is.
func ErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if errors.Is(err, security.ErrExpiredToken) {
		return "Session expired"
	}
	return err.Error()
}
