package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"panel-cli/internal/api"
	"panel-cli/internal/cache"
	"panel-cli/internal/config"
	"panel-cli/internal/tui"
)

// App carries the resolved settings shared by every command. Precedence:
// flags > env > config file > defaults (config handles the last three).
type App struct {
	BaseURL string
	Timeout int
	Cache   bool
	NoColor bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "panel",
		Short:        "Admin panel (TUI) for a remote users/posts source",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive panel
  panel

  # Scriptable read-only commands
  panel users list
  panel posts list --user 3 --format json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL = app.BaseURL
		}
		if cmd.Flags().Changed("timeout") {
			cfg.TimeoutSeconds = app.Timeout
		}
		if cmd.Flags().Changed("cache") {
			if cfg.Cache == nil {
				cfg.Cache = &config.CacheConfig{}
			}
			cfg.Cache.Enabled = app.Cache
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", "", "remote data source base URL")
	cmd.PersistentFlags().IntVar(&app.Timeout, "timeout", 0, "request timeout in seconds")
	cmd.PersistentFlags().BoolVar(&app.Cache, "cache", false, "cache remote responses in a local sqlite file")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "disable colors in the TUI")

	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newPostsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newClient builds the API client per the resolved config. A cache that
// fails to open degrades to plain network fetches.
func (app *App) newClient() *api.Client {
	var opts []api.Option
	if app.cfg.CacheEnabled() {
		if path, err := app.cfg.CachePath(); err == nil {
			if rc, err := cache.Open(path, app.cfg.CacheTTL()); err == nil {
				opts = append(opts, api.WithCache(rc))
			} else {
				fmt.Fprintf(os.Stderr, "warning: response cache disabled: %v\n", err)
			}
		}
	}
	return api.New(app.cfg.BaseURL, opts...)
}

func runTUI(app *App) error {
	profile := ""
	if app.cfg.TUI != nil {
		profile = app.cfg.TUI.Profile
	}
	if app.NoColor {
		profile = "mono"
	}
	return tui.Run(app.newClient(), app.cfg.Timeout(), profile)
}
