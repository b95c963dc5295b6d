package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/config"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/internal/metrics"
	"github.com/felixgeelhaar/cleanaid/internal/session"
	"github.com/felixgeelhaar/cleanaid/internal/ux"
	"github.com/felixgeelhaar/cleanaid/internal/version"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
)

// CommandContext holds the resolved configuration of one command run:
// the config file merged with environment and global flags, the logger,
// and the output streams.
type CommandContext struct {
	Format  string
	NoColor bool

	ConfigPath string
	Config     *config.Config
	Logger     *log.Logger

	Out io.Writer
	Err io.Writer
	In  io.Reader

	// Metrics, when set, is shared by the client's transport and cache.
	Metrics *metrics.Metrics
}

// NewCommandContext extracts command context from cobra.Command flags.
// Commands should call this in their RunE function to get their configuration:
//
//	func runCommand(cmd *cobra.Command, args []string) error {
//		cc, err := NewCommandContext(cmd)
//		if err != nil {
//			return err
//		}
//		// Use cc.Format, cc.Client(), etc.
//	}
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.API.URL = v
	}
	if v, _ := flags.GetString("format"); v != "" {
		cfg.Output.Format = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := flags.GetBool("no-color"); v {
		cfg.Output.NoColor = true
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Output.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if configPath == "" {
		if configPath, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.Log.Level)
	logCfg.Format = log.ParseFormat(cfg.Log.Format)
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.ServiceVersion = version.GetInfo().Short()
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	return &CommandContext{
		Format:     cfg.Output.Format,
		NoColor:    cfg.Output.NoColor,
		ConfigPath: configPath,
		Config:     cfg,
		Logger:     logger,
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
		In:         cmd.InOrStdin(),
	}, nil
}

// Sessions returns the file-backed session store.
func (cc *CommandContext) Sessions() (*session.FileStore, error) {
	path := cc.Config.Session.Path
	if path == "" {
		var err error
		if path, err = session.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return session.NewFileStore(path), nil
}

// Client builds an API client from the resolved configuration.
func (cc *CommandContext) Client() (*client.Client, error) {
	if err := cc.Config.RequireAPI(); err != nil {
		return nil, err
	}
	store, err := cc.Sessions()
	if err != nil {
		return nil, err
	}

	api, c := cc.Config.API, cc.Config.Cache
	return client.New(client.Config{
		BaseURL:           api.URL,
		Timeout:           api.Timeout,
		UserAgent:         version.GetInfo().UserAgent(),
		RateLimit:         api.RateLimit,
		Burst:             api.Burst,
		StaleTime:         c.StaleTime,
		GCTime:            c.GCTime,
		MaxInactive:       c.MaxInactive,
		DashboardInterval: c.DashboardInterval,
		Sessions:          store,
		Redirector:        loginHint{w: cc.Err},
		Logger:            cc.Logger,
		Metrics:           cc.Metrics,
	})
}

// Print writes v in the selected output format.
func (cc *CommandContext) Print(v any) error {
	f, err := ux.NewFormatter(cc.Format, &ux.FormatterOptions{Writer: cc.Out, NoColor: cc.NoColor})
	if err != nil {
		return err
	}
	return f.Format(v)
}

// Prompter asks questions on the command's streams.
func (cc *CommandContext) Prompter() *ux.Prompter {
	return ux.NewPrompter(cc.In, cc.Err)
}
