package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-dbentity/database"
	"github.com/goliatone/go-dbentity/pkg/di"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	viper      *viper.Viper
	configFile string
	settings   settings
	container  *di.Container
}

func newRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}

	cmd := &cobra.Command{
		Use:           "entityctl",
		Short:         "Manage notes stored through go-dbentity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.container == nil {
				return nil
			}
			return a.container.Close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./entityctl.yaml)")
	flags.String("driver", "", "database driver: sqlite3 or postgres")
	flags.String("dsn", "", "database connection string")
	flags.Bool("cache", false, "enable write-through caching")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	_ = a.viper.BindPFlag(cfgKeyDriver, flags.Lookup("driver"))
	_ = a.viper.BindPFlag(cfgKeyDSN, flags.Lookup("dsn"))
	_ = a.viper.BindPFlag(cfgKeyCache, flags.Lookup("cache"))
	_ = a.viper.BindPFlag(cfgKeyLogLevel, flags.Lookup("log-level"))

	cmd.AddCommand(
		newInitCmd(a),
		newStoreCmd(a),
		newFindCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return cmd
}

// setup loads configuration and opens the database for the running command.
func (a *app) setup(cmd *cobra.Command) error {
	s, err := loadConfig(a.viper, a.configFile)
	if err != nil {
		return err
	}
	a.settings = s

	db, err := database.Open(s.Driver, s.DSN)
	if err != nil {
		return err
	}
	pool := database.NewPool()
	pool.Register(s.DatabaseName, db)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(s.LogLevel)}))

	container, err := di.NewContainer(pool, s.Cache, di.WithLogger(logger))
	if err != nil {
		_ = pool.Close()
		return fmt.Errorf("build container: %w", err)
	}
	a.container = container
	return nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}
