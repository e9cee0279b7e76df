package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by every subcommand. Flags are bound into v
// before a command runs, so values may also come from a config file or
// SIMSTAT_* environment variables.
type app struct {
	v       *viper.Viper
	log     zerolog.Logger
	cfgFile string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	log, _ := newLogger(errOut, formatConsole, "info")
	return &app{
		v:      viper.New(),
		log:    log,
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "simstat",
		Short: "Pseudorandom generation and statistical testing.",
		Long: `Pseudorandom generation and statistical testing.
Generate uniform or normal samples and check them, For example:
  simstat generate --kind=normal --n=1000 --out=normals.txt
  simstat ks normal --in=normals.txt
  simstat series --generator=middlesquare --seed=5735 --n=50
  simstat analyze --preset=numrecipes --seed=42 --standardize`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.simstat.yaml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", formatConsole, "log format: console or json")
	flags.Bool("csv", false, "print tables as CSV")

	root.AddCommand(
		a.generateCmd(),
		a.seriesCmd(),
		a.runsCmd(),
		a.ksCmd(),
		a.analyzeCmd(),
		a.queueCmd(),
		a.piCmd(),
		a.walkCmd(),
		a.collisionCmd(),
		a.collectorCmd(),
	)
	return root
}

// initConfig binds the flags of the running command and reads the config
// file and environment, then rebuilds the logger.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("simstat")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".simstat")
	}

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		found = false
	}

	log, err := newLogger(a.errOut, v.GetString("log-format"), v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log = log
	if found {
		a.log.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}
	return nil
}
