package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nuln/fbox"
	_ "github.com/nuln/fbox/drivers"

	// Remotes reachable through the rclone backend.
	_ "github.com/rclone/rclone/backend/local"
)

type options struct {
	cfgFile  string
	backend  string
	logLevel string

	fsys *fbox.FS
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "fbox",
		Short: "Handle-based file access over pluggable backends",
		Long: `fbox - inspect and copy files through the fbox backends.

Every command opens files through one backend: "io" (raw descriptors),
"fio" (buffered streams), "mmap" (read-only mappings) or "rclone".

Examples:
  # Filesystem usage of the current directory
  fbox stat .

  # Copy through buffered streams and flush to disk
  fbox --backend fio cp in.bin out.bin --sync

  # Read through a memory mapping
  fbox --backend mmap dump /etc/hostname`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "backends" {
				return nil
			}
			return opts.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", "", "backend to use (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newBackendsCmd())
	rootCmd.AddCommand(newStatCmd(opts))
	rootCmd.AddCommand(newSizeCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newCpCmd(opts))

	return rootCmd
}

func (o *options) init(cmd *cobra.Command) error {
	cfg, err := fbox.LoadConfig(o.cfgFile)
	if err != nil {
		return err
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	log, err := fbox.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	cfg.Logger = &log

	o.fsys, err = fbox.New(cfg)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	return nil
}
