package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"svw.info/battleship/internal/config"
	"svw.info/battleship/internal/generator"
	"svw.info/battleship/internal/infrastructure/storage"
	"svw.info/battleship/internal/usecase"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
	uc     *usecase.Service
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var (
		cfgFile  string
		profiled bool
		stopProf interface{ Stop() }
	)

	root := &cobra.Command{
		Use:           "battleship",
		Short:         "Narrow down battleship placements from a move log",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

			// Wire providers → use cases
			a.uc = usecase.NewService(a.logger, storage.NewFS(cfg.PersistPath))
			a.uc.Generator = generator.NewRandomGenerator(a.uc)

			if profiled {
				stopProf = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopProf != nil {
				stopProf.Stop()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./battleship.yaml if present)")
	pf.Int("size", 10, "board size")
	pf.String("log-level", "info", "debug|info|warn|error")
	pf.String("persist-path", "./data", "save directory")
	pf.BoolVar(&profiled, "profile", false, "write a CPU profile to the working directory")
	for _, k := range []string{"size", "log-level", "persist-path"} {
		_ = a.v.BindPFlag(k, pf.Lookup(k))
	}

	root.AddCommand(newSolveCmd(a), newOverlapCmd(a), newGenerateCmd(a), newServeCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
