package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/movelog"
	"svw.info/battleship/internal/report"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		seed  int64
		shots int
		show  bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Lay out a random fleet and print a move log of shots at it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			n := a.cfg.BoardSize
			g, err := a.uc.Generate(cmd.Context(), seed, n, shots)
			if err != nil {
				return err
			}
			a.logger.Info("generated", "seed", seed, "size", n, "shots", len(g.Moves))
			out := cmd.OutOrStdout()
			if show {
				e, _, err := a.uc.Tables(cmd.Context(), n)
				if err != nil {
					return err
				}
				for _, t := range domain.AllShipTypes() {
					fmt.Fprintf(out, "# %-10s %s\n", t, report.Span(e, t, g.Fleet[t]))
				}
			}
			_, err = fmt.Fprintln(out, strings.Join(movelog.Format(n, g.Moves), "\n"))
			return err
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().IntVar(&shots, "shots", 30, "number of distinct cells to shoot")
	cmd.Flags().BoolVar(&show, "show-fleet", false, "print the hidden layout as comments")
	return cmd
}
