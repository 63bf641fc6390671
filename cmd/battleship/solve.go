package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/movelog"
	"svw.info/battleship/internal/report"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		heatmap bool
		save    bool
		name    string
	)
	cmd := &cobra.Command{
		Use:   "solve [moves.txt]",
		Short: "Apply a move log and print the remaining placements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "moves.txt"
			if len(args) == 1 {
				path = args[0]
			}
			var in io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			n := a.cfg.BoardSize
			moves, err := movelog.Parse(n, in)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, st, err := a.uc.Solve(ctx, n, moves)
			if err != nil {
				return err
			}
			a.logger.Info("solved", "moves", st.Moves, "removed", st.Removed, "dur", st.Duration)

			e, tab, err := a.uc.Tables(ctx, n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := report.Text(out, e, res); err != nil {
				return err
			}
			for _, c := range report.Conflicts(report.Feasibility(tab, res)) {
				a.logger.Warn("no compatible placements left", "a", c.A, "b", c.B)
			}
			if heatmap {
				if err := report.RenderHeatmap(out, report.Heatmap(e, res)); err != nil {
					return err
				}
			}
			if save {
				run := &domain.Run{Name: name, BoardSize: n, Moves: movelog.Format(n, moves), Result: &res}
				if err := a.uc.Save(ctx, run); err != nil {
					return err
				}
				a.logger.Info("saved", "id", run.ID, "path", a.cfg.PersistPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&heatmap, "heatmap", false, "also print per-cell placement coverage")
	cmd.Flags().BoolVar(&save, "save", false, "store the run under --persist-path")
	cmd.Flags().StringVar(&name, "name", "", "name for the saved run")
	return cmd
}
