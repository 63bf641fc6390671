package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/report"
)

func newOverlapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "overlap SHIP INDEX SHIP INDEX",
		Short:   "Report whether two placements share a cell",
		Example: "  battleship overlap C 71 P 9",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s1, err := domain.ParseShipName(args[0])
			if err != nil {
				return err
			}
			p1, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			s2, err := domain.ParseShipName(args[2])
			if err != nil {
				return err
			}
			p2, err := strconv.Atoi(args[3])
			if err != nil {
				return err
			}
			n := a.cfg.BoardSize
			ok, err := a.uc.Overlaps(cmd.Context(), n, s1, p1, s2, p2)
			if err != nil {
				return err
			}
			e, _, err := a.uc.Tables(cmd.Context(), n)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%v %s / %v %s: %v\n",
				s1, report.Span(e, s1, p1), s2, report.Span(e, s2, p2), ok)
			return err
		},
	}
}
