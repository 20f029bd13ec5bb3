package cmd

import (
	"fmt"

	"github.com/illarion/credvault/internal/records"
	"github.com/spf13/cobra"
)

func newRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <username>",
		Short: "Remove the record for a username",
		Long: `Removes the record for a username. The username must match exactly
one record; otherwise nothing is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			set, err := a.openRecords(cmd.Context(), s)
			if err != nil {
				return err
			}

			m := records.NewManager(set)
			if err := m.Remove(args[0]); err != nil {
				return err
			}
			if err := s.Records().Close(cmd.Context(), m.Set()); err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "Removed %s\n", args[0])
			return nil
		},
	}
}
