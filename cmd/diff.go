package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDiffCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file>",
		Short: "Compare the vault's records with a local CSV file",
		Long: `Prints a unified diff from the decrypted vault records to a local CSV
file holding username,password rows. The vault file itself is not changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			diff, err := s.Records().Diff(cmd.Context(), args[0], local)
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(out(cmd), "No differences")
				return nil
			}
			fmt.Fprint(out(cmd), diff)
			return nil
		},
	}
}
