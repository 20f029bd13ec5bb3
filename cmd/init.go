package cmd

import (
	"fmt"

	"github.com/illarion/credvault/internal/git"
	"github.com/spf13/cobra"
)

func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the key, master password, security questions and vault file",
		Long: `Creates every missing artifact in the vault directory.
Prompts for a master password and for security questions until 'stop'.
Existing artifacts are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.Provisioned() {
				fmt.Fprintf(out(cmd), "Vault already initialized in %s\n", s.Dir())
				fmt.Fprintln(out(cmd), "Use 'credvault status' to see current state")
				return nil
			}
			fmt.Fprintf(out(cmd), "Initialized vault %s in %s\n", s.FileName(), s.Dir())
			if status := git.Check(cmd.Context(), s.Dir(), secretArtifacts); status.Exposed() {
				fmt.Fprint(out(cmd), git.Format(status))
			}
			return nil
		},
	}
}
