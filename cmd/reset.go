package cmd

import (
	"fmt"
	"strings"

	"github.com/illarion/credvault/internal/keyring"
	"github.com/spf13/cobra"
)

func newResetCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every artifact and start over",
		Long: `Factory reset: deletes the vault file, the key, the master password,
the security questions and the metadata, then provisions new ones.
All stored records are lost. The master password is not required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				answer, err := a.prompt.Prompt(PromptConfirmReset)
				if err != nil {
					return err
				}
				if strings.TrimSpace(answer) != "yes" {
					fmt.Fprintln(out(cmd), "Reset cancelled")
					return nil
				}
			}

			s, err := a.inspectStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var oldID string
			if st, err := s.Status(cmd.Context()); err == nil && st.Meta != nil {
				oldID = st.Meta.VaultID
			}

			if err := s.FactoryReset(cmd.Context()); err != nil {
				return err
			}

			if oldID != "" {
				if err := keyring.DeletePassword(oldID); err != nil {
					a.log.Warn("failed to remove old password from keyring", "error", err)
				}
			}

			fmt.Fprintf(out(cmd), "Vault %s in %s was reset\n", s.FileName(), s.Dir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reset without confirmation")
	return cmd
}
