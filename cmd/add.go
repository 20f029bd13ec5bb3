package cmd

import (
	"fmt"

	"github.com/illarion/credvault/internal/records"
	"github.com/spf13/cobra"
)

func newAddCommand(a *app) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a record to the vault",
		Long: `Adds a username/password record. The password is prompted for, or
generated with --generate. Duplicate usernames are allowed.`,
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

			var password string
			if generate {
				password, err = m.GeneratePassword(a.prompt)
			} else {
				password, err = a.prompt.Prompt(PromptRecordPassword)
			}
			if err != nil {
				return err
			}

			m.Add(args[0], password)
			if err := s.Records().Close(cmd.Context(), m.Set()); err != nil {
				return err
			}

			if generate {
				fmt.Fprintf(out(cmd), "Generated password: %s\n", password)
			}
			fmt.Fprintf(out(cmd), "Added %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate a random password")
	return cmd
}
