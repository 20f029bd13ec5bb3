package cmd

import (
	"fmt"

	"github.com/illarion/credvault/internal/records"
	"github.com/spf13/cobra"
)

func newGenerateCommand(a *app) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random password",
		Long: fmt.Sprintf(`Prints a password of distinct characters drawn from the %d printable
ASCII letters, digits and symbols. Without --length the length is prompted for.
The vault is not touched.`, records.AlphabetSize),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				password string
				err      error
			)
			if cmd.Flags().Changed("length") {
				password, err = records.GeneratePassword(length)
			} else {
				password, err = records.NewManager(nil).GeneratePassword(a.prompt)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out(cmd), password)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 0, "password length")
	return cmd
}
