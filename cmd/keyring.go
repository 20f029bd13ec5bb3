package cmd

import (
	"errors"
	"fmt"

	"github.com/illarion/credvault/internal/core"
	"github.com/illarion/credvault/internal/keyring"
	"github.com/spf13/cobra"
)

var errNoVaultID = errors.New("vault has no metadata; run 'credvault init' first")

func newKeyringCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyring",
		Short: "Manage the master password cached in the OS keyring",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "save",
			Short: "Save the master password to the OS keyring",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.openStore()
				if err != nil {
					return err
				}
				defer s.Close()

				// Always typed; a cached or env password is not saved again
				password, err := a.prompt.base.Prompt(core.PromptMasterPassword)
				if err != nil {
					return err
				}
				result, err := s.CheckMasterPassword(password)
				if err != nil {
					return err
				}
				if result != core.AuthSuccess {
					return core.ErrAuthentication
				}

				vaultID, err := s.VaultID()
				if err != nil {
					return err
				}
				if err := keyring.SavePassword(vaultID, password); err != nil {
					return fmt.Errorf("failed to save to keyring: %w", err)
				}

				fmt.Fprintln(out(cmd), "Password saved to keyring")
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the master password from the OS keyring",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				vaultID, err := a.vaultID(cmd)
				if err != nil {
					return err
				}
				if !keyring.HasPassword(vaultID) {
					fmt.Fprintln(out(cmd), "No password stored in keyring")
					return nil
				}
				if err := keyring.DeletePassword(vaultID); err != nil {
					return fmt.Errorf("failed to delete from keyring: %w", err)
				}

				fmt.Fprintln(out(cmd), "Password removed from keyring")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the master password is in the OS keyring",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				vaultID, err := a.vaultID(cmd)
				if err != nil {
					return err
				}
				if keyring.HasPassword(vaultID) {
					fmt.Fprintln(out(cmd), "Password: stored in keyring")
				} else {
					fmt.Fprintln(out(cmd), "Password: not stored")
				}
				return nil
			},
		},
	)

	return cmd
}

// vaultID reads the vault ID without creating anything
func (a *app) vaultID(cmd *cobra.Command) (string, error) {
	s, err := a.inspectStore()
	if err != nil {
		return "", err
	}
	defer s.Close()

	st, err := s.Status(cmd.Context())
	if err != nil {
		return "", err
	}
	if st.Meta == nil || st.Meta.VaultID == "" {
		return "", errNoVaultID
	}
	return st.Meta.VaultID, nil
}
