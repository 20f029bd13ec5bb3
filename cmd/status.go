package cmd

import (
	"fmt"
	"time"

	"github.com/illarion/credvault/internal/core"
	"github.com/illarion/credvault/internal/git"
	"github.com/illarion/credvault/internal/keyring"
	"github.com/spf13/cobra"
)

// secretArtifacts must never be committed next to the vault file
var secretArtifacts = []string{core.KeyFile, core.MasterFile, core.SecurityFile}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show vault status",
		Long:  "Shows which artifacts exist and the vault metadata. Does not require a password and creates nothing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.inspectStore()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.Status(cmd.Context())
			if err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprintf(w, "Directory: %s\n", st.Dir)
			fmt.Fprintf(w, "Vault file: %s\n", st.VaultFile)
			fmt.Fprintln(w, "Artifacts:")
			for _, name := range []string{core.KeyFile, core.MasterFile, core.SecurityFile, st.VaultFile, core.MetaFile} {
				state := "missing"
				if st.Artifacts[name] {
					state = "present"
				}
				fmt.Fprintf(w, "  %s (%s)\n", name, state)
			}

			fmt.Fprint(w, git.Format(git.Check(cmd.Context(), st.Dir, secretArtifacts)))

			if st.Meta == nil {
				fmt.Fprintln(w, "\nNot initialized. Run 'credvault init' to create the vault.")
				return nil
			}

			fmt.Fprintf(w, "\nVault ID: %s\n", st.Meta.VaultID)
			fmt.Fprintf(w, "Created: %s\n", formatTime(st.Meta.Created))
			fmt.Fprintf(w, "Modified: %s\n", formatTime(st.Meta.Modified))
			if st.Meta.NeverOpened() {
				fmt.Fprintln(w, "Last opened: never")
			} else {
				fmt.Fprintf(w, "Last opened: %s\n", formatTime(st.Meta.Opened))
			}

			if a.cfg.Keyring {
				if keyring.HasPassword(st.Meta.VaultID) {
					fmt.Fprintln(w, "Keyring: password stored")
				} else {
					fmt.Fprintln(w, "Keyring: not stored")
				}
			}
			return nil
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(time.RFC3339)
}
