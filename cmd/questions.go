package cmd

import (
	"errors"
	"fmt"

	"github.com/illarion/credvault/internal/core"
	"github.com/spf13/cobra"
)

var errQuestionNotFound = errors.New("no such security question")

func newQuestionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the security questions",
		Long: `Lists the security questions used for password recovery. Answers are
stored as digests and cannot be shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			set, err := s.Questions().Open(cmd.Context())
			if err != nil {
				return err
			}

			if set.Len() == 0 {
				fmt.Fprintln(out(cmd), "No security questions; password recovery is unavailable")
				return nil
			}
			for i, q := range set.Questions() {
				fmt.Fprintf(out(cmd), "%d. %s\n", i+1, q.Question)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Add a security question",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.editQuestions(cmd, func(set *core.QuestionSet) error {
					question, err := a.prompt.Prompt(core.PromptNewQuestion)
					if err != nil {
						return err
					}
					if question == core.StopWord {
						return nil
					}
					if core.IsEmptyQuestion(question) {
						return core.ErrEmptyQuestion
					}
					answer, err := a.prompt.Prompt(core.PromptNewAnswer)
					if err != nil {
						return err
					}
					set.Add(question, answer)
					fmt.Fprintln(out(cmd), "Security question added")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rm <question>",
			Short: "Remove a security question",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.editQuestions(cmd, func(set *core.QuestionSet) error {
					if !set.Remove(args[0]) {
						return fmt.Errorf("%w: %q", errQuestionNotFound, args[0])
					}
					fmt.Fprintln(out(cmd), "Security question removed")
					return nil
				})
			},
		},
	)

	return cmd
}

// editQuestions authenticates, applies edit and writes the questions back
func (a *app) editQuestions(cmd *cobra.Command, edit func(*core.QuestionSet) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := a.authenticate(s); err != nil {
		return err
	}

	set, err := s.Questions().Open(cmd.Context())
	if err != nil {
		return err
	}
	if err := edit(set); err != nil {
		return err
	}
	return s.Questions().Close(cmd.Context(), set)
}
