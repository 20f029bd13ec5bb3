package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/illarion/credvault/internal/crypto"
)

// SecurityQuestion pairs a plaintext question with the digest of its answer
type SecurityQuestion struct {
	Question     string
	AnswerDigest crypto.Digest
}

// QuestionSet is an ordered list of security questions.
// Neither a minimum count nor unique questions are enforced.
type QuestionSet struct {
	pairs []SecurityQuestion
}

// NewQuestionSet returns an empty set
func NewQuestionSet() *QuestionSet {
	return &QuestionSet{}
}

// Add appends question, storing only the digest of answer
func (q *QuestionSet) Add(question, answer string) {
	q.pairs = append(q.pairs, SecurityQuestion{Question: question, AnswerDigest: crypto.Hash(answer)})
}

// Remove deletes every pair asking question and reports whether any existed
func (q *QuestionSet) Remove(question string) bool {
	kept := q.pairs[:0]
	for _, p := range q.pairs {
		if p.Question != question {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(q.pairs)
	q.pairs = kept
	return removed
}

// Len returns the number of questions
func (q *QuestionSet) Len() int {
	return len(q.pairs)
}

// Questions returns a copy of the pairs in order
func (q *QuestionSet) Questions() []SecurityQuestion {
	return append([]SecurityQuestion(nil), q.pairs...)
}

// QuestionFile is the plain security question file. It is never
// encrypted; its answer row only ever holds digests.
type QuestionFile struct {
	store *Store
}

// Name returns the file name
func (f *QuestionFile) Name() string {
	return SecurityFile
}

// Exists reports whether the file is present
func (f *QuestionFile) Exists() (bool, error) {
	return f.store.root.Exists(SecurityFile)
}

// Open reads the question set. No master password is asked for.
func (f *QuestionFile) Open(ctx context.Context) (*QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exists, err := f.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, SecurityFile)
	}
	return f.read()
}

// Close writes set back. Answers are held as digests, so nothing
// plaintext reaches the file.
func (f *QuestionFile) Close(ctx context.Context, set *QuestionSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("%w: nil question set", ErrInvalidRecordSet)
	}
	return f.write(set)
}

// read parses the two-row form: questions, then answer digests
func (f *QuestionFile) read() (*QuestionSet, error) {
	data, err := f.store.root.ReadFile(SecurityFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read security questions: %w", err)
	}

	set := NewQuestionSet()
	if len(bytes.TrimSpace(data)) == 0 {
		return set, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, SecurityFile, err)
	}
	if len(rows) != 2 || len(rows[0]) != len(rows[1]) {
		return nil, fmt.Errorf("%w: %s: questions and answers do not line up", ErrCorrupted, SecurityFile)
	}

	for i, question := range rows[0] {
		digest, err := crypto.ParseDigest(rows[1][i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, SecurityFile, err)
		}
		set.pairs = append(set.pairs, SecurityQuestion{Question: question, AnswerDigest: digest})
	}
	return set, nil
}

// IsEmptyQuestion reports whether question has no visible text. Such a
// question cannot be stored.
func IsEmptyQuestion(question string) bool {
	return strings.TrimSpace(question) == ""
}

// write stores the two rows. A blank question row would be skipped by the
// CSV reader, so sets holding an empty question are refused.
func (f *QuestionFile) write(set *QuestionSet) error {
	for _, p := range set.pairs {
		if IsEmptyQuestion(p.Question) {
			return fmt.Errorf("%w: %w", ErrInvalidRecordSet, ErrEmptyQuestion)
		}
	}

	var buf bytes.Buffer
	if set.Len() > 0 {
		questions := make([]string, set.Len())
		digests := make([]string, set.Len())
		for i, p := range set.pairs {
			questions[i] = p.Question
			digests[i] = p.AnswerDigest.String()
		}

		w := csv.NewWriter(&buf)
		if err := w.WriteAll([][]string{questions, digests}); err != nil {
			return fmt.Errorf("failed to encode security questions: %w", err)
		}
	}

	return f.store.root.WriteFile(SecurityFile, buf.Bytes())
}
