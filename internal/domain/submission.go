package domain

import "strings"

// Submission represents code handed in by an author for a run or a certification
type Submission struct {
	AuthorName string
	SourceText string
}

// NewSubmission creates a new submission
func NewSubmission(authorName, sourceText string) Submission {
	return Submission{
		AuthorName: authorName,
		SourceText: sourceText,
	}
}

// IsBlank reports whether either field is missing
func (s Submission) IsBlank() bool {
	return strings.TrimSpace(s.AuthorName) == "" || strings.TrimSpace(s.SourceText) == ""
}
