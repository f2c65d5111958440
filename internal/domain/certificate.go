package domain

import (
	"time"
)

const CertificateIDLength = 8

// Certificate is the immutable proof that an author's code passed the task
type Certificate struct {
	ID         string    `db:"id" json:"id"`
	AuthorName string    `db:"user_name" json:"user_name"`
	SourceText string    `db:"code" json:"code"`
	AuditText  *string   `db:"audit" json:"audit,omitempty"`
	IssuedAt   time.Time `db:"issued_at" json:"issued_at"`
}

// Clone returns a copy that shares nothing with the receiver
func (c *Certificate) Clone() *Certificate {
	if c == nil {
		return nil
	}
	cp := *c
	if c.AuditText != nil {
		audit := *c.AuditText
		cp.AuditText = &audit
	}
	return &cp
}

type CertificateTable struct {
	ID         string
	AuthorName string
	SourceText string
	AuditText  string
	IssuedAt   string
}

func GetCertificateTable() CertificateTable {
	return CertificateTable{
		ID:         "id",
		AuthorName: "user_name",
		SourceText: "code",
		AuditText:  "audit",
		IssuedAt:   "issued_at",
	}
}

func (CertificateTable) TableName() string {
	return "certificates"
}

func (t CertificateTable) Columns() []string {
	return []string{t.ID, t.AuthorName, t.SourceText, t.AuditText, t.IssuedAt}
}
