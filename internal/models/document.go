package models

import (
	"time"

	"gorm.io/datatypes"
)

// DocType classifies a document within an organization's library.
type DocType string

const (
	DocTypePolicy    DocType = "policy"
	DocTypeProcedure DocType = "procedure"
	DocTypeManual    DocType = "manual"
	DocTypeOther     DocType = "other"
)

// ValidDocType reports whether t is one of the known document types.
func ValidDocType(t DocType) bool {
	switch t {
	case DocTypePolicy, DocTypeProcedure, DocTypeManual, DocTypeOther:
		return true
	}
	return false
}

// Document is an organization-scoped content record. Path is unique
// within an organization. Vectorized flips to true once the chunk and
// embedding pipeline completes for the current content.
type Document struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	OrganizationID string         `gorm:"index:idx_org_path,unique;not null;size:36" json:"organizationId"`
	Path           string         `gorm:"index:idx_org_path,unique;not null;size:512" json:"path"`
	Title          string         `gorm:"size:512" json:"title"`
	Description    string         `gorm:"size:2048" json:"description"`
	Content        string         `gorm:"type:longtext" json:"content"`
	Frontmatter    datatypes.JSON `json:"frontmatter,omitempty"`
	DocType        DocType        `gorm:"index;size:32;default:other" json:"docType"`
	SourceObject   string         `gorm:"size:1024" json:"-"` // object key of the uploaded original in MinIO
	Vectorized     bool           `gorm:"default:false" json:"vectorized"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
