package model

import "gorm.io/datatypes"

// PlanningDraft table planning_drafts: one stored draft per storage key.
type PlanningDraft struct {
	StorageKey string         `gorm:"type:varchar(128);primaryKey" json:"storage_key"`
	Payload    datatypes.JSON `gorm:"not null"                     json:"payload"`
	SizeBytes  int            `gorm:"not null;default:0"           json:"size_bytes"`
	VersionedModel
}

// TableName table name.
func (PlanningDraft) TableName() string { return "planning_drafts" }
