package models

// OrphanFile is a stored file that lost its owner but could not be removed at that time.
type OrphanFile struct {
	BaseModel

	Path      string `json:"path" gorm:"uniqueIndex"`
	Reason    string `json:"reason"`
	Attempts  int    `json:"attempts"`
	LastError string `json:"last_error"`
}
