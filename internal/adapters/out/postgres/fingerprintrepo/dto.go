// Package fingerprintrepo persists order content fingerprints. The
// fingerprint column's primary key constraint is what makes duplicate
// detection linearizable: of two concurrent reservations for the same
// fingerprint exactly one insert succeeds.
package fingerprintrepo

import (
	"time"

	"github.com/google/uuid"
)

// FingerprintDTO represents a fingerprint reservation row.
type FingerprintDTO struct {
	Fingerprint string    `gorm:"type:varchar(64);primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ReservedAt  time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for fingerprint reservations.
func (FingerprintDTO) TableName() string {
	return "fingerprints"
}
