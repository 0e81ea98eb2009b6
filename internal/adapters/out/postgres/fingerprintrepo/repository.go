package fingerprintrepo

import (
	"context"
	"errors"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFingerprintRepository implements FingerprintRepository using GORM.
// Requires the connection to be opened with TranslateError so a primary key
// collision surfaces as gorm.ErrDuplicatedKey.
type GormFingerprintRepository struct {
	db *gorm.DB
}

// NewGormFingerprintRepository creates a new GORM fingerprint repository.
func NewGormFingerprintRepository(db *gorm.DB) *GormFingerprintRepository {
	return &GormFingerprintRepository{db: db}
}

// Reserve claims the fingerprint for the given order. Returns a duplicate
// order error naming the current holder when the fingerprint is taken.
func (r *GormFingerprintRepository) Reserve(ctx context.Context, fingerprint string, orderID kernel.UUID) error {
	if fingerprint == "" {
		return errs.NewValueIsRequiredError("fingerprint")
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	dto := FingerprintDTO{
		Fingerprint: fingerprint,
		OrderID:     orderID.Bytes(),
		ReservedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			owner, ownerErr := r.Owner(ctx, fingerprint)
			if ownerErr != nil {
				return ownerErr
			}
			return errs.NewDuplicateOrderError(fingerprint, owner.String())
		}
		return err
	}

	return nil
}

// Owner returns the order currently holding the fingerprint.
func (r *GormFingerprintRepository) Owner(ctx context.Context, fingerprint string) (kernel.UUID, error) {
	var dto FingerprintDTO
	if err := r.db.WithContext(ctx).First(&dto, "fingerprint = ?", fingerprint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("fingerprint", fingerprint)
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.OrderID[:])
}

// Transfer moves the reservation from one order to another. The update is
// conditioned on the current holder, so a racing transfer loses cleanly.
func (r *GormFingerprintRepository) Transfer(ctx context.Context, fingerprint string, from, to kernel.UUID) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&FingerprintDTO{}).
		Where("fingerprint = ? AND order_id = ?", fingerprint, from.Bytes()).
		Update("order_id", to.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("fingerprint", fingerprint)
	}

	return nil
}
