package bill

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
)

type (
	BillRepository interface {
		CreateBill(ctx context.Context, bill *entities.Bill) error
		GetBillByID(ctx context.Context, id string, userID string) (*entities.Bill, error)
		UpdateBill(ctx context.Context, bill *entities.Bill) error
		DeleteBill(ctx context.Context, id string, userID string) error
		GetBills(ctx context.Context, userID string) ([]*entities.Bill, error)
		GetBillsByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Bill, error)

		// Reminder sweep related
		GetReminderCandidates(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Bill, error)
		MarkReminderSent(ctx context.Context, id string) error
		MarkExpired(ctx context.Context, ids []string) error
	}

	billRepository struct {
		db *gorm.DB
	}
)

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) CreateBill(ctx context.Context, bill *entities.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetBillByID(ctx context.Context, id string, userID string) (*entities.Bill, error) {
	var bill entities.Bill
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) UpdateBill(ctx context.Context, bill *entities.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *billRepository) DeleteBill(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Bill{}).Error
}

func (r *billRepository) GetBills(ctx context.Context, userID string) ([]*entities.Bill, error) {
	var bills []*entities.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepository) GetBillsByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Bill, error) {
	var bills []*entities.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date BETWEEN ? AND ? AND status <> ?",
			userID, startDate, endDate, domain.BillStatusExpired).
		Order("expiry_date asc").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepository) GetReminderCandidates(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Bill, error) {
	var bills []*entities.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ? AND reminder_sent = ? AND expiry_date BETWEEN ? AND ?",
			userID,
			[]string{domain.BillStatusPending, domain.BillStatusVerified},
			false, startDate, endDate).
		Order("expiry_date asc").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepository) MarkReminderSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entities.Bill{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"reminder_sent": true}).Error
}

func (r *billRepository) MarkExpired(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entities.Bill{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"status": domain.BillStatusExpired}).Error
}
