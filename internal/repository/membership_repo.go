package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"officebook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

type membershipModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BranchID  int64     `gorm:"column:branch_id"`
	Name      string    `gorm:"column:name"`
	Price     float64   `gorm:"column:price"`
	Days      string    `gorm:"column:days"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (membershipModel) TableName() string { return "memberships" }

type acquisitionModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	MembershipID      int64      `gorm:"column:membership_id"`
	BuyerEmail        string     `gorm:"column:buyer_email"`
	Status            string     `gorm:"column:status"`
	AccessDays        string     `gorm:"column:access_days"`
	PaymentExternalID *string    `gorm:"column:payment_external_id"`
	PaymentAmount     *float64   `gorm:"column:payment_amount"`
	PaymentFee        *float64   `gorm:"column:payment_fee"`
	PaymentCurrency   *string    `gorm:"column:payment_currency"`
	PaymentMethod     *string    `gorm:"column:payment_method"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	SettledAt         *time.Time `gorm:"column:settled_at"`
}

func (acquisitionModel) TableName() string { return "membership_acquisitions" }

// Weekday sets are stored as comma-separated ints ("1,3,5"), small and
// portable across postgres and sqlite.
func encodeDays(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}

func toDomainMembership(m membershipModel) *domain.Membership {
	return &domain.Membership{
		ID:        m.ID,
		BranchID:  m.BranchID,
		Name:      m.Name,
		Price:     m.Price,
		Days:      decodeDays(m.Days),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainAcquisition(m acquisitionModel) *domain.MembershipAcquisition {
	a := &domain.MembershipAcquisition{
		ID:           m.ID,
		MembershipID: m.MembershipID,
		BuyerEmail:   m.BuyerEmail,
		Status:       domain.MembershipAcquisitionStatus(m.Status),
		AccessDays:   decodeDays(m.AccessDays),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.PaymentExternalID != nil {
		a.Payment = &domain.PaymentRecord{ExternalID: *m.PaymentExternalID}
		if m.PaymentAmount != nil {
			a.Payment.Amount = *m.PaymentAmount
		}
		if m.PaymentFee != nil {
			a.Payment.Fee = *m.PaymentFee
		}
		if m.PaymentCurrency != nil {
			a.Payment.Currency = *m.PaymentCurrency
		}
		if m.PaymentMethod != nil {
			a.Payment.Method = *m.PaymentMethod
		}
	}
	return a
}

func (r *MembershipRepository) CreateMembership(ctx context.Context, m *domain.Membership) error {
	row := membershipModel{
		BranchID: m.BranchID,
		Name:     m.Name,
		Price:    m.Price,
		Days:     encodeDays(m.Days),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*m = *toDomainMembership(row)
	return nil
}

func (r *MembershipRepository) GetMembershipByID(ctx context.Context, id int64) (*domain.Membership, error) {
	var m membershipModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainMembership(m), nil
}

func (r *MembershipRepository) CreateAcquisition(ctx context.Context, a *domain.MembershipAcquisition) error {
	row := acquisitionModel{
		MembershipID: a.MembershipID,
		BuyerEmail:   a.BuyerEmail,
		Status:       string(a.Status),
		AccessDays:   encodeDays(a.AccessDays),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*a = *toDomainAcquisition(row)
	return nil
}

func (r *MembershipRepository) GetAcquisitionByID(ctx context.Context, id int64) (*domain.MembershipAcquisition, error) {
	var m acquisitionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainAcquisition(m), nil
}

// MarkBoughtIdempotent mirrors BookingRepository.SchedulePaidIdempotent for
// the membership branch of the resolver.
func (r *MembershipRepository) MarkBoughtIdempotent(ctx context.Context, acquisitionID int64, p domain.PaymentRecord, settledAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m acquisitionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, acquisitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if m.Status != string(domain.AcquisitionPending) {
			changed = false
			return nil
		}
		res := tx.Model(&acquisitionModel{}).Where("id = ?", acquisitionID).Updates(map[string]interface{}{
			"status":              string(domain.AcquisitionBought),
			"payment_external_id": p.ExternalID,
			"payment_amount":      p.Amount,
			"payment_fee":         p.Fee,
			"payment_currency":    p.Currency,
			"payment_method":      p.Method,
			"settled_at":          settledAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("acquisition row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}
