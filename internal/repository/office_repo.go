package repository

import (
	"context"
	"errors"
	"time"

	"officebook/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type OfficeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) *OfficeRepository {
	return &OfficeRepository{db: db}
}

type officeModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	BranchID  int64      `gorm:"column:branch_id"`
	Name      string     `gorm:"column:name"`
	Price     float64    `gorm:"column:price"`
	Capacity  int        `gorm:"column:capacity"`
	Privacy   string     `gorm:"column:privacy"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (officeModel) TableName() string { return "offices" }

type inactivityModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	OfficeID     int64      `gorm:"column:office_id"`
	SpecificDate *time.Time `gorm:"column:specific_date"`
	Weekday      *int       `gorm:"column:weekday"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (inactivityModel) TableName() string { return "inactivities" }

type branchModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name"`
	City       string    `gorm:"column:city"`
	Street     string    `gorm:"column:street"`
	OwnerEmail string    `gorm:"column:owner_email"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (branchModel) TableName() string { return "office_branches" }

func toDomainOffice(m officeModel, inactivities []inactivityModel) *domain.Office {
	o := &domain.Office{
		ID:        m.ID,
		BranchID:  m.BranchID,
		Name:      m.Name,
		Price:     m.Price,
		Capacity:  m.Capacity,
		Privacy:   domain.OfficePrivacy(m.Privacy),
		DeletedAt: m.DeletedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, im := range inactivities {
		o.Inactivities = append(o.Inactivities, *toDomainInactivity(im))
	}
	return o
}

func toDomainInactivity(m inactivityModel) *domain.Inactivity {
	var wd *time.Weekday
	if m.Weekday != nil {
		v := time.Weekday(*m.Weekday)
		wd = &v
	}
	return &domain.Inactivity{
		ID:           m.ID,
		OfficeID:     m.OfficeID,
		SpecificDate: m.SpecificDate,
		Weekday:      wd,
		CreatedAt:    m.CreatedAt,
	}
}

func toOfficeModel(o *domain.Office) officeModel {
	return officeModel{
		ID:        o.ID,
		BranchID:  o.BranchID,
		Name:      o.Name,
		Price:     o.Price,
		Capacity:  o.Capacity,
		Privacy:   string(o.Privacy),
		DeletedAt: o.DeletedAt,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (r *OfficeRepository) Create(ctx context.Context, o *domain.Office) error {
	m := toOfficeModel(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*o = *toDomainOffice(m, nil)
	return nil
}

func (r *OfficeRepository) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	var m officeModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var ims []inactivityModel
	if err := r.db.WithContext(ctx).Where("office_id = ?", id).Find(&ims).Error; err != nil {
		return nil, err
	}
	return toDomainOffice(m, ims), nil
}

func (r *OfficeRepository) ListByBranch(ctx context.Context, branchID int64) ([]domain.Office, error) {
	var ms []officeModel
	if err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Office, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainOffice(m, nil))
	}
	return out, nil
}

func (r *OfficeRepository) List(ctx context.Context) ([]domain.Office, error) {
	var ms []officeModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Office, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainOffice(m, nil))
	}
	return out, nil
}

// SetDeletedAt records the deletion effective date. The office stays
// bookable until the date passes.
func (r *OfficeRepository) SetDeletedAt(ctx context.Context, officeID int64, effective time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&officeModel{}).
		Where("id = ?", officeID).
		Update("deleted_at", effective)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OfficeRepository) AddInactivity(ctx context.Context, in *domain.Inactivity) error {
	m := inactivityModel{
		OfficeID:     in.OfficeID,
		SpecificDate: in.SpecificDate,
	}
	if in.Weekday != nil {
		v := int(*in.Weekday)
		m.Weekday = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*in = *toDomainInactivity(m)
	return nil
}

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func toDomainBranch(m branchModel) *domain.OfficeBranch {
	return &domain.OfficeBranch{
		ID:         m.ID,
		Name:       m.Name,
		City:       m.City,
		Street:     m.Street,
		OwnerEmail: m.OwnerEmail,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *BranchRepository) Create(ctx context.Context, b *domain.OfficeBranch) error {
	m := branchModel{
		Name:       b.Name,
		City:       b.City,
		Street:     b.Street,
		OwnerEmail: b.OwnerEmail,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBranch(m)
	return nil
}

func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*domain.OfficeBranch, error) {
	var m branchModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainBranch(m), nil
}
