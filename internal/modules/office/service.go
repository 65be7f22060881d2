package office

import (
	"context"
	"errors"
	"time"

	"officebook/internal/domain"
	"officebook/internal/repository"
)

type Service struct {
	offices  officeRepo
	branches branchRepo
	loggerf  func(format string, args ...interface{})
}

func NewService(offices officeRepo, branches branchRepo, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{offices: offices, branches: branches, loggerf: loggerf}
}

func (s *Service) CreateBranch(ctx context.Context, ownerEmail string, req CreateBranchRequest) (*domain.OfficeBranch, error) {
	b := &domain.OfficeBranch{
		Name:       req.Name,
		City:       req.City,
		Street:     req.Street,
		OwnerEmail: ownerEmail,
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=branch created branch_id=%d owner=%s", b.ID, ownerEmail)
	return b, nil
}

// requireBranchOwner resolves the branch and checks the acting owner against
// its owner email. All office mutations go through it.
func (s *Service) requireBranchOwner(ctx context.Context, branchID int64, ownerEmail string) (*domain.OfficeBranch, error) {
	b, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	if b.OwnerEmail != ownerEmail {
		return nil, ErrNotBranchOwner
	}
	return b, nil
}

func (s *Service) CreateOffice(ctx context.Context, ownerEmail string, req CreateOfficeRequest) (*domain.Office, error) {
	if _, err := s.requireBranchOwner(ctx, req.BranchID, ownerEmail); err != nil {
		return nil, err
	}

	privacy := domain.OfficePrivacy(req.Privacy)
	if privacy == "" {
		privacy = domain.OfficeShared
	}
	o := &domain.Office{
		BranchID: req.BranchID,
		Name:     req.Name,
		Price:    req.Price,
		Capacity: req.Capacity,
		Privacy:  privacy,
	}
	if err := s.offices.Create(ctx, o); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=office created office_id=%d branch_id=%d price=%.2f", o.ID, o.BranchID, o.Price)
	return o, nil
}

func (s *Service) ListOffices(ctx context.Context, branchID *int64) ([]domain.Office, error) {
	if branchID != nil {
		return s.offices.ListByBranch(ctx, *branchID)
	}
	return s.offices.List(ctx)
}

func (s *Service) GetOffice(ctx context.Context, id int64) (*domain.Office, error) {
	o, err := s.offices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}
	return o, nil
}

// DeleteOffice schedules a soft delete: existing bookings survive and the
// office stays bookable until the effective date passes.
func (s *Service) DeleteOffice(ctx context.Context, ownerEmail string, officeID int64, req DeleteOfficeRequest) error {
	o, err := s.GetOffice(ctx, officeID)
	if err != nil {
		return err
	}
	if _, err := s.requireBranchOwner(ctx, o.BranchID, ownerEmail); err != nil {
		return err
	}

	today := time.Now().Truncate(24 * time.Hour)
	if req.EffectiveDate.Before(today) {
		return ErrInvalidDeleteDate
	}

	if err := s.offices.SetDeletedAt(ctx, officeID, req.EffectiveDate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOfficeNotFound
		}
		return err
	}
	s.loggerf("level=info msg=office deletion scheduled office_id=%d effective=%s", officeID, req.EffectiveDate.Format("2006-01-02"))
	return nil
}

func (s *Service) AddInactivity(ctx context.Context, ownerEmail string, officeID int64, req AddInactivityRequest) (*domain.Inactivity, error) {
	o, err := s.GetOffice(ctx, officeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireBranchOwner(ctx, o.BranchID, ownerEmail); err != nil {
		return nil, err
	}

	var wd *time.Weekday
	if req.Weekday != nil {
		v := time.Weekday(*req.Weekday)
		wd = &v
	}
	in, err := domain.NewInactivity(officeID, req.SpecificDate, wd)
	if err != nil {
		return nil, ErrInvalidInactivity
	}
	if err := s.offices.AddInactivity(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}
