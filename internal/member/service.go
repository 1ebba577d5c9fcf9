package member

import (
	"context"
	"errors"

	"kinetica/internal/access"
	"kinetica/internal/apperr"
	"kinetica/internal/auth"
	"kinetica/internal/user"

	"github.com/lib/pq"
)

var (
	errNotFound        = apperr.NotFound("Member not found")
	errTrainerNotInGym = apperr.BadRequest("Trainer not found in this gym")
)

// TrainerLookup resolves a staff user inside one gym.
type TrainerLookup interface {
	FindInGym(ctx context.Context, gymID, id int) (*user.User, error)
}

type Service interface {
	List(ctx context.Context, id auth.Identity) ([]MemberResponse, error)
	Create(ctx context.Context, id auth.Identity, req CreateMemberRequest) (*MemberResponse, error)
	Get(ctx context.Context, id auth.Identity, memberID int) (*MemberResponse, error)
	Update(ctx context.Context, id auth.Identity, memberID int, req UpdateMemberRequest) (*MemberResponse, error)
	Deactivate(ctx context.Context, id auth.Identity, memberID int) error
	// Accessible returns a member of the caller's gym the caller may see,
	// active or not.
	Accessible(ctx context.Context, id auth.Identity, memberID int) (*Member, error)
	// Active returns an active member of the caller's gym regardless of
	// trainer assignment.
	Active(ctx context.Context, id auth.Identity, memberID int) (*Member, error)
}

type service struct {
	repo     Repository
	trainers TrainerLookup
}

func NewService(repo Repository, trainers TrainerLookup) Service {
	return &service{
		repo:     repo,
		trainers: trainers,
	}
}

func (s *service) List(ctx context.Context, id auth.Identity) ([]MemberResponse, error) {
	members, err := s.repo.List(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	summaries, err := s.repo.PackageSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	byMember := make(map[int][]PackageSummary, len(members))
	for _, ps := range summaries {
		byMember[ps.MemberID] = append(byMember[ps.MemberID], ps)
	}

	resp := make([]MemberResponse, len(members))
	for i, m := range members {
		pkgs := byMember[m.ID]
		if pkgs == nil {
			pkgs = []PackageSummary{}
		}
		resp[i] = MemberResponse{MemberWithDetails: m, MemberPackages: pkgs}
	}

	return resp, nil
}

func (s *service) Create(ctx context.Context, id auth.Identity, req CreateMemberRequest) (*MemberResponse, error) {
	if req.TrainerID != nil {
		if err := s.checkTrainer(ctx, id.GymID, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &Member{
		GymID:     id.GymID,
		TrainerID: req.TrainerID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Notes:     req.Notes,
		Goals:     pq.StringArray(append([]string{}, req.Goals...)),
	})
	if err != nil {
		return nil, err
	}

	return s.response(ctx, id.GymID, created.ID)
}

func (s *service) Get(ctx context.Context, id auth.Identity, memberID int) (*MemberResponse, error) {
	if _, err := s.Accessible(ctx, id, memberID); err != nil {
		return nil, err
	}
	return s.response(ctx, id.GymID, memberID)
}

func (s *service) Update(ctx context.Context, id auth.Identity, memberID int, req UpdateMemberRequest) (*MemberResponse, error) {
	if _, err := s.Accessible(ctx, id, memberID); err != nil {
		return nil, err
	}

	if req.TrainerID != nil {
		if err := s.checkTrainer(ctx, id.GymID, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.Update(ctx, id.GymID, memberID, req); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	return s.response(ctx, id.GymID, memberID)
}

func (s *service) Deactivate(ctx context.Context, id auth.Identity, memberID int) error {
	if _, err := s.Accessible(ctx, id, memberID); err != nil {
		return err
	}

	err := s.repo.Deactivate(ctx, id.GymID, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return errNotFound
	}
	return err
}

func (s *service) Accessible(ctx context.Context, id auth.Identity, memberID int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id.GymID, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := access.CanAccessMember(id, m.TrainerID); err != nil {
		return nil, err
	}

	return &m.Member, nil
}

func (s *service) Active(ctx context.Context, id auth.Identity, memberID int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id.GymID, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, errNotFound
	}

	return &m.Member, nil
}

func (s *service) checkTrainer(ctx context.Context, gymID, trainerID int) error {
	_, err := s.trainers.FindInGym(ctx, gymID, trainerID)
	if errors.Is(err, user.ErrUserNotFound) {
		return errTrainerNotInGym
	}
	return err
}

func (s *service) response(ctx context.Context, gymID, memberID int) (*MemberResponse, error) {
	m, err := s.repo.GetByID(ctx, gymID, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	summaries, err := s.repo.PackageSummaries(ctx, []int{memberID})
	if err != nil {
		return nil, err
	}

	return &MemberResponse{MemberWithDetails: *m, MemberPackages: summaries}, nil
}
