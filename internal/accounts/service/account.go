package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	accountserrors "fastfix/internal/accounts/errors"
	"fastfix/internal/accounts/repository"
	"fastfix/internal/accounts/validator"
	"fastfix/pkg/config"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/events"
	"fastfix/pkg/model"
	"fastfix/pkg/sanitizer"

	"github.com/google/uuid"
)

type AccountService interface {
	CreateCustomer(ctx context.Context, name string) (*model.Account, error)
	CreateTechnician(ctx context.Context, name, expertise string, documents []string) (*model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	ListTechnicians(ctx context.Context, approval string, limit int, offset int64) ([]*model.Account, int64, error)
	Approve(ctx context.Context, technicianID string) (*model.Account, error)
	Reject(ctx context.Context, technicianID string) (*model.Account, error)
}

type accountService struct {
	repo      repository.AccountRepository
	validator *validator.AccountValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewAccountService(
	repo repository.AccountRepository,
	validator *validator.AccountValidator,
	publisher events.Publisher,
	cfg *config.Config,
) AccountService {
	return &accountService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *accountService) CreateCustomer(ctx context.Context, name string) (*model.Account, error) {
	account := &model.Account{
		ID:   uuid.NewString(),
		Role: model.RoleCustomer,
		Name: sanitizer.TrimAndNormalize(name),
	}

	return s.create(ctx, account)
}

// CreateTechnician registers an application. Technicians start pending with a
// zero balance and cannot accept jobs until an admin approves them.
func (s *accountService) CreateTechnician(ctx context.Context, name, expertise string, documents []string) (*model.Account, error) {
	account := &model.Account{
		ID:             uuid.NewString(),
		Role:           model.RoleTechnician,
		Name:           sanitizer.TrimAndNormalize(name),
		Expertise:      sanitizer.TrimAndNormalize(expertise),
		Documents:      documents,
		ApprovalStatus: model.ApprovalPending,
	}

	return s.create(ctx, account)
}

func (s *accountService) create(ctx context.Context, account *model.Account) (*model.Account, error) {
	if err := s.validator.Validate(account); err != nil {
		s.cfg.Log.Warn("Account validation failed", "role", account.Role, "error", err)
		return nil, apperrors.Validation("Account validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, account); err != nil {
		s.cfg.Log.Error("Failed to create account", "role", account.Role, "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.cfg.Log.Info("Account created", "id", account.ID, "role", account.Role)
	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*model.Account, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Account", id)
		}
		return nil, apperrors.Internal("Failed to retrieve account", err)
	}

	return account, nil
}

func (s *accountService) ListTechnicians(ctx context.Context, approval string, limit int, offset int64) ([]*model.Account, int64, error) {
	approvalStatus := model.ApprovalStatus(approval)
	switch approvalStatus {
	case "", model.ApprovalPending, model.ApprovalApproved, model.ApprovalRejected:
	default:
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid approval filter: %s", approval))
	}

	var count int64
	var accounts []*model.Account
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountTechnicians(ctx, approvalStatus)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count technicians", "error", errCount)
			errCount = apperrors.Internal("Failed to count technicians", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		accounts, errFind = s.repo.FindTechnicians(ctx, approvalStatus, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list technicians", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve technicians", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return accounts, count, nil
}

func (s *accountService) Approve(ctx context.Context, technicianID string) (*model.Account, error) {
	return s.decide(ctx, technicianID, model.ApprovalApproved, events.TypeTechnicianApproved)
}

func (s *accountService) Reject(ctx context.Context, technicianID string) (*model.Account, error) {
	return s.decide(ctx, technicianID, model.ApprovalRejected, events.TypeTechnicianRejected)
}

// decide moves a pending application to a terminal status. Re-applying the
// same decision is a no-op; flipping a terminal decision is rejected.
func (s *accountService) decide(ctx context.Context, technicianID string, target model.ApprovalStatus, eventType string) (*model.Account, error) {
	account, err := s.GetByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}

	if !account.IsTechnician() {
		return nil, apperrors.InvalidTransition("Account is not a technician application")
	}

	if account.ApprovalStatus == target {
		s.cfg.Log.Debug("Approval decision already applied", "id", technicianID, "status", target)
		return account, nil
	}

	if account.ApprovalStatus != model.ApprovalPending {
		return nil, apperrors.InvalidTransition(fmt.Sprintf(
			"Technician application is already %s and cannot become %s",
			account.ApprovalStatus, target,
		))
	}

	if err := s.repo.SetApproval(ctx, technicianID, target); err != nil {
		if errors.Is(err, accountserrors.ErrNotPending) {
			return nil, apperrors.StaleState("Technician application was decided concurrently")
		}
		s.cfg.Log.Error("Failed to set approval status", "id", technicianID, "error", err)
		return nil, apperrors.Internal("Failed to update approval status", err)
	}

	account.ApprovalStatus = target
	s.cfg.Log.Info("Technician application decided", "id", technicianID, "status", target)

	s.publisher.Publish(ctx, eventType, technicianID, events.ApprovalDecided{
		TechnicianID: technicianID,
		Status:       string(target),
	})

	return account, nil
}
