package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	accountserrors "fastfix/internal/accounts/errors"
	accountsrepo "fastfix/internal/accounts/repository"
	bookingserrors "fastfix/internal/bookings/errors"
	"fastfix/internal/bookings/repository"
	"fastfix/internal/bookings/validator"
	platformrepo "fastfix/internal/platform/repository"
	walleterrors "fastfix/internal/wallet/errors"
	walletrepo "fastfix/internal/wallet/repository"
	"fastfix/pkg/config"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/events"
	"fastfix/pkg/metrics"
	"fastfix/pkg/model"
	"fastfix/pkg/money"
	"fastfix/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	RequestService(ctx context.Context, req *model.ServiceRequest) (*model.Booking, error)
	AcceptJob(ctx context.Context, bookingID, technicianID string) (*model.Booking, error)
	CompleteByTechnician(ctx context.Context, bookingID, technicianID string) (*model.Booking, error)
	ConfirmCompletion(ctx context.Context, bookingID, customerID string) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, customerID string) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filter repository.ListFilter, limit int, offset int64, order string) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	accountRepo  accountsrepo.AccountRepository
	walletRepo   walletrepo.WalletRepository
	settingsRepo platformrepo.SettingsRepository
	validator    *validator.BookingValidator
	publisher    events.Publisher
	metrics      *metrics.Collector
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	accountRepo accountsrepo.AccountRepository,
	walletRepo walletrepo.WalletRepository,
	settingsRepo platformrepo.SettingsRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	collector *metrics.Collector,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		accountRepo:  accountRepo,
		walletRepo:   walletRepo,
		settingsRepo: settingsRepo,
		validator:    bookingValidator,
		publisher:    publisher,
		metrics:      collector,
		cfg:          cfg,
	}
}

// RequestService books a repair visit. The non-refundable travel fee is read
// from platform settings and debited from the customer in the same
// transaction that stores the booking, so a failed debit leaves no booking
// behind.
func (s *bookingService) RequestService(ctx context.Context, req *model.ServiceRequest) (*model.Booking, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("request_service", time.Since(start)) }()

	customer, err := s.findAccount(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Role != model.RoleCustomer {
		return nil, apperrors.InvalidInput("Only customer accounts can request service")
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:                 uuid.NewString(),
		CustomerID:         req.CustomerID,
		DeviceType:         sanitizer.NormalizeDeviceType(req.DeviceType),
		ProblemDescription: sanitizer.NormalizeDescription(req.ProblemDescription),
		PreferredDate:      sanitizer.TrimAndNormalize(req.PreferredDate),
		PreferredTimeSlot:  sanitizer.NormalizeTimeSlot(req.PreferredTimeSlot),
		Status:             model.StatusPendingAssignment,
		TravelFeeCharged:   settings.TravelFee,
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "customer_id", req.CustomerID, "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	var debited *model.Account
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		debited, err = s.debit(sessCtx, req.CustomerID, booking.TravelFeeCharged, booking.TravelFeeCharged,
			"Insufficient balance to cover the travel fee")
		if err != nil {
			return err
		}

		entry := &model.LedgerEntry{
			AccountID: req.CustomerID,
			BookingID: booking.ID,
			Cause:     model.CauseTravelFee,
			Delta:     -booking.TravelFeeCharged,
			Balance:   debited.Balance,
		}
		if err := s.walletRepo.AppendEntry(sessCtx, entry); err != nil {
			return apperrors.Internal("Failed to record ledger entry", err)
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to request service", "customer_id", req.CustomerID, "error", err)
		return nil, err
	}

	s.metrics.BookingCreated()
	s.metrics.SetWalletBalance(debited.ID, string(debited.Role), debited.Balance)

	s.publisher.Publish(ctx, events.TypeBookingCreated, booking.ID, events.BookingCreated{
		BookingID:        booking.ID,
		CustomerID:       booking.CustomerID,
		DeviceType:       booking.DeviceType,
		PreferredDate:    booking.PreferredDate,
		PreferredSlot:    booking.PreferredTimeSlot,
		TravelFeeCharged: booking.TravelFeeCharged,
	})

	s.cfg.Log.Info("Service requested",
		"booking_id", booking.ID,
		"customer_id", booking.CustomerID,
		"device_type", booking.DeviceType,
		"travel_fee", money.Format(booking.TravelFeeCharged),
	)
	return booking, nil
}

// AcceptJob claims a pending booking for an approved technician. The claim is
// a status-guarded write; of N concurrent accepts exactly one matches and the
// rest see StaleState. The commission uses the rate in force at acceptance
// and is debited in the same transaction as the claim.
func (s *bookingService) AcceptJob(ctx context.Context, bookingID, technicianID string) (*model.Booking, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("accept_job", time.Since(start)) }()

	technician, err := s.findAccount(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if !technician.IsTechnician() || !technician.IsApproved() {
		return nil, apperrors.NotApproved(technicianID)
	}

	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != model.StatusPendingAssignment {
		return nil, apperrors.StaleState("Booking is no longer open for acceptance")
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := money.ParseRate(settings.CommissionRate)
	if err != nil {
		return nil, apperrors.Internal("Stored commission rate is invalid", err)
	}

	commission := money.Commission(booking.TravelFeeCharged, rate)
	floor := max(commission, settings.MinimumBalanceToAccept)

	var debited *model.Account
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		mutation := model.BookingMutation{
			Status:            model.StatusAssigned,
			TechnicianID:      technicianID,
			CommissionCharged: &commission,
		}
		if err := s.repo.Transition(sessCtx, bookingID, model.StatusPendingAssignment, mutation); err != nil {
			if errors.Is(err, bookingserrors.ErrStatusConflict) {
				s.metrics.AcceptConflict()
				return apperrors.StaleState("Booking was claimed by another technician")
			}
			return apperrors.Internal("Failed to claim booking", err)
		}

		debited, err = s.debit(sessCtx, technicianID, commission, floor,
			fmt.Sprintf("Balance must cover the commission and stay at or above %s to accept jobs",
				money.Format(settings.MinimumBalanceToAccept)))
		if err != nil {
			return err
		}

		entry := &model.LedgerEntry{
			AccountID: technicianID,
			BookingID: bookingID,
			Cause:     model.CauseCommission,
			Delta:     -commission,
			Balance:   debited.Balance,
		}
		if err := s.walletRepo.AppendEntry(sessCtx, entry); err != nil {
			return apperrors.Internal("Failed to record ledger entry", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to accept job", "booking_id", bookingID, "technician_id", technicianID, "error", err)
		return nil, err
	}

	booking.Status = model.StatusAssigned
	booking.TechnicianID = technicianID
	booking.CommissionCharged = &commission

	s.metrics.JobAccepted()
	s.metrics.SetWalletBalance(debited.ID, string(debited.Role), debited.Balance)

	s.publisher.Publish(ctx, events.TypeBookingAssigned, bookingID, events.BookingAssigned{
		BookingID:         bookingID,
		CustomerID:        booking.CustomerID,
		TechnicianID:      technicianID,
		CommissionCharged: commission,
	})

	s.cfg.Log.Info("Job accepted",
		"booking_id", bookingID,
		"technician_id", technicianID,
		"commission", money.Format(commission),
	)
	return booking, nil
}

// CompleteByTechnician marks the work done; the booking then waits for the
// customer's confirmation.
func (s *bookingService) CompleteByTechnician(ctx context.Context, bookingID, technicianID string) (*model.Booking, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("complete_by_technician", time.Since(start)) }()

	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TechnicianID != technicianID {
		return nil, apperrors.InvalidInput("Booking is not assigned to this technician")
	}

	if err := s.transition(ctx, booking, model.StatusAssigned, model.StatusCompletedByTechnician); err != nil {
		return nil, err
	}

	s.metrics.JobCompleted()

	s.publisher.Publish(ctx, events.TypeBookingCompletedBy, bookingID, events.BookingStatusChanged{
		BookingID:    bookingID,
		CustomerID:   booking.CustomerID,
		TechnicianID: booking.TechnicianID,
		Status:       string(booking.Status),
	})

	s.cfg.Log.Info("Job completed by technician", "booking_id", bookingID, "technician_id", technicianID)
	return booking, nil
}

// ConfirmCompletion is the customer's acknowledgement that closes the
// booking. No money moves here; both fees were settled earlier.
func (s *bookingService) ConfirmCompletion(ctx context.Context, bookingID, customerID string) (*model.Booking, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("confirm_completion", time.Since(start)) }()

	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperrors.InvalidInput("Booking does not belong to this customer")
	}

	if err := s.transition(ctx, booking, model.StatusCompletedByTechnician, model.StatusCompleted); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.TypeBookingConfirmed, bookingID, events.BookingStatusChanged{
		BookingID:    bookingID,
		CustomerID:   booking.CustomerID,
		TechnicianID: booking.TechnicianID,
		Status:       string(booking.Status),
	})

	s.cfg.Log.Info("Booking confirmed", "booking_id", bookingID, "customer_id", customerID)
	return booking, nil
}

// Cancel closes a booking that has not progressed past assignment. The travel
// fee is non-refundable, so no ledger movement happens.
func (s *bookingService) Cancel(ctx context.Context, bookingID, customerID string) (*model.Booking, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("cancel", time.Since(start)) }()

	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperrors.InvalidInput("Booking does not belong to this customer")
	}

	if booking.Status != model.StatusPendingAssignment && booking.Status != model.StatusAssigned {
		return nil, apperrors.InvalidTransition(fmt.Sprintf(
			"Booking in status %s cannot be cancelled", booking.Status,
		))
	}

	if err := s.repo.Transition(ctx, bookingID, booking.Status, model.BookingMutation{Status: model.StatusCancelled}); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusConflict) {
			return nil, apperrors.StaleState("Booking changed state before it could be cancelled")
		}
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	booking.Status = model.StatusCancelled

	s.metrics.BookingCancelled()

	s.publisher.Publish(ctx, events.TypeBookingCancelled, bookingID, events.BookingStatusChanged{
		BookingID:    bookingID,
		CustomerID:   booking.CustomerID,
		TechnicianID: booking.TechnicianID,
		Status:       string(booking.Status),
	})

	s.cfg.Log.Info("Booking cancelled", "booking_id", bookingID, "customer_id", customerID)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, filter repository.ListFilter, limit int, offset int64, order string) ([]*model.Booking, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid status filter: %s", filter.Status))
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Find(ctx, filter, limit, offset, order)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) findAccount(ctx context.Context, accountID string) (*model.Account, error) {
	if accountID == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Account", accountID)
		}
		return nil, apperrors.Internal("Failed to retrieve account", err)
	}

	return account, nil
}

func (s *bookingService) loadSettings(ctx context.Context) (*model.PlatformSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load platform settings", err)
	}
	return settings, nil
}

func (s *bookingService) debit(ctx context.Context, accountID string, amount, floor int64, insufficientMsg string) (*model.Account, error) {
	account, err := s.walletRepo.Debit(ctx, accountID, amount, floor)
	if err != nil {
		if errors.Is(err, walleterrors.ErrInsufficientFunds) {
			s.metrics.InsufficientFunds()
			return nil, apperrors.InsufficientFunds(insufficientMsg)
		}
		if errors.Is(err, walleterrors.ErrAccountNotFound) {
			return nil, apperrors.NotFoundWithID("Account", accountID)
		}
		return nil, apperrors.Internal("Failed to debit wallet", err)
	}
	return account, nil
}

// transition applies a single-status move and maps a missed guard to
// InvalidTransition; the booking was found just before, so the miss means its
// status moved on.
func (s *bookingService) transition(ctx context.Context, booking *model.Booking, from, to model.BookingStatus) error {
	if err := s.repo.Transition(ctx, booking.ID, from, model.BookingMutation{Status: to}); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusConflict) {
			return apperrors.InvalidTransition(fmt.Sprintf(
				"Booking must be %s to become %s", from, to,
			))
		}
		return apperrors.Internal("Failed to transition booking", err)
	}

	booking.Status = to
	return nil
}
