package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "fastfix/internal/bookings/errors"
	"fastfix/internal/bookings/repository"
	"fastfix/internal/bookings/validator"
	walleterrors "fastfix/internal/wallet/errors"
	"fastfix/pkg/config"
	mongotx "fastfix/pkg/db/mongo"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/events"
	"fastfix/pkg/logger"
	"fastfix/pkg/metrics"
	"fastfix/pkg/model"

	"github.com/google/uuid"
)

// ────────────────────────────────────────────────
// Mock repositories for testing
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc     func(ctx context.Context, booking *model.Booking) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Booking, error)
	findFunc       func(ctx context.Context, filter repository.ListFilter, limit int, offset int64, order string) ([]*model.Booking, error)
	countFunc      func(ctx context.Context, filter repository.ListFilter) (int64, error)
	transitionFunc func(ctx context.Context, id string, expected model.BookingStatus, mutation model.BookingMutation) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) Find(ctx context.Context, filter repository.ListFilter, limit int, offset int64, order string) ([]*model.Booking, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, limit, offset, order)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context, filter repository.ListFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockBookingRepository) Transition(ctx context.Context, id string, expected model.BookingStatus, mutation model.BookingMutation) error {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, expected, mutation)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockAccountRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Account, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	return nil
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) FindTechnicians(ctx context.Context, approval model.ApprovalStatus, limit int, offset int64) ([]*model.Account, error) {
	return nil, nil
}

func (m *mockAccountRepository) CountTechnicians(ctx context.Context, approval model.ApprovalStatus) (int64, error) {
	return 0, nil
}

func (m *mockAccountRepository) SetApproval(ctx context.Context, id string, to model.ApprovalStatus) error {
	return nil
}

type mockWalletRepository struct {
	creditFunc      func(ctx context.Context, accountID string, amount int64) (*model.Account, error)
	debitFunc       func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error)
	appendEntryFunc func(ctx context.Context, entry *model.LedgerEntry) error
}

func (m *mockWalletRepository) Credit(ctx context.Context, accountID string, amount int64) (*model.Account, error) {
	if m.creditFunc != nil {
		return m.creditFunc(ctx, accountID, amount)
	}
	return nil, nil
}

func (m *mockWalletRepository) Debit(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
	if m.debitFunc != nil {
		return m.debitFunc(ctx, accountID, amount, floor)
	}
	return nil, walleterrors.ErrAccountNotFound
}

func (m *mockWalletRepository) FindAccount(ctx context.Context, accountID string) (*model.Account, error) {
	return nil, walleterrors.ErrAccountNotFound
}

func (m *mockWalletRepository) AppendEntry(ctx context.Context, entry *model.LedgerEntry) error {
	if m.appendEntryFunc != nil {
		return m.appendEntryFunc(ctx, entry)
	}
	return nil
}

func (m *mockWalletRepository) FindEntries(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, error) {
	return nil, nil
}

func (m *mockWalletRepository) CountEntries(ctx context.Context, accountID string) (int64, error) {
	return 0, nil
}

func (m *mockWalletRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSettingsRepository struct {
	getFunc func(ctx context.Context) (*model.PlatformSettings, error)
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*model.PlatformSettings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return &model.PlatformSettings{
		ID:                     model.PlatformSettingsID,
		CommissionRate:         "0.15",
		MinimumBalanceToAccept: 5000,
		TravelFee:              10000,
	}, nil
}

func (m *mockSettingsRepository) Replace(ctx context.Context, settings *model.PlatformSettings) error {
	return nil
}

func (m *mockSettingsRepository) EnsureDefaults(ctx context.Context, defaults *model.PlatformSettings) error {
	return nil
}

// ────────────────────────────────────────────────
// Test helpers
// ────────────────────────────────────────────────

func newTestConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(
	bookingRepo *mockBookingRepository,
	accountRepo *mockAccountRepository,
	walletRepo *mockWalletRepository,
	settingsRepo *mockSettingsRepository,
) BookingService {
	cfg := newTestConfig()
	return NewBookingService(
		bookingRepo,
		accountRepo,
		walletRepo,
		settingsRepo,
		validator.NewBookingValidator(cfg.Log),
		events.NewNoopPublisher(),
		metrics.NewCollector(cfg.Log),
		cfg,
	)
}

func customerAccount(id string, balance int64) *model.Account {
	return &model.Account{ID: id, Role: model.RoleCustomer, Name: "Mona Hassan", Balance: balance}
}

func technicianAccount(id string, balance int64, approval model.ApprovalStatus) *model.Account {
	return &model.Account{
		ID:             id,
		Role:           model.RoleTechnician,
		Name:           "Karim Fathy",
		Balance:        balance,
		Expertise:      "Washing machines",
		ApprovalStatus: approval,
	}
}

func serviceRequest(customerID string) *model.ServiceRequest {
	return &model.ServiceRequest{
		CustomerID:         customerID,
		DeviceType:         "Washing Machine",
		ProblemDescription: "Drum spins but water does not drain",
		PreferredDate:      "2030-06-15",
		PreferredTimeSlot:  "09:00 - 11:00",
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// ────────────────────────────────────────────────
// RequestService
// ────────────────────────────────────────────────

func TestRequestService_DebitsTravelFeeAndCreatesBooking(t *testing.T) {
	customerID := uuid.NewString()

	var createdBooking *model.Booking
	var debitedAmount, debitedFloor int64
	var ledgerEntry *model.LedgerEntry

	bookingRepo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			createdBooking = booking
			return nil
		},
	}
	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return customerAccount(customerID, 20000), nil
		},
	}
	walletRepo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
			debitedAmount = amount
			debitedFloor = floor
			return customerAccount(customerID, 20000-amount), nil
		},
		appendEntryFunc: func(ctx context.Context, entry *model.LedgerEntry) error {
			ledgerEntry = entry
			return nil
		},
	}

	svc := newTestService(bookingRepo, accountRepo, walletRepo, &mockSettingsRepository{})

	booking, err := svc.RequestService(context.Background(), serviceRequest(customerID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.StatusPendingAssignment {
		t.Errorf("expected status %s, got %s", model.StatusPendingAssignment, booking.Status)
	}
	if booking.TravelFeeCharged != 10000 {
		t.Errorf("expected travel fee 10000 piasters, got %d", booking.TravelFeeCharged)
	}
	if debitedAmount != 10000 || debitedFloor != 10000 {
		t.Errorf("expected debit of 10000 with floor 10000, got amount=%d floor=%d", debitedAmount, debitedFloor)
	}
	if createdBooking == nil {
		t.Fatal("expected booking to be stored")
	}
	if ledgerEntry == nil {
		t.Fatal("expected ledger entry to be appended")
	}
	if ledgerEntry.Cause != model.CauseTravelFee {
		t.Errorf("expected ledger cause %s, got %s", model.CauseTravelFee, ledgerEntry.Cause)
	}
	if ledgerEntry.Delta != -10000 {
		t.Errorf("expected ledger delta -10000, got %d", ledgerEntry.Delta)
	}
	if ledgerEntry.Balance != 10000 {
		t.Errorf("expected post-debit balance 10000, got %d", ledgerEntry.Balance)
	}
	if ledgerEntry.BookingID != booking.ID {
		t.Errorf("expected ledger entry to reference booking %s, got %s", booking.ID, ledgerEntry.BookingID)
	}
}

func TestRequestService_InsufficientFunds(t *testing.T) {
	customerID := uuid.NewString()
	created := false

	bookingRepo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			created = true
			return nil
		},
	}
	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return customerAccount(customerID, 5000), nil
		},
	}
	walletRepo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
			return nil, walleterrors.ErrInsufficientFunds
		},
	}

	svc := newTestService(bookingRepo, accountRepo, walletRepo, &mockSettingsRepository{})

	_, err := svc.RequestService(context.Background(), serviceRequest(customerID))
	assertAppErrorCode(t, err, apperrors.CodeInsufficientFunds)

	if created {
		t.Error("booking must not be created when the travel fee debit fails")
	}
}

func TestRequestService_RejectsNonCustomer(t *testing.T) {
	technicianID := uuid.NewString()

	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return technicianAccount(technicianID, 20000, model.ApprovalApproved), nil
		},
	}

	svc := newTestService(&mockBookingRepository{}, accountRepo, &mockWalletRepository{}, &mockSettingsRepository{})

	_, err := svc.RequestService(context.Background(), serviceRequest(technicianID))
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestRequestService_ValidationFailure(t *testing.T) {
	customerID := uuid.NewString()
	debited := false

	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return customerAccount(customerID, 20000), nil
		},
	}
	walletRepo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
			debited = true
			return customerAccount(customerID, 10000), nil
		},
	}

	svc := newTestService(&mockBookingRepository{}, accountRepo, walletRepo, &mockSettingsRepository{})

	req := serviceRequest(customerID)
	req.DeviceType = ""

	_, err := svc.RequestService(context.Background(), req)
	assertAppErrorCode(t, err, apperrors.CodeValidation)

	if debited {
		t.Error("wallet must not be debited when validation fails")
	}
}

// ────────────────────────────────────────────────
// AcceptJob
// ────────────────────────────────────────────────

func TestAcceptJob_ChargesCommissionAtCurrentRate(t *testing.T) {
	bookingID := uuid.NewString()
	customerID := uuid.NewString()
	technicianID := uuid.NewString()

	var mutation model.BookingMutation
	var debitedAmount, debitedFloor int64
	var ledgerEntry *model.LedgerEntry

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:               bookingID,
				CustomerID:       customerID,
				Status:           model.StatusPendingAssignment,
				TravelFeeCharged: 10000,
			}, nil
		},
		transitionFunc: func(ctx context.Context, id string, expected model.BookingStatus, m model.BookingMutation) error {
			if expected != model.StatusPendingAssignment {
				t.Errorf("expected claim guard on %s, got %s", model.StatusPendingAssignment, expected)
			}
			mutation = m
			return nil
		},
	}
	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return technicianAccount(technicianID, 10000, model.ApprovalApproved), nil
		},
	}
	walletRepo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
			debitedAmount = amount
			debitedFloor = floor
			return technicianAccount(technicianID, 10000-amount, model.ApprovalApproved), nil
		},
		appendEntryFunc: func(ctx context.Context, entry *model.LedgerEntry) error {
			ledgerEntry = entry
			return nil
		},
	}

	svc := newTestService(bookingRepo, accountRepo, walletRepo, &mockSettingsRepository{})

	booking, err := svc.AcceptJob(context.Background(), bookingID, technicianID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 15% of EGP 100.00 travel fee.
	if debitedAmount != 1500 {
		t.Errorf("expected commission debit of 1500 piasters, got %d", debitedAmount)
	}
	// Floor is the configured minimum balance, which exceeds the commission.
	if debitedFloor != 5000 {
		t.Errorf("expected debit floor 5000, got %d", debitedFloor)
	}
	if mutation.Status != model.StatusAssigned || mutation.TechnicianID != technicianID {
		t.Errorf("unexpected claim mutation: %+v", mutation)
	}
	if mutation.CommissionCharged == nil || *mutation.CommissionCharged != 1500 {
		t.Errorf("expected commission 1500 recorded on booking, got %v", mutation.CommissionCharged)
	}
	if booking.Status != model.StatusAssigned {
		t.Errorf("expected status %s, got %s", model.StatusAssigned, booking.Status)
	}
	if ledgerEntry == nil || ledgerEntry.Cause != model.CauseCommission || ledgerEntry.Delta != -1500 {
		t.Errorf("unexpected ledger entry: %+v", ledgerEntry)
	}
}

func TestAcceptJob_NotApproved(t *testing.T) {
	bookingID := uuid.NewString()
	technicianID := uuid.NewString()

	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return technicianAccount(technicianID, 20000, model.ApprovalPending), nil
		},
	}

	svc := newTestService(&mockBookingRepository{}, accountRepo, &mockWalletRepository{}, &mockSettingsRepository{})

	_, err := svc.AcceptJob(context.Background(), bookingID, technicianID)
	assertAppErrorCode(t, err, apperrors.CodeNotApproved)
}

func TestAcceptJob_ClaimRace(t *testing.T) {
	bookingID := uuid.NewString()
	technicianID := uuid.NewString()
	debited := false

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:               bookingID,
				CustomerID:       uuid.NewString(),
				Status:           model.StatusPendingAssignment,
				TravelFeeCharged: 10000,
			}, nil
		},
		transitionFunc: func(ctx context.Context, id string, expected model.BookingStatus, m model.BookingMutation) error {
			return bookingserrors.ErrStatusConflict
		},
	}
	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return technicianAccount(technicianID, 20000, model.ApprovalApproved), nil
		},
	}
	walletRepo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
			debited = true
			return technicianAccount(technicianID, 20000, model.ApprovalApproved), nil
		},
	}

	svc := newTestService(bookingRepo, accountRepo, walletRepo, &mockSettingsRepository{})

	_, err := svc.AcceptJob(context.Background(), bookingID, technicianID)
	assertAppErrorCode(t, err, apperrors.CodeStaleState)

	if debited {
		t.Error("the losing claim must not debit the technician")
	}
}

func TestAcceptJob_MinimumBalanceGate(t *testing.T) {
	bookingID := uuid.NewString()
	technicianID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:               bookingID,
				CustomerID:       uuid.NewString(),
				Status:           model.StatusPendingAssignment,
				TravelFeeCharged: 10000,
			}, nil
		},
	}
	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return technicianAccount(technicianID, 4000, model.ApprovalApproved), nil
		},
	}
	walletRepo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
			return nil, walleterrors.ErrInsufficientFunds
		},
	}

	svc := newTestService(bookingRepo, accountRepo, walletRepo, &mockSettingsRepository{})

	_, err := svc.AcceptJob(context.Background(), bookingID, technicianID)
	assertAppErrorCode(t, err, apperrors.CodeInsufficientFunds)
}

func TestAcceptJob_AlreadyAssigned(t *testing.T) {
	bookingID := uuid.NewString()
	technicianID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:               bookingID,
				CustomerID:       uuid.NewString(),
				Status:           model.StatusAssigned,
				TechnicianID:     uuid.NewString(),
				TravelFeeCharged: 10000,
			}, nil
		},
	}
	accountRepo := &mockAccountRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return technicianAccount(technicianID, 20000, model.ApprovalApproved), nil
		},
	}

	svc := newTestService(bookingRepo, accountRepo, &mockWalletRepository{}, &mockSettingsRepository{})

	_, err := svc.AcceptJob(context.Background(), bookingID, technicianID)
	assertAppErrorCode(t, err, apperrors.CodeStaleState)
}

// ────────────────────────────────────────────────
// Completion and confirmation
// ────────────────────────────────────────────────

func TestCompleteByTechnician_TransitionsStatus(t *testing.T) {
	bookingID := uuid.NewString()
	technicianID := uuid.NewString()

	var expectedGuard model.BookingStatus
	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:           bookingID,
				CustomerID:   uuid.NewString(),
				Status:       model.StatusAssigned,
				TechnicianID: technicianID,
			}, nil
		},
		transitionFunc: func(ctx context.Context, id string, expected model.BookingStatus, m model.BookingMutation) error {
			expectedGuard = expected
			return nil
		},
	}

	svc := newTestService(bookingRepo, &mockAccountRepository{}, &mockWalletRepository{}, &mockSettingsRepository{})

	booking, err := svc.CompleteByTechnician(context.Background(), bookingID, technicianID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expectedGuard != model.StatusAssigned {
		t.Errorf("expected transition guard %s, got %s", model.StatusAssigned, expectedGuard)
	}
	if booking.Status != model.StatusCompletedByTechnician {
		t.Errorf("expected status %s, got %s", model.StatusCompletedByTechnician, booking.Status)
	}
}

func TestCompleteByTechnician_WrongTechnician(t *testing.T) {
	bookingID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:           bookingID,
				CustomerID:   uuid.NewString(),
				Status:       model.StatusAssigned,
				TechnicianID: uuid.NewString(),
			}, nil
		},
	}

	svc := newTestService(bookingRepo, &mockAccountRepository{}, &mockWalletRepository{}, &mockSettingsRepository{})

	_, err := svc.CompleteByTechnician(context.Background(), bookingID, uuid.NewString())
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestConfirmCompletion_ClosesBooking(t *testing.T) {
	bookingID := uuid.NewString()
	customerID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:         bookingID,
				CustomerID: customerID,
				Status:     model.StatusCompletedByTechnician,
			}, nil
		},
	}

	svc := newTestService(bookingRepo, &mockAccountRepository{}, &mockWalletRepository{}, &mockSettingsRepository{})

	booking, err := svc.ConfirmCompletion(context.Background(), bookingID, customerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.StatusCompleted {
		t.Errorf("expected status %s, got %s", model.StatusCompleted, booking.Status)
	}
}

func TestConfirmCompletion_InvalidTransition(t *testing.T) {
	bookingID := uuid.NewString()
	customerID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:         bookingID,
				CustomerID: customerID,
				Status:     model.StatusCompletedByTechnician,
			}, nil
		},
		transitionFunc: func(ctx context.Context, id string, expected model.BookingStatus, m model.BookingMutation) error {
			return bookingserrors.ErrStatusConflict
		},
	}

	svc := newTestService(bookingRepo, &mockAccountRepository{}, &mockWalletRepository{}, &mockSettingsRepository{})

	_, err := svc.ConfirmCompletion(context.Background(), bookingID, customerID)
	assertAppErrorCode(t, err, apperrors.CodeInvalidTransition)
}

// ────────────────────────────────────────────────
// Cancel
// ────────────────────────────────────────────────

func TestCancel_FromPending(t *testing.T) {
	bookingID := uuid.NewString()
	customerID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:         bookingID,
				CustomerID: customerID,
				Status:     model.StatusPendingAssignment,
			}, nil
		},
	}

	svc := newTestService(bookingRepo, &mockAccountRepository{}, &mockWalletRepository{}, &mockSettingsRepository{})

	booking, err := svc.Cancel(context.Background(), bookingID, customerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.StatusCancelled {
		t.Errorf("expected status %s, got %s", model.StatusCancelled, booking.Status)
	}
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	bookingID := uuid.NewString()
	customerID := uuid.NewString()

	bookingRepo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:         bookingID,
				CustomerID: customerID,
				Status:     model.StatusCompleted,
			}, nil
		},
	}

	svc := newTestService(bookingRepo, &mockAccountRepository{}, &mockWalletRepository{}, &mockSettingsRepository{})

	_, err := svc.Cancel(context.Background(), bookingID, customerID)
	assertAppErrorCode(t, err, apperrors.CodeInvalidTransition)
}
