package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	dbm "groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/models/response_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/pkg/utils"
)

const (
	PaymentTypeDeposit = "deposit"
	PaymentTypeFull    = "full"

	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

var (
	ErrPaymentsNotConfigured   = errors.New("payment provider is not configured")
	ErrCheckoutSessionNotFound = errors.New("checkout session not found")
	ErrInvalidWebhook          = errors.New("invalid webhook payload or signature")
)

type CheckoutLineItem struct {
	PriceID     string
	Name        string
	Description string
	UnitAmount  int64 // minor units
	Currency    string
	Quantity    int64
}

type CheckoutSessionInput struct {
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	LineItem      CheckoutLineItem
	Metadata      map[string]string
}

// CheckoutSession is the provider-neutral view of a hosted checkout.
type CheckoutSession struct {
	ID            string
	URL           string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	PaymentStatus string
	Status        string
	Metadata      map[string]string
}

type WebhookEvent struct {
	ID      string
	Type    string
	Session *CheckoutSession
}

// PaymentGateway talks to the hosted payment provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}

type PaymentService interface {
	// CreateCheckoutSession records a pending registration when userID is set.
	CreateCheckoutSession(ctx context.Context, userID string, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type PaymentConfig struct {
	BaseURL  string
	Currency string
}

type paymentService struct {
	gateway       PaymentGateway
	registrations repositories.RegistrationRepositoryInterface
	cfg           PaymentConfig
	logger        *zap.Logger
}

func NewPaymentService(
	gateway PaymentGateway,
	registrations repositories.RegistrationRepositoryInterface,
	cfg PaymentConfig,
	logger *zap.Logger,
) PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "cad"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &paymentService{
		gateway:       gateway,
		registrations: registrations,
		cfg:           cfg,
		logger:        logger,
	}
}

// ToMinorUnits converts a major-unit amount to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (p *paymentService) CreateCheckoutSession(ctx context.Context, userID string, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	paymentType := strings.ToLower(strings.TrimSpace(request.PaymentType))
	if paymentType == "" {
		paymentType = PaymentTypeDeposit
	}
	if paymentType != PaymentTypeDeposit && paymentType != PaymentTypeFull {
		return nil, utils.ValidationError("paymentType must be one of: deposit full")
	}

	priceID := strings.TrimSpace(request.PriceID)
	if priceID == "" && request.Amount <= 0 {
		return nil, utils.ValidationError("Either priceId or a positive amount is required")
	}

	item := CheckoutLineItem{Quantity: 1}
	if priceID != "" {
		item.PriceID = priceID
	} else {
		label := "Deposit"
		if paymentType == PaymentTypeFull {
			label = "Full Payment"
		}
		item.Name = fmt.Sprintf("%s — %s", request.RetreatName, label)
		if request.RetreatDate != "" {
			item.Description = "Retreat dates: " + request.RetreatDate
		}
		item.UnitAmount = ToMinorUnits(request.Amount)
		item.Currency = p.cfg.Currency
	}

	input := CheckoutSessionInput{
		CustomerEmail: NormalizeEmail(request.CustomerEmail),
		SuccessURL:    p.cfg.BaseURL + "/registration/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     p.cfg.BaseURL + "/retreats",
		LineItem:      item,
		Metadata: map[string]string{
			"customerName": request.CustomerName,
			"retreatName":  request.RetreatName,
			"paymentType":  paymentType,
		},
	}
	if request.RetreatDate != "" {
		input.Metadata["retreatDate"] = request.RetreatDate
	}
	if userID != "" {
		input.Metadata["userId"] = userID
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, input)
	if err != nil {
		return nil, utils.UpstreamError("Failed to create checkout session", err)
	}

	if userID != "" {
		p.recordRegistration(ctx, userID, request, session)
	}

	return &response_models.CreateCheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// recordRegistration failures are logged; the customer can still pay.
func (p *paymentService) recordRegistration(ctx context.Context, userID string, request request_models.CreateCheckoutRequest, session *CheckoutSession) {
	var amount *string
	switch {
	case request.Amount > 0:
		v := fmt.Sprintf("%.2f", float64(ToMinorUnits(request.Amount))/100)
		amount = &v
	case session.AmountTotal > 0:
		v := fmt.Sprintf("%.2f", float64(session.AmountTotal)/100)
		amount = &v
	}

	sessionID := session.ID
	registration := &dbm.RetreatRegistration{
		UserID:          userID,
		RetreatName:     request.RetreatName,
		RetreatDate:     request.RetreatDate,
		PaymentStatus:   dbm.PaymentStatusPending,
		PaymentAmount:   amount,
		StripeSessionID: &sessionID,
	}
	if err := p.registrations.CreateRegistration(ctx, registration); err != nil {
		p.logger.Error("failed to record retreat registration",
			zap.String("user_id", userID),
			zap.String("checkout_session", session.ID),
			zap.Error(err))
	}
}

func (p *paymentService) GetCheckoutSession(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, utils.ValidationError("Session id is required")
	}

	session, err := p.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrCheckoutSessionNotFound) {
			return nil, utils.NotFoundError("Checkout session not found")
		}
		return nil, utils.UpstreamError("Failed to retrieve checkout session", err)
	}

	return &response_models.CheckoutSessionResponse{
		ID:            session.ID,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
		CustomerEmail: session.CustomerEmail,
		PaymentStatus: session.PaymentStatus,
		Status:        session.Status,
	}, nil
}

// HandleWebhook settles registrations from provider events. Repeated or
// unknown events are acknowledged without error.
func (p *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := p.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		if errors.Is(err, ErrPaymentsNotConfigured) {
			return utils.UpstreamError("Webhooks are not configured", err)
		}
		p.logger.Warn("rejected webhook", zap.Error(err))
		return utils.ValidationError("Invalid webhook signature")
	}

	var status dbm.PaymentStatus
	switch event.Type {
	case EventCheckoutCompleted:
		status = dbm.PaymentStatusCompleted
	case EventCheckoutExpired:
		status = dbm.PaymentStatusExpired
	default:
		p.logger.Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}

	if event.Session == nil || event.Session.ID == "" {
		p.logger.Warn("webhook event without checkout session", zap.String("event_id", event.ID))
		return nil
	}

	updated, err := p.registrations.UpdateStatusBySession(ctx, event.Session.ID, status)
	if err != nil {
		return utils.InternalError("Failed to update registration", err)
	}

	p.logger.Info("checkout webhook processed",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("checkout_session", event.Session.ID),
		zap.Int64("updated", updated))
	return nil
}
