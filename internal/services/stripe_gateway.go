package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type stripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway returns a gateway that fails with ErrPaymentsNotConfigured
// when no secret key is set.
func NewStripeGateway(cfg StripeConfig) PaymentGateway {
	g := &stripeGateway{webhookSecret: cfg.WebhookSecret}
	if cfg.SecretKey != "" {
		g.api = &client.API{}
		g.api.Init(cfg.SecretKey, nil)
	}
	return g
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error) {
	if g.api == nil {
		return nil, ErrPaymentsNotConfigured
	}

	lineItem := &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(input.LineItem.Quantity),
	}
	if input.LineItem.PriceID != "" {
		lineItem.Price = stripe.String(input.LineItem.PriceID)
	} else {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(input.LineItem.Name),
		}
		if input.LineItem.Description != "" {
			product.Description = stripe.String(input.LineItem.Description)
		}
		lineItem.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:    stripe.String(input.LineItem.Currency),
			ProductData: product,
			UnitAmount:  stripe.Int64(input.LineItem.UnitAmount),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(input.CustomerEmail),
		SuccessURL:         stripe.String(input.SuccessURL),
		CancelURL:          stripe.String(input.CancelURL),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{lineItem},
	}
	params.Context = ctx
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(session), nil
}

func (g *stripeGateway) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	if g.api == nil {
		return nil, ErrPaymentsNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrCheckoutSessionNotFound, id)
		}
		return nil, err
	}
	return fromStripeSession(session), nil
}

func (g *stripeGateway) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, ErrPaymentsNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data != nil && (out.Type == EventCheckoutCompleted || out.Type == EventCheckoutExpired) {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
		}
		out.Session = fromStripeSession(&session)
	}
	return out, nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	email := s.CustomerEmail
	if email == "" && s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}
	return &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: email,
		PaymentStatus: string(s.PaymentStatus),
		Status:        string(s.Status),
		Metadata:      s.Metadata,
	}
}
