package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httpclient"
)

// EmailJSConfig identifies the EmailJS account and template used for orders.
type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	UserID     string
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

// templateParams carries the contact in "email" because the order template
// has no phone field.
type templateParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// EmailJS sends orders through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	client httpclient.Requester
	logger *slog.Logger
}

// NewEmailJS creates the driver. client should not retry POSTs.
func NewEmailJS(cfg EmailJSConfig, client httpclient.Requester, logger *slog.Logger) *EmailJS {
	return &EmailJS{cfg: cfg, client: client, logger: logger}
}

// Name returns "emailjs".
func (e *EmailJS) Name() string { return "emailjs" }

// Send posts msg once. Transport errors and non-2xx responses are reported
// as relay failures.
func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	if msg.Body == "" {
		return ErrEmptyMessage
	}

	payload, err := json.Marshal(emailJSRequest{
		ServiceID:  e.cfg.ServiceID,
		TemplateID: e.cfg.TemplateID,
		UserID:     e.cfg.UserID,
		TemplateParams: templateParams{
			Name:    msg.Name,
			Email:   msg.Contact,
			Message: msg.Body,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal emailjs request: %w", err)
	}

	resp, err := e.client.Post(ctx, e.cfg.Endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		e.logger.ErrorContext(ctx, "emailjs request failed",
			slog.String("reference", msg.Reference),
			slog.String("error", err.Error()),
		)
		return apperrors.RelayFailed(e.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		e.logger.ErrorContext(ctx, "emailjs rejected the order",
			slog.String("reference", msg.Reference),
			slog.Int("status", resp.StatusCode),
			slog.String("body", strings.TrimSpace(string(body))),
		)
		return apperrors.RelayFailed(e.Name(),
			fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	e.logger.InfoContext(ctx, "order sent",
		slog.String("relay", e.Name()),
		slog.String("reference", msg.Reference),
	)
	return nil
}
