package quotes

import (
	"context"
	"strings"
	"time"

	"github.com/railparts-supply/railparts-backend/internal/audit"
	"github.com/railparts-supply/railparts-backend/pkg/config"
	"github.com/railparts-supply/railparts-backend/pkg/db/models"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
	"github.com/railparts-supply/railparts-backend/pkg/mailer"
	"github.com/railparts-supply/railparts-backend/pkg/metrics"
)

// Dispatcher is the fatal-on-failure email collaborator.
type Dispatcher interface {
	Configured() bool
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// Service runs the quote submission pipeline.
type Service interface {
	Submit(ctx context.Context, req QuoteRequest, meta RequestMeta) (Result, error)
}

// ServiceParams wires pipeline dependencies.
type ServiceParams struct {
	Audit      audit.Repository
	Dispatcher Dispatcher
	Quote      config.QuoteConfig
	Metrics    *metrics.QuoteMetrics
	Logger     *logger.Logger
}

type service struct {
	audit      audit.Repository
	dispatcher Dispatcher
	operator   string
	bcc        string
	metrics    *metrics.QuoteMetrics
	logg       *logger.Logger
}

// NewService validates and wires the submission pipeline.
func NewService(params ServiceParams) (Service, error) {
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit repository required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "email dispatcher required")
	}
	return &service{
		audit:      params.Audit,
		dispatcher: params.Dispatcher,
		operator:   strings.TrimSpace(params.Quote.OperatorEmail),
		bcc:        strings.TrimSpace(params.Quote.BCCEmail),
		metrics:    params.Metrics,
		logg:       params.Logger,
	}, nil
}

// Submit validates the request, appends the audit row (non-fatal) and
// dispatches the operator email (fatal). The two effects are strictly
// sequential, persist-then-notify, each attempted exactly once.
func (s *service) Submit(ctx context.Context, req QuoteRequest, meta RequestMeta) (Result, error) {
	if s.logg != nil {
		ctx = s.logg.WithQuoteType(ctx, string(req.QuoteType))
	}

	if errs := Validate(req); len(errs) > 0 {
		s.metrics.IncSubmission(string(req.QuoteType), "validation_error")
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(errs)
	}

	details := BuildDetails(req)

	if err := s.audit.Append(ctx, s.buildRecord(req, meta, details)); err != nil {
		// Audit trail failures never block the notification; the operator
		// email is the one effect the submitter depends on.
		s.metrics.IncAuditFailure()
		if s.logg != nil {
			s.logg.Error(ctx, "audit append failed, continuing to notify", err)
		}
	}

	if s.operator == "" || !s.dispatcher.Configured() {
		s.metrics.IncSubmission(string(req.QuoteType), "not_configured")
		return Result{}, pkgerrors.New(pkgerrors.CodeNotConfigured, "email service not configured")
	}

	html, err := renderEmail(req, meta)
	if err != nil {
		s.metrics.IncSubmission(string(req.QuoteType), "render_error")
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering notification email")
	}

	start := time.Now()
	messageID, err := s.dispatcher.Send(ctx, mailer.Message{
		To:       s.operator,
		FromName: "Quote Requests",
		Subject:  emailSubject(req),
		HTML:     html,
		ReplyTo:  strings.TrimSpace(req.Email),
		BCC:      s.bcc,
	})
	if err != nil {
		s.metrics.ObserveDispatch("failure", time.Since(start))
		s.metrics.IncSubmission(string(req.QuoteType), "dispatch_error")
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDispatch, err, "failed to send your request, please try again")
	}
	s.metrics.ObserveDispatch("success", time.Since(start))
	s.metrics.IncSubmission(string(req.QuoteType), "success")

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "message_id", messageID), "quote request dispatched")
	}
	return Result{MessageID: messageID}, nil
}

func (s *service) buildRecord(req QuoteRequest, meta RequestMeta, details string) *models.QuoteAuditRecord {
	return &models.QuoteAuditRecord{
		SubmittedAt:    meta.SubmittedAt,
		FullName:       strings.TrimSpace(req.FullName),
		Company:        strings.TrimSpace(req.Company),
		Email:          strings.TrimSpace(req.Email),
		Phone:          fullPhone(req),
		Country:        strings.TrimSpace(req.Country),
		QuoteType:      strings.ToUpper(string(req.QuoteType)),
		Details:        details,
		AttachmentURLs: strings.Join(req.AttachmentURLs, ", "),
		ClientIP:       meta.ClientIP,
		UserAgent:      meta.UserAgent,
	}
}
