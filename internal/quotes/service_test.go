package quotes

import (
	"context"
	"errors"
	"testing"

	"github.com/railparts-supply/railparts-backend/pkg/config"
	"github.com/railparts-supply/railparts-backend/pkg/db/models"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/mailer"
)

type fakeAudit struct {
	appendFn func(ctx context.Context, record *models.QuoteAuditRecord) error
	records  []*models.QuoteAuditRecord
}

func (f *fakeAudit) Append(ctx context.Context, record *models.QuoteAuditRecord) error {
	if f.appendFn != nil {
		return f.appendFn(ctx, record)
	}
	f.records = append(f.records, record)
	return nil
}

type fakeDispatcher struct {
	configured bool
	sendFn     func(ctx context.Context, msg mailer.Message) (string, error)
	sent       []mailer.Message
}

func (f *fakeDispatcher) Configured() bool {
	return f.configured
}

func (f *fakeDispatcher) Send(ctx context.Context, msg mailer.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if f.sendFn != nil {
		return f.sendFn(ctx, msg)
	}
	return "msg-123", nil
}

func newTestService(t *testing.T, auditRepo *fakeAudit, dispatcher *fakeDispatcher) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Audit:      auditRepo,
		Dispatcher: dispatcher,
		Quote:      config.QuoteConfig{OperatorEmail: "quotes@railparts.example", BCCEmail: "archive@railparts.example"},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testMeta() RequestMeta {
	return RequestMeta{ClientIP: "203.0.113.9", UserAgent: "test-agent", SubmittedAt: "2025-01-15T10:00:00Z"}
}

func TestSubmitValidServicesRequest(t *testing.T) {
	auditRepo := &fakeAudit{}
	dispatcher := &fakeDispatcher{configured: true}
	svc := newTestService(t, auditRepo, dispatcher)

	result, err := svc.Submit(context.Background(), validServicesRequest(), testMeta())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.MessageID != "msg-123" {
		t.Fatalf("expected message id from dispatcher, got %q", result.MessageID)
	}

	if len(auditRepo.records) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(auditRepo.records))
	}
	record := auditRepo.records[0]
	if record.QuoteType != "SERVICES" {
		t.Fatalf("quote type must be upper-cased, got %q", record.QuoteType)
	}
	if record.ClientIP != "203.0.113.9" || record.UserAgent != "test-agent" {
		t.Fatalf("request meta not captured: %+v", record)
	}

	if len(dispatcher.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(dispatcher.sent))
	}
	msg := dispatcher.sent[0]
	if msg.To != "quotes@railparts.example" || msg.BCC != "archive@railparts.example" {
		t.Fatalf("unexpected recipients: %+v", msg)
	}
	if msg.ReplyTo != "anna@example.com" {
		t.Fatalf("reply-to must be the submitter, got %q", msg.ReplyTo)
	}
}

func TestSubmitRejectsInvalidRequestBeforeAnyEffect(t *testing.T) {
	auditRepo := &fakeAudit{}
	dispatcher := &fakeDispatcher{configured: true}
	svc := newTestService(t, auditRepo, dispatcher)

	req := validServicesRequest()
	req.Services = ServiceSelection{}

	_, err := svc.Submit(context.Background(), req, testMeta())
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field-keyed details, got %T", typed.Details())
	}
	if _, ok := details["services"]; !ok {
		t.Fatalf("expected services key in details, got %v", details)
	}
	if len(auditRepo.records) != 0 || len(dispatcher.sent) != 0 {
		t.Fatal("invalid request must trigger no side effects")
	}
}

func TestSubmitAuditFailureDoesNotBlockNotify(t *testing.T) {
	auditRepo := &fakeAudit{
		appendFn: func(ctx context.Context, record *models.QuoteAuditRecord) error {
			return errors.New("sheet unavailable")
		},
	}
	dispatcher := &fakeDispatcher{configured: true}
	svc := newTestService(t, auditRepo, dispatcher)

	result, err := svc.Submit(context.Background(), validProductsRequest(), testMeta())
	if err != nil {
		t.Fatalf("audit failure must be swallowed: %v", err)
	}
	if result.MessageID != "msg-123" {
		t.Fatalf("expected dispatch to proceed, got %q", result.MessageID)
	}
	if len(dispatcher.sent) != 1 {
		t.Fatal("notify step must still run after audit failure")
	}
}

func TestSubmitDispatchFailureIsFatalAfterAuditSuccess(t *testing.T) {
	auditRepo := &fakeAudit{}
	dispatcher := &fakeDispatcher{
		configured: true,
		sendFn: func(ctx context.Context, msg mailer.Message) (string, error) {
			return "", errors.New("provider 503")
		},
	}
	svc := newTestService(t, auditRepo, dispatcher)

	_, err := svc.Submit(context.Background(), validProductsRequest(), testMeta())
	if err == nil {
		t.Fatal("expected dispatch error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeDispatch {
		t.Fatalf("expected dispatch code, got %v", err)
	}
	// the audit row stays; there is no compensating delete
	if len(auditRepo.records) != 1 {
		t.Fatalf("expected audit row to remain, got %d", len(auditRepo.records))
	}
}

func TestSubmitUnconfiguredDispatcher(t *testing.T) {
	svc := newTestService(t, &fakeAudit{}, &fakeDispatcher{configured: false})

	_, err := svc.Submit(context.Background(), validProductsRequest(), testMeta())
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotConfigured {
		t.Fatalf("expected not-configured code, got %v", err)
	}
}

func TestSubmitMissingOperatorAddress(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Audit:      &fakeAudit{},
		Dispatcher: &fakeDispatcher{configured: true},
		Quote:      config.QuoteConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Submit(context.Background(), validProductsRequest(), testMeta())
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotConfigured {
		t.Fatalf("expected not-configured code, got %v", err)
	}
}

func TestSubmitAuditRowColumns(t *testing.T) {
	auditRepo := &fakeAudit{}
	dispatcher := &fakeDispatcher{configured: true}
	svc := newTestService(t, auditRepo, dispatcher)

	req := validProductsRequest()
	req.Company = "Railtech Kft"
	req.Country = "Hungary"
	req.AttachmentURLs = []string{"https://a.example/1.pdf", "https://a.example/2.pdf"}

	if _, err := svc.Submit(context.Background(), req, testMeta()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	record := auditRepo.records[0]
	if record.Phone != "+36 5551234" {
		t.Fatalf("expected phone with country code, got %q", record.Phone)
	}
	if record.AttachmentURLs != "https://a.example/1.pdf, https://a.example/2.pdf" {
		t.Fatalf("unexpected attachment urls: %q", record.AttachmentURLs)
	}
	if record.Details == "" || record.SubmittedAt != "2025-01-15T10:00:00Z" {
		t.Fatalf("audit columns incomplete: %+v", record)
	}
}
