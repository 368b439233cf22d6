package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Riwantoro/Toro-Chat/internal/mocks"
)

var _ Publisher = (*mocks.PublisherMock)(nil)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit_log.chat", "torochat", "test")

	userID := "alice"
	publisher.On("Publish", mock.Anything, "audit_log.chat", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(AuditEnvelope)
		return ok &&
			envelope.SchemaVersion == 1 &&
			envelope.EventType == "audit_log" &&
			envelope.Service == "torochat" &&
			envelope.Environment == "test" &&
			envelope.RequestID == "req-1" &&
			envelope.UserID != nil && *envelope.UserID == "alice" &&
			envelope.OccurredAt != "" &&
			envelope.Payload.Level == "INFO" &&
			envelope.Payload.Text == "user approved"
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "INFO", "user approved", "req-1", &userID)
	publisher.AssertExpectations(t)
}

func TestEmitSwallowsPublishErrors(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit_log.chat", "torochat", "test")

	publisher.On("Publish", mock.Anything, "audit_log.chat", mock.Anything).
		Return(errors.New("broker down")).Once()

	emitter.Emit(context.Background(), "ERROR", "approve failed", "req-2", nil)
	publisher.AssertExpectations(t)
}

func TestEmitNilSafe(t *testing.T) {
	var emitter *AuditEmitter
	emitter.Emit(context.Background(), "INFO", "ignored", "req-1", nil)

	NewAuditEmitter(nil, "audit_log.chat", "torochat", "test").
		Emit(context.Background(), "INFO", "ignored", "req-1", nil)
}
