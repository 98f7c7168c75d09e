package kafka_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"hrflow/internal/messaging/kafka"
)

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	event := kafka.OutboxEvent{
		ID:        "b7f9a1f2-0000-0000-0000-000000000001",
		RequestID: "REQ-1",
		EventType: "Request Submitted",
		Topic:     "hr.request.notifications.v1",
		Payload:   []byte(`{"request_id":"REQ-1"}`),
		Status:    kafka.OutboxStatusPending,
	}

	mock.ExpectExec("INSERT INTO notification_outbox").
		WithArgs(event.ID, event.RequestID, event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO notification_outbox").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	event := kafka.OutboxEvent{
		ID:      "b7f9a1f2-0000-0000-0000-000000000002",
		Topic:   "hr.request.notifications.v1",
		Payload: []byte(`{}`),
		Status:  kafka.OutboxStatusPending,
	}
	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	retryAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "request_id", "event_type", "topic", "payload", "status", "retry_count", "coalesce",
	}).
		AddRow("evt-1", "REQ-1", "Request Submitted", "hr.request.notifications.v1", []byte(`{}`), "pending", 0, retryAt).
		AddRow("evt-2", "REQ-2", "Request Approved", "hr.request.notifications.v1", []byte(`{}`), "failed", 2, retryAt)

	mock.ExpectQuery("SELECT(.|\n)+FROM notification_outbox").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)
	assert.NoError(t, err)
	if assert.Len(t, events, 2) {
		assert.Equal(t, "evt-1", events[0].ID)
		assert.Equal(t, "Request Submitted", events[0].EventType)
		assert.Equal(t, 2, events[1].RetryCount)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec("UPDATE notification_outbox").
		WithArgs("evt-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec("UPDATE notification_outbox").
		WithArgs("evt-1", kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "evt-1", "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec("INSERT INTO notification_outbox").
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), kafka.OutboxEvent{ID: "evt-1"})
	assert.ErrorContains(t, err, "connection reset")
}

func TestIsDuplicateEvent(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "notification_outbox_pkey"}
	assert.True(t, kafka.IsDuplicateEvent(pgErr))
	assert.True(t, kafka.IsDuplicateEvent(fmt.Errorf("insert: %w", pgErr)))
	assert.True(t, kafka.IsDuplicateEvent(errors.New(`ERROR: duplicate key value violates unique constraint "notification_outbox_pkey"`)))

	assert.False(t, kafka.IsDuplicateEvent(&pgconn.PgError{Code: "23505", ConstraintName: "other_pkey"}))
	assert.False(t, kafka.IsDuplicateEvent(errors.New("connection reset")))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{
		ID:      "evt-1",
		Topic:   "hr.request.notifications.v1",
		Payload: []byte(`{}`),
		Status:  kafka.OutboxStatusPending,
	}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	tests := []struct {
		name   string
		mutate func(e *kafka.OutboxEvent)
		want   string
	}{
		{"missing id", func(e *kafka.OutboxEvent) { e.ID = "" }, "outbox id is required"},
		{"missing topic", func(e *kafka.OutboxEvent) { e.Topic = "" }, "outbox topic is required"},
		{"missing payload", func(e *kafka.OutboxEvent) { e.Payload = nil }, "outbox payload is required"},
		{"bad status", func(e *kafka.OutboxEvent) { e.Status = "queued" }, "invalid outbox status"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event := valid
			tc.mutate(&event)
			assert.ErrorContains(t, kafka.ValidateOutboxEvent(event), tc.want)
		})
	}
}
