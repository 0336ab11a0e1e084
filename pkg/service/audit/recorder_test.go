package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/amirasaad/commission/pkg/dto"
	"github.com/amirasaad/commission/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events    []dto.EventRead
	appendErr error
}

func (r *fakeEventRepo) Append(_ context.Context, create dto.EventCreate) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, dto.EventRead{
		ID:            create.ID,
		TransactionID: create.TransactionID,
		PayoutID:      create.PayoutID,
		EventType:     create.EventType,
		ActorID:       create.ActorID,
		Metadata:      create.Metadata,
		CreatedAt:     time.Unix(int64(len(r.events)+1), 0),
	})
	return nil
}

func (r *fakeEventRepo) ListByTransaction(
	_ context.Context,
	transactionID uuid.UUID,
) ([]*dto.EventRead, error) {
	var out []*dto.EventRead
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].TransactionID == transactionID {
			ev := r.events[i]
			out = append(out, &ev)
		}
	}
	return out, nil
}

type fakeUoW struct {
	repo *fakeEventRepo
}

func (u *fakeUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *fakeUoW) GetRepository(reflect.Type) (any, error) {
	return nil, errors.New("not registered")
}

func (u *fakeUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return nil, errors.New("not registered")
}

func (u *fakeUoW) PayoutRepository() (repository.PayoutRepository, error) {
	return nil, errors.New("not registered")
}

func (u *fakeUoW) EventRepository() (repository.EventRepository, error) {
	return u.repo, nil
}

func TestRecord_AssignsIDAndAppends(t *testing.T) {
	uow := &fakeUoW{repo: &fakeEventRepo{}}
	recorder := New(uow, slog.Default())
	txID := uuid.New()

	id, err := recorder.Record(context.Background(), uow, dto.EventCreate{
		TransactionID: txID,
		EventType:     "manual_approval",
		ActorID:       "user:broker-ops",
		Metadata:      json.RawMessage(`{"note":"ok"}`),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, uow.repo.events, 1)
	assert.Equal(t, id, uow.repo.events[0].ID)
	assert.Equal(t, "user:broker-ops", uow.repo.events[0].ActorID)
}

func TestRecord_KeepsCallerAssignedID(t *testing.T) {
	uow := &fakeUoW{repo: &fakeEventRepo{}}
	recorder := New(uow, slog.Default())
	eventID := uuid.New()

	id, err := recorder.Record(context.Background(), uow, dto.EventCreate{
		ID:            eventID,
		TransactionID: uuid.New(),
		EventType:     "payout_created",
		ActorID:       "user:broker-ops",
	})
	require.NoError(t, err)
	assert.Equal(t, eventID, id)
}

func TestRecord_AppendFailure(t *testing.T) {
	uow := &fakeUoW{repo: &fakeEventRepo{appendErr: errors.New("connection reset")}}
	recorder := New(uow, slog.Default())

	_, err := recorder.Record(context.Background(), uow, dto.EventCreate{
		TransactionID: uuid.New(),
		EventType:     "payout_paid",
		ActorID:       "user:finance",
	})
	require.Error(t, err)
	assert.Empty(t, uow.repo.events)
}

func TestListEvents_NewestFirst(t *testing.T) {
	uow := &fakeUoW{repo: &fakeEventRepo{}}
	recorder := New(uow, slog.Default())
	txID := uuid.New()
	other := uuid.New()

	for _, eventType := range []string{"manual_approval", "payout_created", "payout_scheduled"} {
		_, err := recorder.Record(context.Background(), uow, dto.EventCreate{
			TransactionID: txID,
			EventType:     eventType,
			ActorID:       "user:broker-ops",
		})
		require.NoError(t, err)
	}
	_, err := recorder.Record(context.Background(), uow, dto.EventCreate{
		TransactionID: other,
		EventType:     "manual_approval",
		ActorID:       "user:broker-ops",
	})
	require.NoError(t, err)

	events, err := recorder.ListEvents(context.Background(), txID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "payout_scheduled", events[0].EventType)
	assert.Equal(t, "payout_created", events[1].EventType)
	assert.Equal(t, "manual_approval", events[2].EventType)
	for _, ev := range events {
		assert.Equal(t, txID, ev.TransactionID)
	}
}
