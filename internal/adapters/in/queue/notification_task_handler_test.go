package queue_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	inqueue "logistics/internal/adapters/in/queue"
	outqueue "logistics/internal/adapters/out/queue"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInbox struct {
	mock.Mock
}

func (m *MockInbox) Deliver(ctx context.Context, n notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func newHandler(inbox *MockInbox) *inqueue.NotificationTaskHandler {
	return inqueue.NewNotificationTaskHandler(inbox, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNotificationTaskHandler_StoresNotification(t *testing.T) {
	ctx := t.Context()
	n, err := notification.New(kernel.NewUUID(), notification.DriverRecipient(4), notification.KindInfo,
		"New Parcel Assigned", "Pick up at MG Road", nil, time.Now().UTC())
	require.NoError(t, err)
	task, err := outqueue.NewNotificationTask(n)
	require.NoError(t, err)

	inbox := new(MockInbox)
	inbox.On("Deliver", ctx, mock.MatchedBy(func(got notification.Notification) bool {
		return got.ID().IsEqual(n.ID()) && got.Recipient() == n.Recipient()
	})).Return(nil).Once()

	require.NoError(t, newHandler(inbox).ProcessTask(ctx, task))
	inbox.AssertExpectations(t)
}

func TestNotificationTaskHandler_RetriesStoreFailures(t *testing.T) {
	ctx := t.Context()
	n, err := notification.New(kernel.NewUUID(), notification.DriverRecipient(4), notification.KindInfo,
		"New Parcel Assigned", "", nil, time.Now().UTC())
	require.NoError(t, err)
	task, err := outqueue.NewNotificationTask(n)
	require.NoError(t, err)

	boom := errors.New("database is down")
	inbox := new(MockInbox)
	inbox.On("Deliver", ctx, mock.Anything).Return(boom).Once()

	err = newHandler(inbox).ProcessTask(ctx, task)

	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestNotificationTaskHandler_SkipsMalformedTasks(t *testing.T) {
	inbox := new(MockInbox)

	err := newHandler(inbox).ProcessTask(t.Context(), asynq.NewTask(outqueue.TaskNotificationDeliver, []byte("not json")))

	require.ErrorIs(t, err, asynq.SkipRetry)
	inbox.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}
