package notification_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/notification"
	notificationerrors "go-hrms/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, n *notification.Notification) error
	findForEmployeeFn func(ctx context.Context, employeeID string, since *time.Time) ([]notification.Notification, error)
	employeeExistsFn  func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	return f.createFn(ctx, n)
}
func (f *fakeRepo) FindForEmployee(ctx context.Context, employeeID string, since *time.Time) ([]notification.Notification, error) {
	return f.findForEmployeeFn(ctx, employeeID, since)
}
func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employeeExistsFn(ctx, employeeID)
}

func TestNotificationService_Create(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("broadcast defaults to info", func(t *testing.T) {
		repo := &fakeRepo{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				assert.Nil(t, n.EmployeeID)
				assert.Equal(t, notification.TypeInfo, n.Type)
				return nil
			},
		}
		svc := notification.NewService(repo)

		resp, err := svc.Create(context.Background(), actorID, notification.CreateNotificationRequest{
			Title:   "Maintenance window",
			Message: "Systems go down at 22:00 UTC.",
		})
		require.NoError(t, err)
		assert.Nil(t, resp.EmployeeID)
		assert.Equal(t, notification.TypeInfo, resp.Type)
	})

	t.Run("targeted requires existing employee", func(t *testing.T) {
		employeeID := uuid.New().String()
		repo := &fakeRepo{
			employeeExistsFn: func(ctx context.Context, id string) (bool, error) {
				assert.Equal(t, employeeID, id)
				return false, nil
			},
		}
		svc := notification.NewService(repo)

		_, err := svc.Create(context.Background(), actorID, notification.CreateNotificationRequest{
			EmployeeID: employeeID,
			Title:      "Contract renewal",
			Message:    "Please sign your renewal.",
			Type:       notification.TypeWarning,
		})
		assert.ErrorIs(t, err, notificationerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid actor", func(t *testing.T) {
		svc := notification.NewService(&fakeRepo{})

		_, err := svc.Create(context.Background(), "not-a-uuid", notification.CreateNotificationRequest{
			Title:   "x",
			Message: "y",
		})
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidActorID)
	})
}

func TestNotificationService_List(t *testing.T) {
	employeeID := uuid.New()

	t.Run("cursor forwarded to repository", func(t *testing.T) {
		cursor := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, id string, since *time.Time) ([]notification.Notification, error) {
				require.NotNil(t, since)
				assert.True(t, since.Equal(cursor))
				return []notification.Notification{
					{ID: uuid.New(), Title: "Welcome aboard", Type: notification.TypeInfo, CreatedAt: cursor.Add(time.Hour)},
				}, nil
			},
		}
		svc := notification.NewService(repo)

		resp, err := svc.List(context.Background(), employeeID.String(), notification.NotificationListQuery{
			Since: cursor.Format(time.RFC3339),
		})
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Welcome aboard", resp[0].Title)
	})

	t.Run("no cursor lists everything", func(t *testing.T) {
		repo := &fakeRepo{
			findForEmployeeFn: func(ctx context.Context, id string, since *time.Time) ([]notification.Notification, error) {
				assert.Nil(t, since)
				return nil, nil
			},
		}
		svc := notification.NewService(repo)

		resp, err := svc.List(context.Background(), employeeID.String(), notification.NotificationListQuery{})
		require.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("bad cursor", func(t *testing.T) {
		svc := notification.NewService(&fakeRepo{})

		_, err := svc.List(context.Background(), employeeID.String(), notification.NotificationListQuery{
			Since: "yesterday",
		})
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidSinceCursor)
	})
}
