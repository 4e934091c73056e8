package notification

import (
	"context"
	"time"

	notificationerrors "go-hrms/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateNotificationRequest) (NotificationResponse, error)
	List(ctx context.Context, employeeID string, q NotificationListQuery) ([]NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateNotificationRequest) (NotificationResponse, error) {
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidActorID
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		parsed, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return NotificationResponse{}, notificationerrors.ErrInvalidEmployeeID
		}
		exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
		if err != nil {
			return NotificationResponse{}, err
		}
		if !exists {
			return NotificationResponse{}, notificationerrors.ErrEmployeeNotFound
		}
		employeeID = &parsed
	}

	notifType := req.Type
	if notifType == "" {
		notifType = TypeInfo
	}

	n := &Notification{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Title:      req.Title,
		Message:    req.Message,
		Type:       notifType,
		CreatedBy:  createdByUUID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed", zap.Error(err))
		return NotificationResponse{}, err
	}

	s.logger.Info("create notification success",
		zap.String("notification_id", n.ID.String()),
		zap.Bool("broadcast", employeeID == nil),
	)
	return mapToResponse(*n), nil
}

// List reads notifications newer than the caller-supplied cursor. The
// cursor lives with the caller; nothing is tracked server side.
func (s *service) List(ctx context.Context, employeeID string, q NotificationListQuery) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, notificationerrors.ErrInvalidEmployeeID
	}

	var since *time.Time
	if q.Since != "" {
		parsed, err := time.Parse(time.RFC3339, q.Since)
		if err != nil {
			return nil, notificationerrors.ErrInvalidSinceCursor
		}
		since = &parsed
	}

	notifications, err := s.repo.FindForEmployee(ctx, employeeID, since)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.EmployeeID != nil {
		v := n.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp
}
