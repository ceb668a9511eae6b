package makeup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/domain/notification"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type MakeupServiceImpl struct {
	tx database.Transactor
	makeup.Repository
	attendanceService attendance.Service
	employeeRepo      employee.Repository
	notifier          notification.Service
	logger            *slog.Logger
}

func NewMakeupService(
	tx database.Transactor,
	makeupRepo makeup.Repository,
	attendanceService attendance.Service,
	employeeRepo employee.Repository,
	notifier notification.Service,
	logger *slog.Logger,
) makeup.Service {
	return &MakeupServiceImpl{
		tx:                tx,
		Repository:        makeupRepo,
		attendanceService: attendanceService,
		employeeRepo:      employeeRepo,
		notifier:          notifier,
		logger:            logger,
	}
}

// Submit implements makeup.Service.
func (m *MakeupServiceImpl) Submit(ctx context.Context, req makeup.SubmitRequest) (makeup.Request, error) {
	if err := req.Validate(); err != nil {
		return makeup.Request{}, err
	}

	created, err := m.Repository.Create(ctx, makeup.Request{
		EmployeeNo:  req.EmployeeNo,
		RequestedBy: req.RequestedBy,
		Date:        req.Date,
		Shift:       req.Shift,
		Action:      req.Action,
		Reason:      req.Reason,
		Status:      makeup.StatusPending,
	})
	if err != nil {
		return makeup.Request{}, fmt.Errorf("failed to create makeup request: %w", err)
	}

	m.notifyApprovers(ctx, created)

	return created, nil
}

// notifyApprovers fans the new request out to every admin. Delivery is
// best effort; the request is already persisted.
func (m *MakeupServiceImpl) notifyApprovers(ctx context.Context, req makeup.Request) {
	approvers, err := m.employeeRepo.ListApprovers(ctx)
	if err != nil {
		m.logger.Error("failed to list approvers for makeup notification",
			slog.String("request_id", req.ID), slog.Any("error", err))
		return
	}

	body := fmt.Sprintf("%s requests a makeup %s for the %s shift on %s.\nReason: %s\nRequest ID: %s",
		req.EmployeeNo, actionLabel(req.Action), req.Shift, req.Date, req.Reason, req.ID)

	for _, approver := range approvers {
		if approver.ChatUserID == "" {
			continue
		}
		m.notifier.Notify(ctx, notification.CreateNotificationRequest{
			RecipientChatID: approver.ChatUserID,
			Title:           "Makeup request pending",
			Body:            body,
		})
	}
}

// Decide implements makeup.Service. The status transition and, for
// approvals, the ledger stamp run in one transaction. The transition is
// a check-and-set on pending, so racing approvers settle to exactly one
// winner; the losers get ErrAlreadyDecided.
func (m *MakeupServiceImpl) Decide(ctx context.Context, req makeup.DecideRequest) (makeup.Request, error) {
	if err := req.Validate(); err != nil {
		return makeup.Request{}, err
	}

	decidedAt := time.Now().UTC()

	err := m.tx.RunInTx(ctx, func(ctx context.Context) error {
		request, err := m.Repository.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return makeup.ErrAlreadyDecided
		}
		if request.RequestedBy == req.ReviewedBy {
			return makeup.ErrSelfApproval
		}

		target := makeup.StatusApproved
		if req.Decision == makeup.DecisionReject {
			target = makeup.StatusRejected
		}

		if err := m.Repository.TransitionStatus(ctx, req.RequestID, makeup.StatusPending, target, req.ReviewedBy, decidedAt); err != nil {
			return err
		}

		if req.Decision == makeup.DecisionReject {
			return nil
		}

		// Approval carries the stamp it represents. If the slot already
		// holds a stamp the whole transaction rolls back and the request
		// stays pending for manual reconciliation.
		_, err = m.attendanceService.Stamp(ctx, attendance.StampRequest{
			EmployeeNo: request.EmployeeNo,
			Date:       request.Date,
			Shift:      request.Shift,
			Action:     request.Action,
			Source:     attendance.SourceMakeup,
			At:         &decidedAt,
		})
		return err
	})
	if err != nil {
		return makeup.Request{}, err
	}

	decided, err := m.Repository.GetByID(ctx, req.RequestID)
	if err != nil {
		return makeup.Request{}, err
	}

	m.notifyRequester(ctx, decided)

	return decided, nil
}

func (m *MakeupServiceImpl) notifyRequester(ctx context.Context, req makeup.Request) {
	requester, err := m.employeeRepo.GetByEmployeeNo(ctx, req.RequestedBy)
	if err != nil {
		m.logger.Error("failed to resolve requester for decision notification",
			slog.String("request_id", req.ID), slog.Any("error", err))
		return
	}
	if requester.ChatUserID == "" {
		return
	}

	verdict := "approved"
	if req.Status == makeup.StatusRejected {
		verdict = "rejected"
	}

	m.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientChatID: requester.ChatUserID,
		Title:           "Makeup request " + verdict,
		Body: fmt.Sprintf("Your makeup %s for the %s shift on %s was %s.",
			actionLabel(req.Action), req.Shift, req.Date, verdict),
	})
}

// ListPending implements makeup.Service.
func (m *MakeupServiceImpl) ListPending(ctx context.Context) ([]makeup.Request, error) {
	return m.Repository.ListPending(ctx)
}

func actionLabel(action attendance.Action) string {
	if action == attendance.ActionCheckOut {
		return "check-out"
	}
	return "check-in"
}
