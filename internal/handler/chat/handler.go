package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/domain/payroll"
	"github.com/shiftwork/attendance-bot-go/internal/domain/report"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/clock"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/session"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/validator"
)

// Event is one inbound text message from a chat user.
type Event struct {
	UserID string
	Text   string
}

// Reply is the bot's answer. QuickReplies render as tappable shortcuts
// that send their text back as the next event.
type Reply struct {
	Text         string
	QuickReplies []string
}

type Handler struct {
	employees  employee.Repository
	attendance attendance.Service
	makeups    makeup.Service
	reports    report.Service
	payrolls   payroll.Service
	sessions   session.Store
	loc        *time.Location
	logger     *slog.Logger
}

func NewHandler(
	employees employee.Repository,
	attendanceService attendance.Service,
	makeupService makeup.Service,
	reportService report.Service,
	payrollService payroll.Service,
	sessions session.Store,
	loc *time.Location,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		employees:  employees,
		attendance: attendanceService,
		makeups:    makeupService,
		reports:    reportService,
		payrolls:   payrollService,
		sessions:   sessions,
		loc:        loc,
		logger:     logger,
	}
}

var punchCommands = map[string]struct {
	shift  attendance.Shift
	action attendance.Action
}{
	"morning in":  {attendance.ShiftMorning, attendance.ActionCheckIn},
	"morning out": {attendance.ShiftMorning, attendance.ActionCheckOut},
	"night in":    {attendance.ShiftNight, attendance.ActionCheckIn},
	"night out":   {attendance.ShiftNight, attendance.ActionCheckOut},
}

const helpText = "Type \"punch\" for the punch menu, \"makeup\" to request a missed stamp, \"summary\" for this month, or \"payroll\" for a pay estimate."

// Handle routes one event to a reply. Errors from downstream services
// are translated into user-facing text; only unexpected failures are
// reported as generic errors and logged by the caller.
func (h *Handler) Handle(ctx context.Context, event Event) Reply {
	text := strings.TrimSpace(event.Text)

	emp, err := h.employees.GetByChatUserID(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrNotRegistered) {
			return Reply{Text: "You are not registered as an employee. Please contact your administrator."}
		}
		return h.failure(ctx, event, err)
	}

	if strings.EqualFold(text, "cancel") {
		if err := h.sessions.Delete(ctx, event.UserID); err != nil {
			return h.failure(ctx, event, err)
		}
		return Reply{Text: "Okay, cancelled."}
	}

	// An active makeup dialog consumes the event before any command.
	var state State
	inDialog, err := h.sessions.Get(ctx, event.UserID, &state)
	if err != nil {
		return h.failure(ctx, event, err)
	}
	if inDialog && state.valid() {
		return h.continueMakeupDialog(ctx, event, emp, state, text)
	}
	if inDialog {
		// Corrupt or stale session, start over.
		if err := h.sessions.Delete(ctx, event.UserID); err != nil {
			return h.failure(ctx, event, err)
		}
	}

	switch {
	case strings.EqualFold(text, "punch"), strings.EqualFold(text, "start"):
		return Reply{
			Text:         fmt.Sprintf("Punch menu (%s)", emp.EmployeeNo),
			QuickReplies: []string{"morning in", "morning out", "night in", "night out"},
		}

	case punchCommand(text) != nil:
		cmd := punchCommand(text)
		return h.punch(ctx, event, emp, cmd.shift, cmd.action)

	case strings.EqualFold(text, "makeup"):
		return h.startMakeupDialog(ctx, event)

	case strings.EqualFold(text, "requests"):
		if !emp.IsApprover() {
			return Reply{Text: helpText}
		}
		return h.listRequests(ctx, event)

	case strings.HasPrefix(strings.ToLower(text), "approve "):
		if !emp.IsApprover() {
			return Reply{Text: helpText}
		}
		return h.decide(ctx, event, emp, strings.TrimSpace(text[len("approve "):]), makeup.DecisionApprove)

	case strings.HasPrefix(strings.ToLower(text), "reject "):
		if !emp.IsApprover() {
			return Reply{Text: helpText}
		}
		return h.decide(ctx, event, emp, strings.TrimSpace(text[len("reject "):]), makeup.DecisionReject)

	case strings.EqualFold(text, "summary"):
		return h.summary(ctx, event, emp)

	case strings.EqualFold(text, "payroll"):
		return h.payrollEstimate(ctx, event, emp)
	}

	return Reply{Text: helpText}
}

func punchCommand(text string) *struct {
	shift  attendance.Shift
	action attendance.Action
} {
	if cmd, ok := punchCommands[strings.ToLower(text)]; ok {
		return &cmd
	}
	return nil
}

func (h *Handler) punch(ctx context.Context, event Event, emp employee.Employee, shift attendance.Shift, action attendance.Action) Reply {
	_, err := h.attendance.Stamp(ctx, attendance.StampRequest{
		EmployeeNo: emp.EmployeeNo,
		Date:       clock.DateOf(time.Now(), h.loc),
		Shift:      shift,
		Action:     action,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyStamped) {
			return Reply{Text: fmt.Sprintf("Your %s %s is already recorded. No action needed.", shift, actionWord(action))}
		}
		return h.failure(ctx, event, err)
	}
	return Reply{Text: fmt.Sprintf("Recorded: %s shift %s. ✅", shift, actionWord(action))}
}

func (h *Handler) startMakeupDialog(ctx context.Context, event Event) Reply {
	if err := h.sessions.Set(ctx, event.UserID, newMakeupState()); err != nil {
		return h.failure(ctx, event, err)
	}
	return Reply{
		Text:         "Which shift is the makeup for?",
		QuickReplies: []string{"morning", "night"},
	}
}

func (h *Handler) continueMakeupDialog(ctx context.Context, event Event, emp employee.Employee, state State, text string) Reply {
	switch state.Stage {
	case StageAwaitShift:
		var shift attendance.Shift
		switch strings.ToLower(text) {
		case "morning":
			shift = attendance.ShiftMorning
		case "night":
			shift = attendance.ShiftNight
		default:
			return Reply{Text: "Please pick a shift.", QuickReplies: []string{"morning", "night"}}
		}
		next, err := state.withShift(shift)
		if err != nil {
			return h.failure(ctx, event, err)
		}
		if err := h.sessions.Set(ctx, event.UserID, next); err != nil {
			return h.failure(ctx, event, err)
		}
		return Reply{Text: "Check-in or check-out?", QuickReplies: []string{"in", "out"}}

	case StageAwaitAction:
		var action attendance.Action
		switch strings.ToLower(text) {
		case "in":
			action = attendance.ActionCheckIn
		case "out":
			action = attendance.ActionCheckOut
		default:
			return Reply{Text: "Please pick check-in or check-out.", QuickReplies: []string{"in", "out"}}
		}
		next, err := state.withAction(action)
		if err != nil {
			return h.failure(ctx, event, err)
		}
		if err := h.sessions.Set(ctx, event.UserID, next); err != nil {
			return h.failure(ctx, event, err)
		}
		return Reply{Text: "What is the reason for the makeup?"}

	case StageAwaitReason:
		req, err := h.makeups.Submit(ctx, makeup.SubmitRequest{
			EmployeeNo:  emp.EmployeeNo,
			RequestedBy: emp.EmployeeNo,
			Date:        clock.DateOf(time.Now(), h.loc),
			Shift:       state.Shift,
			Action:      state.Action,
			Reason:      text,
		})
		if err != nil {
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) {
				return Reply{Text: "A reason is required. Please describe why the stamp was missed, or type \"cancel\"."}
			}
			return h.failure(ctx, event, err)
		}
		if err := h.sessions.Delete(ctx, event.UserID); err != nil {
			h.logger.Warn("failed to clear session after makeup submit",
				slog.String("user_id", event.UserID), slog.Any("error", err))
		}
		return Reply{Text: fmt.Sprintf("Makeup request %s submitted. You will be notified once it is reviewed. 📨", req.ID)}
	}

	return Reply{Text: helpText}
}

func (h *Handler) listRequests(ctx context.Context, event Event) Reply {
	pending, err := h.makeups.ListPending(ctx)
	if err != nil {
		return h.failure(ctx, event, err)
	}
	if len(pending) == 0 {
		return Reply{Text: "No pending makeup requests."}
	}

	var b strings.Builder
	b.WriteString("Pending makeup requests:\n")
	for _, req := range pending {
		fmt.Fprintf(&b, "%s: %s, %s shift %s on %s. Reason: %s\n",
			req.ID, req.EmployeeNo, req.Shift, actionWord(req.Action), req.Date, req.Reason)
	}
	b.WriteString("Reply \"approve <id>\" or \"reject <id>\".")
	return Reply{Text: b.String()}
}

func (h *Handler) decide(ctx context.Context, event Event, emp employee.Employee, requestID string, decision makeup.Decision) Reply {
	decided, err := h.makeups.Decide(ctx, makeup.DecideRequest{
		RequestID:  requestID,
		ReviewedBy: emp.EmployeeNo,
		Decision:   decision,
	})
	if err != nil {
		switch {
		case errors.Is(err, makeup.ErrRequestNotFound):
			return Reply{Text: fmt.Sprintf("No makeup request with ID %s.", requestID)}
		case errors.Is(err, makeup.ErrAlreadyDecided):
			return Reply{Text: "That request was already decided by someone else."}
		case errors.Is(err, makeup.ErrSelfApproval):
			return Reply{Text: "You cannot decide your own makeup request."}
		case errors.Is(err, attendance.ErrAlreadyStamped):
			return Reply{Text: "That slot already holds a stamp. The request stays pending; please reconcile it manually."}
		}
		return h.failure(ctx, event, err)
	}

	if decided.Status == makeup.StatusApproved {
		return Reply{Text: fmt.Sprintf("Approved %s's makeup for the %s shift on %s. ✅", decided.EmployeeNo, decided.Shift, decided.Date)}
	}
	return Reply{Text: fmt.Sprintf("Rejected %s's makeup request.", decided.EmployeeNo)}
}

func (h *Handler) summary(ctx context.Context, event Event, emp employee.Employee) Reply {
	month := clock.MonthOf(clock.DateOf(time.Now(), h.loc))
	s, err := h.reports.Summarize(ctx, emp.EmployeeNo, month)
	if err != nil {
		return h.failure(ctx, event, err)
	}

	verdict := "kept 🎉"
	if s.FullAttendanceBroken {
		verdict = "broken (" + s.BrokenReason + ")"
	}

	return Reply{Text: fmt.Sprintf(
		"Summary for %s\nWorked days: %d\nLate days: %d (%d min)\nEarly-leave minutes: %d\nOvertime minutes: %d\nApproved makeups: %d\nFull attendance: %s",
		month, s.WorkedDays, s.LateCount, s.LateMinutes, s.EarlyMinutes, s.OvertimeMinutes, s.ApprovedMakeupCount, verdict)}
}

func (h *Handler) payrollEstimate(ctx context.Context, event Event, emp employee.Employee) Reply {
	month := clock.MonthOf(clock.DateOf(time.Now(), h.loc))
	est, err := h.payrolls.Estimate(ctx, emp.EmployeeNo, month)
	if err != nil {
		return h.failure(ctx, event, err)
	}

	return Reply{Text: fmt.Sprintf(
		"Pay estimate for %s\nGross: %s\nLate deduction: %s (%d min)\nNet: %s",
		month, est.GrossSalary.StringFixed(0), est.LateDeduction.StringFixed(0), est.LateDeductMinutes, est.NetPay.StringFixed(0))}
}

func (h *Handler) failure(ctx context.Context, event Event, err error) Reply {
	h.logger.Error("chat event failed",
		slog.String("user_id", event.UserID), slog.String("text", event.Text), slog.Any("error", err))
	return Reply{Text: "Something went wrong. Please try again in a moment."}
}

func actionWord(action attendance.Action) string {
	if action == attendance.ActionCheckOut {
		return "check-out"
	}
	return "check-in"
}
