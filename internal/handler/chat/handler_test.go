package chat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/domain/payroll"
	"github.com/shiftwork/attendance-bot-go/internal/domain/report"
)

type memorySessions struct {
	data map[string][]byte
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: make(map[string][]byte)}
}

func (m *memorySessions) Get(_ context.Context, userID string, dest any) (bool, error) {
	raw, ok := m.data[userID]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memorySessions) Set(_ context.Context, userID string, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.data[userID] = raw
	return nil
}

func (m *memorySessions) Delete(_ context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

type stubDirectory struct {
	byChatID map[string]employee.Employee
}

func (s *stubDirectory) GetByChatUserID(_ context.Context, chatUserID string) (employee.Employee, error) {
	emp, ok := s.byChatID[chatUserID]
	if !ok {
		return employee.Employee{}, employee.ErrNotRegistered
	}
	return emp, nil
}

func (s *stubDirectory) GetByEmployeeNo(_ context.Context, employeeNo string) (employee.Employee, error) {
	for _, emp := range s.byChatID {
		if emp.EmployeeNo == employeeNo {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubDirectory) ListApprovers(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type stubAttendance struct {
	stamps []attendance.StampRequest
	err    error
}

func (s *stubAttendance) Stamp(_ context.Context, req attendance.StampRequest) (attendance.Record, error) {
	if s.err != nil {
		return attendance.Record{}, s.err
	}
	s.stamps = append(s.stamps, req)
	return attendance.Record{EmployeeNo: req.EmployeeNo, Date: req.Date}, nil
}

func (s *stubAttendance) Get(_ context.Context, employeeNo, date string) (attendance.Record, error) {
	return attendance.Record{EmployeeNo: employeeNo, Date: date}, nil
}

type stubMakeups struct {
	submitted []makeup.SubmitRequest
	decided   []makeup.DecideRequest
	pending   []makeup.Request
	decideErr error
}

func (s *stubMakeups) Submit(_ context.Context, req makeup.SubmitRequest) (makeup.Request, error) {
	if err := req.Validate(); err != nil {
		return makeup.Request{}, err
	}
	s.submitted = append(s.submitted, req)
	return makeup.Request{
		ID:         "req-1",
		EmployeeNo: req.EmployeeNo,
		Date:       req.Date,
		Shift:      req.Shift,
		Action:     req.Action,
		Status:     makeup.StatusPending,
	}, nil
}

func (s *stubMakeups) Decide(_ context.Context, req makeup.DecideRequest) (makeup.Request, error) {
	if s.decideErr != nil {
		return makeup.Request{}, s.decideErr
	}
	s.decided = append(s.decided, req)
	status := makeup.StatusApproved
	if req.Decision == makeup.DecisionReject {
		status = makeup.StatusRejected
	}
	return makeup.Request{ID: req.RequestID, EmployeeNo: "EMP001", Date: "2025-03-10", Shift: attendance.ShiftMorning, Status: status}, nil
}

func (s *stubMakeups) ListPending(context.Context) ([]makeup.Request, error) {
	return s.pending, nil
}

type stubReportSvc struct {
	summary report.MonthlySummary
}

func (s *stubReportSvc) Summarize(context.Context, string, string) (report.MonthlySummary, error) {
	return s.summary, nil
}

func (s *stubReportSvc) ExportSummary(context.Context, string, string) ([]byte, error) {
	return []byte("PK"), nil
}

type stubPayroll struct {
	estimate payroll.Estimate
}

func (s *stubPayroll) Estimate(context.Context, string, string) (payroll.Estimate, error) {
	return s.estimate, nil
}

type handlerFixture struct {
	handler    *Handler
	sessions   *memorySessions
	attendance *stubAttendance
	makeups    *stubMakeups
}

func newHandlerFixture() *handlerFixture {
	sessions := newMemorySessions()
	att := &stubAttendance{}
	mk := &stubMakeups{}
	directory := &stubDirectory{byChatID: map[string]employee.Employee{
		"chat-staff": {EmployeeNo: "EMP001", ChatUserID: "chat-staff", Role: employee.RoleStaff},
		"chat-admin": {EmployeeNo: "ADM001", ChatUserID: "chat-admin", Role: employee.RoleAdmin},
	}}
	h := NewHandler(
		directory,
		att,
		mk,
		&stubReportSvc{summary: report.MonthlySummary{WorkedDays: 20, LateCount: 1, LateMinutes: 5}},
		&stubPayroll{estimate: payroll.Estimate{
			GrossSalary:   decimal.NewFromInt(32000),
			LateDeduction: decimal.NewFromInt(30),
			NetPay:        decimal.NewFromInt(31970),
		}},
		sessions,
		time.UTC,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return &handlerFixture{handler: h, sessions: sessions, attendance: att, makeups: mk}
}

func (fx *handlerFixture) send(userID, text string) Reply {
	return fx.handler.Handle(context.Background(), Event{UserID: userID, Text: text})
}

func TestHandleUnregisteredUser(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-stranger", "punch")

	assert.Contains(t, reply.Text, "not registered")
}

func TestHandlePunchMenu(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "punch")

	assert.Contains(t, reply.Text, "EMP001")
	assert.Equal(t, []string{"morning in", "morning out", "night in", "night out"}, reply.QuickReplies)
}

func TestHandlePunchCommands(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "night out")

	assert.Contains(t, reply.Text, "Recorded")
	require.Len(t, fx.attendance.stamps, 1)
	stamp := fx.attendance.stamps[0]
	assert.Equal(t, attendance.ShiftNight, stamp.Shift)
	assert.Equal(t, attendance.ActionCheckOut, stamp.Action)
	assert.Equal(t, "EMP001", stamp.EmployeeNo)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), stamp.Date)
}

func TestHandleDuplicatePunchIsFriendly(t *testing.T) {
	fx := newHandlerFixture()
	fx.attendance.err = attendance.ErrAlreadyStamped

	reply := fx.send("chat-staff", "morning in")

	assert.Contains(t, reply.Text, "already recorded")
	assert.Contains(t, reply.Text, "No action needed")
}

func TestHandleMakeupDialogEndToEnd(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "makeup")
	assert.Equal(t, []string{"morning", "night"}, reply.QuickReplies)

	reply = fx.send("chat-staff", "morning")
	assert.Equal(t, []string{"in", "out"}, reply.QuickReplies)

	reply = fx.send("chat-staff", "in")
	assert.Contains(t, reply.Text, "reason")

	reply = fx.send("chat-staff", "forgot my badge")
	assert.Contains(t, reply.Text, "submitted")

	require.Len(t, fx.makeups.submitted, 1)
	sub := fx.makeups.submitted[0]
	assert.Equal(t, attendance.ShiftMorning, sub.Shift)
	assert.Equal(t, attendance.ActionCheckIn, sub.Action)
	assert.Equal(t, "forgot my badge", sub.Reason)
	assert.Equal(t, "EMP001", sub.RequestedBy)

	_, inDialog := fx.sessions.data["chat-staff"]
	assert.False(t, inDialog, "session must be cleared after submit")
}

func TestHandleMakeupDialogRepromptsOnBadAnswer(t *testing.T) {
	fx := newHandlerFixture()

	fx.send("chat-staff", "makeup")
	reply := fx.send("chat-staff", "afternoon")

	assert.Contains(t, reply.Text, "pick a shift")
	assert.Equal(t, []string{"morning", "night"}, reply.QuickReplies)
}

func TestHandleCancelClearsDialog(t *testing.T) {
	fx := newHandlerFixture()

	fx.send("chat-staff", "makeup")
	reply := fx.send("chat-staff", "cancel")
	assert.Contains(t, reply.Text, "cancelled")

	reply = fx.send("chat-staff", "morning")
	assert.Equal(t, helpText, reply.Text, "dialog must not survive a cancel")
}

func TestHandleAdminListAndApprove(t *testing.T) {
	fx := newHandlerFixture()
	fx.makeups.pending = []makeup.Request{{
		ID: "req-9", EmployeeNo: "EMP001", Date: "2025-03-10",
		Shift: attendance.ShiftMorning, Action: attendance.ActionCheckIn,
		Reason: "forgot", Status: makeup.StatusPending,
	}}

	reply := fx.send("chat-admin", "requests")
	assert.Contains(t, reply.Text, "req-9")
	assert.Contains(t, reply.Text, "forgot")

	reply = fx.send("chat-admin", "approve req-9")
	assert.Contains(t, reply.Text, "Approved")
	require.Len(t, fx.makeups.decided, 1)
	assert.Equal(t, "req-9", fx.makeups.decided[0].RequestID)
	assert.Equal(t, "ADM001", fx.makeups.decided[0].ReviewedBy)
	assert.Equal(t, makeup.DecisionApprove, fx.makeups.decided[0].Decision)
}

func TestHandleAdminCommandsHiddenFromStaff(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "requests")
	assert.Equal(t, helpText, reply.Text)

	reply = fx.send("chat-staff", "approve req-1")
	assert.Equal(t, helpText, reply.Text)
	assert.Empty(t, fx.makeups.decided)
}

func TestHandleDecideRaceLoserGetsFriendlyReply(t *testing.T) {
	fx := newHandlerFixture()
	fx.makeups.decideErr = makeup.ErrAlreadyDecided

	reply := fx.send("chat-admin", "approve req-1")

	assert.Contains(t, reply.Text, "already decided")
}

func TestHandleDecideStampConflict(t *testing.T) {
	fx := newHandlerFixture()
	fx.makeups.decideErr = attendance.ErrAlreadyStamped

	reply := fx.send("chat-admin", "approve req-1")

	assert.Contains(t, reply.Text, "stays pending")
}

func TestHandleSummary(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "summary")

	assert.Contains(t, reply.Text, "Worked days: 20")
	assert.Contains(t, reply.Text, "kept")
}

func TestHandlePayroll(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "payroll")

	assert.Contains(t, reply.Text, "31970")
	assert.Contains(t, reply.Text, "30")
}

func TestHandleUnknownTextShowsHelp(t *testing.T) {
	fx := newHandlerFixture()

	reply := fx.send("chat-staff", "what can you do")

	assert.Equal(t, helpText, reply.Text)
	assert.True(t, strings.Contains(reply.Text, "punch"))
}
