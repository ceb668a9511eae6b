package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftwork/attendance-bot-go/internal/domain/payroll"
	"github.com/shiftwork/attendance-bot-go/internal/domain/report"
	"github.com/shiftwork/attendance-bot-go/internal/handler/http/response"
)

type ReportHandler struct {
	reports  report.Service
	payrolls payroll.Service
}

func NewReportHandler(reports report.Service, payrolls payroll.Service) ReportHandler {
	return ReportHandler{reports: reports, payrolls: payrolls}
}

type monthlySummaryResponse struct {
	EmployeeNo           string `json:"employee_no"`
	Month                string `json:"month"`
	WorkedDays           int    `json:"worked_days"`
	LateCount            int    `json:"late_count"`
	LateMinutes          int    `json:"late_minutes"`
	EarlyMinutes         int    `json:"early_minutes"`
	OvertimeMinutes      int    `json:"overtime_minutes"`
	ApprovedMakeupCount  int    `json:"approved_makeup_count"`
	MissingScheduleDays  int    `json:"missing_schedule_days"`
	PersonalLeaveDays    int    `json:"personal_leave_days"`
	FullAttendanceBroken bool   `json:"full_attendance_broken"`
	BrokenReason         string `json:"broken_reason,omitempty"`
	LateDeductMinutes    int    `json:"late_deduct_minutes"`
}

// Summary handles GET /api/v1/reports/{employeeNo}/summary?month=YYYY-MM.
func (h ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	employeeNo := chi.URLParam(r, "employeeNo")
	month := r.URL.Query().Get("month")

	summary, err := h.reports.Summarize(r.Context(), employeeNo, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, monthlySummaryResponse{
		EmployeeNo:           summary.EmployeeNo,
		Month:                summary.Month,
		WorkedDays:           summary.WorkedDays,
		LateCount:            summary.LateCount,
		LateMinutes:          summary.LateMinutes,
		EarlyMinutes:         summary.EarlyMinutes,
		OvertimeMinutes:      summary.OvertimeMinutes,
		ApprovedMakeupCount:  summary.ApprovedMakeupCount,
		MissingScheduleDays:  summary.MissingScheduleDays,
		PersonalLeaveDays:    summary.PersonalLeaveDays,
		FullAttendanceBroken: summary.FullAttendanceBroken,
		BrokenReason:         summary.BrokenReason,
		LateDeductMinutes:    summary.LateDeductMinutes,
	})
}

// Export handles GET /api/v1/reports/{employeeNo}/export?month=YYYY-MM.
func (h ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	employeeNo := chi.URLParam(r, "employeeNo")
	month := r.URL.Query().Get("month")

	data, err := h.reports.ExportSummary(r.Context(), employeeNo, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s-%s.xlsx", employeeNo, month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type estimateResponse struct {
	EmployeeNo        string `json:"employee_no"`
	Month             string `json:"month"`
	GrossSalary       string `json:"gross_salary"`
	PerMinuteRate     string `json:"per_minute_rate"`
	LateDeductMinutes int    `json:"late_deduct_minutes"`
	LateDeduction     string `json:"late_deduction"`
	NetPay            string `json:"net_pay"`
}

// PayrollEstimate handles GET /api/v1/reports/{employeeNo}/payroll?month=YYYY-MM.
func (h ReportHandler) PayrollEstimate(w http.ResponseWriter, r *http.Request) {
	employeeNo := chi.URLParam(r, "employeeNo")
	month := r.URL.Query().Get("month")

	estimate, err := h.payrolls.Estimate(r.Context(), employeeNo, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, estimateResponse{
		EmployeeNo:        estimate.EmployeeNo,
		Month:             estimate.Month,
		GrossSalary:       estimate.GrossSalary.String(),
		PerMinuteRate:     estimate.PerMinuteRate.String(),
		LateDeductMinutes: estimate.LateDeductMinutes,
		LateDeduction:     estimate.LateDeduction.String(),
		NetPay:            estimate.NetPay.String(),
	})
}
