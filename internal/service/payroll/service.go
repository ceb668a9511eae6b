package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/domain/payroll"
	"github.com/shiftwork/attendance-bot-go/internal/domain/report"
)

type PayrollServiceImpl struct {
	employeeRepo  employee.Repository
	reportService report.Service
}

func NewPayrollService(employeeRepo employee.Repository, reportService report.Service) payroll.Service {
	return &PayrollServiceImpl{
		employeeRepo:  employeeRepo,
		reportService: reportService,
	}
}

// Estimate implements payroll.Service.
func (p *PayrollServiceImpl) Estimate(ctx context.Context, employeeNo, yearMonth string) (payroll.Estimate, error) {
	emp, err := p.employeeRepo.GetByEmployeeNo(ctx, employeeNo)
	if err != nil {
		return payroll.Estimate{}, err
	}

	summary, err := p.reportService.Summarize(ctx, employeeNo, yearMonth)
	if err != nil {
		return payroll.Estimate{}, fmt.Errorf("failed to summarize month for payroll: %w", err)
	}

	estimate := Compute(payroll.SalaryComponents{
		BaseSalary:        emp.BaseSalary,
		PositionAllowance: emp.PositionAllowance,
	}, summary.LateDeductMinutes)
	estimate.EmployeeNo = employeeNo
	estimate.Month = yearMonth

	return estimate, nil
}

// Compute turns salary components and a lateness deduction into a net
// figure. The per-minute rate keeps full decimal precision; only the
// final deduction is rounded, to whole currency units.
func Compute(components payroll.SalaryComponents, lateDeductMinutes int) payroll.Estimate {
	gross := components.BaseSalary.Add(components.PositionAllowance)

	perMinute := gross.
		Div(decimal.NewFromInt(payroll.MonthlyDivisorDays)).
		Div(decimal.NewFromInt(payroll.StandardDailyMinutes))

	deduction := perMinute.Mul(decimal.NewFromInt(int64(lateDeductMinutes))).Round(0)

	return payroll.Estimate{
		GrossSalary:       gross,
		PerMinuteRate:     perMinute,
		LateDeductMinutes: lateDeductMinutes,
		LateDeduction:     deduction,
		NetPay:            gross.Sub(deduction),
	}
}
