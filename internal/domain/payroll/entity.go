package payroll

import "github.com/shopspring/decimal"

// Company-policy constants: salary is a flat monthly contract rate
// divided by a fixed 30-day month and a 540-minute standard workday,
// never by the actual calendar.
const (
	MonthlyDivisorDays   = 30
	StandardDailyMinutes = 540
)

type SalaryComponents struct {
	BaseSalary        decimal.Decimal
	PositionAllowance decimal.Decimal
}

type Estimate struct {
	EmployeeNo        string
	Month             string
	GrossSalary       decimal.Decimal
	PerMinuteRate     decimal.Decimal
	LateDeductMinutes int
	LateDeduction     decimal.Decimal
	NetPay            decimal.Decimal
}
