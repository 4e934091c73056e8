package payroll

type CreatePayrollRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	Period       string `json:"period" binding:"required"`
	BaseSalary   int64  `json:"base_salary" binding:"required"`
	Allowance    int64  `json:"allowance"`
	OvertimeRate int64  `json:"overtime_rate"`
	Deduction    int64  `json:"deduction"`
}

type PayrollResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	BaseSalary     int64   `json:"base_salary"`
	Allowance      int64   `json:"allowance"`
	OvertimeHours  float64 `json:"overtime_hours"`
	OvertimeRate   int64   `json:"overtime_rate"`
	OvertimeAmount int64   `json:"overtime_amount"`
	Deduction      int64   `json:"deduction"`
	NetSalary      int64   `json:"net_salary"`
	Status         string  `json:"status"`
	CreatedBy      string  `json:"created_by"`
	PaidAt         *string `json:"paid_at,omitempty"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
}
