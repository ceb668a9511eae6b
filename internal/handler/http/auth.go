package http

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftwork/attendance-bot-go/internal/domain/auth"
	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/handler/http/response"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/jwt"
)

// AuthHandler issues report-API tokens to admins holding the shared
// admin key. The bot's chat surface never uses these tokens.
type AuthHandler struct {
	employees    employee.Repository
	jwtService   jwt.Service
	adminKeyHash string // bcrypt hash of the admin key
}

func NewAuthHandler(employees employee.Repository, jwtService jwt.Service, adminKeyHash string) AuthHandler {
	return AuthHandler{
		employees:    employees,
		jwtService:   jwtService,
		adminKeyHash: adminKeyHash,
	}
}

type loginRequest struct {
	EmployeeNo string `json:"employee_no"`
	AdminKey   string `json:"admin_key"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.adminKeyHash), []byte(req.AdminKey)); err != nil {
		response.HandleError(w, auth.ErrInvalidCredentials)
		return
	}

	emp, err := h.employees.GetByEmployeeNo(r.Context(), req.EmployeeNo)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidCredentials)
		return
	}
	if !emp.IsApprover() {
		response.HandleError(w, auth.ErrForbidden)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(emp.EmployeeNo, emp.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loginResponse{AccessToken: token, ExpiresAt: expiresAt})
}
