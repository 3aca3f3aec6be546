package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// AccountsHandler exposes admin account management.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Create handles POST /admin/accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	var req dto.AccountCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.CreateAccount(c.UserContext(), service.AccountCreateInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            domain.Role(req.Role),
		GivenName:       req.GivenName,
		FamilyName:      req.FamilyName,
		Specialty:       req.Specialty,
		ConsultationFee: req.ConsultationFee,
		Phone:           req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(util.OK(userResponse(user)))
}

// SetActive handles PATCH /admin/accounts/:id/active.
func (h *AccountsHandler) SetActive(c *fiber.Ctx) error {
	var req dto.AccountActiveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.accounts.SetActive(c.UserContext(), c.Params("id"), req.Active); err != nil {
		return err
	}
	return c.JSON(util.OK(fiber.Map{"id": c.Params("id"), "active": req.Active}))
}

// List handles GET /admin/accounts?role=ROLE.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	users, err := h.accounts.ListByRole(c.UserContext(), domain.Role(c.Query("role")), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(util.OK(items))
}

// Get handles GET /admin/accounts/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	user, err := h.accounts.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(userResponse(user)))
}
