package handlers

import (
	"finpal/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.profileService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return handleError(c, h.logger, err, "Failed to load profile")
	}
	return c.JSON(resp)
}

// UpdateProfile godoc
// @Summary Update first and last name
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Names"
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.profileService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return handleError(c, h.logger, err, "Failed to update profile")
	}
	return c.JSON(resp)
}

// FamilyMembers godoc
// @Summary List family members
// @Description Owner first, then by email. Pending invitations are included.
// @Tags family
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.FamilyResponse
// @Router /api/v1/family/members [get]
func (h *ProfileHandler) FamilyMembers(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.profileService.FamilyMembers(c.UserContext(), scope)
	if err != nil {
		return handleError(c, h.logger, err, "Failed to load family")
	}
	return c.JSON(resp)
}

// InviteMember godoc
// @Summary Invite a family member
// @Description Owner only. Creates a pending member and sends the registration link.
// @Tags family
// @Accept json
// @Produce json
// @Param request body dto.InviteRequest true "Invitee"
// @Security Bearer
// @Success 201 {object} dto.InviteResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/family/invitations [post]
func (h *ProfileHandler) InviteMember(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.InviteRequest
	if err := bindJSON(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.profileService.InviteMember(c.UserContext(), scope, &req)
	if err != nil {
		return handleError(c, h.logger, err, "Failed to send invitation")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveMember godoc
// @Summary Remove a family member
// @Tags family
// @Param id path string true "Member ID"
// @Security Bearer
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/family/members/{id} [delete]
func (h *ProfileHandler) RemoveMember(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	memberID, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid member ID")
	}

	if err := h.profileService.RemoveMember(c.UserContext(), scope, memberID); err != nil {
		return handleError(c, h.logger, err, "Failed to remove member")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
