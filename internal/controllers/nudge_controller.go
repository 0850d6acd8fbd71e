package controllers

import (
	"github.com/networknudge/networknudge/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type NudgeController struct {
	nudgeManager  domain.NudgeManager
	digestManager domain.DigestManager
}

type NudgeControllerDependencies struct {
	NudgeManager  domain.NudgeManager
	DigestManager domain.DigestManager
}

func NewNudgeController(deps NudgeControllerDependencies) *NudgeController {
	return &NudgeController{
		nudgeManager:  deps.NudgeManager,
		digestManager: deps.DigestManager,
	}
}

type GenerateNudgesRequest struct {
	UserID string `json:"userId"`
}

// Generate creates nudges for the signed-in user.
func (c *NudgeController) Generate(ctx fiber.Ctx) error {
	accountID, err := sessionAccountID(ctx)
	if err != nil {
		return err
	}

	return c.generate(ctx, accountID)
}

// GenerateForUser creates nudges for the user named in the body.
func (c *NudgeController) GenerateForUser(ctx fiber.Ctx) error {
	var req GenerateNudgesRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}

	return c.generate(ctx, req.UserID)
}

func (c *NudgeController) generate(ctx fiber.Ctx, userID string) error {
	result, err := c.nudgeManager.GenerateNudges(ctx.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to generate nudges")
		return httpError(err, "Failed to generate nudges")
	}

	return ctx.JSON(result)
}

func (c *NudgeController) SendDigests(ctx fiber.Ctx) error {
	result, err := c.digestManager.SendDigests(ctx.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to send digests")
		return httpError(err, "Failed to send digests")
	}

	return ctx.JSON(result)
}
