package controllers

import (
	"github.com/networknudge/networknudge/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type LinkedInController struct {
	accountManager domain.LinkedInAccountManager
	syncManager    domain.SyncManager
}

type LinkedInControllerDependencies struct {
	AccountManager domain.LinkedInAccountManager
	SyncManager    domain.SyncManager
}

func NewLinkedInController(deps LinkedInControllerDependencies) *LinkedInController {
	return &LinkedInController{
		accountManager: deps.AccountManager,
		syncManager:    deps.SyncManager,
	}
}

type ExchangeCodeRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// Authorize starts the OAuth flow and returns the URL the browser should visit.
func (c *LinkedInController) Authorize(ctx fiber.Ctx) error {
	accountID, err := sessionAccountID(ctx)
	if err != nil {
		return err
	}

	request, err := c.accountManager.BeginConnect(ctx.Context(), accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to begin linkedin connect")
		return httpError(err, "Failed to start LinkedIn authorization")
	}

	return ctx.JSON(request)
}

// Exchange completes the OAuth flow. Tokens are stored server side and never returned.
func (c *LinkedInController) Exchange(ctx fiber.Ctx) error {
	accountID, err := sessionAccountID(ctx)
	if err != nil {
		return err
	}

	var req ExchangeCodeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Code == "" || req.State == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code and state are required")
	}

	if err := c.accountManager.CompleteConnect(ctx.Context(), accountID, req.Code, req.State); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to complete linkedin connect")
		return httpError(err, "Failed to exchange code for token")
	}

	return ctx.JSON(fiber.Map{"success": true})
}

func (c *LinkedInController) Status(ctx fiber.Ctx) error {
	accountID, err := sessionAccountID(ctx)
	if err != nil {
		return err
	}

	status, err := c.accountManager.Status(ctx.Context(), accountID)
	if err != nil {
		return httpError(err, "Failed to get LinkedIn status")
	}

	return ctx.JSON(status)
}

func (c *LinkedInController) Disconnect(ctx fiber.Ctx) error {
	accountID, err := sessionAccountID(ctx)
	if err != nil {
		return err
	}

	if err := c.accountManager.Disconnect(ctx.Context(), accountID); err != nil {
		return httpError(err, "Failed to disconnect LinkedIn")
	}

	return ctx.JSON(fiber.Map{"success": true})
}

func (c *LinkedInController) Sync(ctx fiber.Ctx) error {
	accountID, err := sessionAccountID(ctx)
	if err != nil {
		return err
	}

	result, err := c.syncManager.SyncAccount(ctx.Context(), accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to sync linkedin account")
		return httpError(err, "Failed to sync LinkedIn data")
	}

	return ctx.JSON(result)
}
