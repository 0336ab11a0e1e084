// Package payout exposes the payout scheduling, settlement, and query
// endpoints.
package payout

import (
	"github.com/amirasaad/commission/pkg/dto"
	payoutsvc "github.com/amirasaad/commission/pkg/service/payout"
	"github.com/amirasaad/commission/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for payout operations.
//
// Routes:
//   - POST /payouts/schedule   : Schedule a batch of ready payouts (per-item outcomes).
//   - POST /payouts/:id/settle : Settle a scheduled payout as paid or failed.
//   - GET  /payouts/:id        : Retrieve a payout.
func Routes(app *fiber.App, payoutSvc *payoutsvc.Service) {
	app.Post("/payouts/schedule", Schedule(payoutSvc))
	app.Post("/payouts/:id/settle", Settle(payoutSvc))
	app.Get("/payouts/:id", Get(payoutSvc))
}

// Schedule returns a handler that transitions a batch of payouts from ready
// to scheduled. The batch is evaluated per payout: the response carries one
// outcome per requested ID, and valid items succeed even when siblings fail.
func Schedule(payoutSvc *payoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID := common.ActorID(c)
		if actorID == "" {
			return common.ProblemDetailsJSON(c, "Missing actor identity", nil,
				"the "+common.HeaderActorID+" header is required")
		}
		input, err := common.BindAndValidate[ScheduleRequest](c)
		if input == nil {
			return err // error response already written
		}

		ids := make([]uuid.UUID, 0, len(input.PayoutIDs))
		for _, raw := range input.PayoutIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid payout ID", nil,
					"not a valid UUID: "+raw)
			}
			ids = append(ids, id)
		}

		results, err := common.RetryOnPersistence(func() ([]payoutsvc.ScheduleItemResult, error) {
			return payoutSvc.SchedulePayouts(c.Context(), payoutsvc.ScheduleRequest{
				PayoutIDs:     ids,
				ScheduledDate: input.ScheduledDate,
				PaymentMethod: input.PaymentMethod,
				AutoSettle:    input.AutoACH,
			}, actorID)
		})
		if err != nil {
			log.Errorf("Failed to schedule payouts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to schedule payouts", err)
		}

		items := make([]ScheduleItemResponse, 0, len(results))
		succeeded := 0
		for _, r := range results {
			item := ScheduleItemResponse{PayoutID: r.PayoutID.String()}
			if r.Err != nil {
				item.Error = &ItemError{
					Kind:    common.ErrorKind(r.Err),
					Message: r.Err.Error(),
				}
			} else {
				item.Success = true
				item.Payout = r.Payout
				succeeded++
			}
			items = append(items, item)
		}
		return common.SuccessResponseJSON(
			c,
			fiber.StatusOK,
			"Scheduled payouts",
			fiber.Map{
				"scheduled": succeeded,
				"failed":    len(items) - succeeded,
				"results":   items,
			},
		)
	}
}

// Settle returns a handler that closes a payout's lifecycle as paid or failed.
func Settle(payoutSvc *payoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payoutID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payout ID", nil, err.Error())
		}
		actorID := common.ActorID(c)
		if actorID == "" {
			return common.ProblemDetailsJSON(c, "Missing actor identity", nil,
				"the "+common.HeaderActorID+" header is required")
		}
		input, err := common.BindAndValidate[SettleRequest](c)
		if input == nil {
			return err // error response already written
		}

		read, err := common.RetryOnPersistence(func() (*dto.PayoutRead, error) {
			return payoutSvc.SettlePayout(
				c.Context(), payoutID, payoutsvc.Outcome(input.Outcome), input.Reason, actorID,
			)
		})
		if err != nil {
			log.Errorf("Failed to settle payout %s: %v", payoutID, err)
			return common.ProblemDetailsJSON(c, "Failed to settle payout", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payout settled", read)
	}
}

// Get returns a handler retrieving a payout by ID.
func Get(payoutSvc *payoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payoutID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payout ID", nil, err.Error())
		}
		read, err := payoutSvc.GetPayout(c.Context(), payoutID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get payout", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payout found", read)
	}
}
