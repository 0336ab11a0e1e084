// Package transaction exposes the transaction approval and audit trail
// endpoints.
package transaction

import (
	"github.com/amirasaad/commission/pkg/commission"
	"github.com/amirasaad/commission/pkg/money"
	"github.com/amirasaad/commission/pkg/service/audit"
	payoutsvc "github.com/amirasaad/commission/pkg/service/payout"
	"github.com/amirasaad/commission/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for transaction operations.
//
// Routes:
//   - POST /transactions/:id/approve : Approve a transaction and create its payout.
//   - GET  /transactions/:id/events  : List the transaction's audit trail, newest first.
func Routes(app *fiber.App, payoutSvc *payoutsvc.Service, recorder *audit.Recorder) {
	app.Post("/transactions/:id/approve", Approve(payoutSvc))
	app.Get("/transactions/:id/events", ListEvents(recorder))
}

// Approve returns a handler that locks in final deal terms, computes the
// commission, and creates the payout. The X-Actor-ID header identifies who
// approved; approval is idempotent on the transaction ID.
func Approve(payoutSvc *payoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		transactionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error())
		}
		actorID := common.ActorID(c)
		if actorID == "" {
			return common.ProblemDetailsJSON(c, "Missing actor identity", nil,
				"the "+common.HeaderActorID+" header is required")
		}
		input, err := common.BindAndValidate[ApproveRequest](c)
		if input == nil {
			return err // error response already written
		}

		final, err := toFinalData(input.FinalData)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid financial inputs", nil, err.Error())
		}

		result, err := common.RetryOnPersistence(func() (*payoutsvc.ApprovalResult, error) {
			return payoutSvc.ApproveTransaction(
				c.Context(), transactionID, final, input.ChecklistResponses, actorID,
			)
		})
		if err != nil {
			log.Errorf("Failed to approve transaction %s: %v", transactionID, err)
			return common.ProblemDetailsJSON(c, "Failed to approve transaction", err)
		}

		message := "Transaction approved"
		if result.Warning != "" {
			message = "Transaction approved with warning: " + result.Warning
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, message, fiber.Map{
			"success":     true,
			"transaction": result.Transaction,
			"payout":      result.Payout,
			"figures": fiber.Map{
				"gross_commission_income": result.Figures.GrossCommissionIncome,
				"agent_gross":             result.Figures.AgentGross,
				"agent_net_payout":        result.Figures.AgentNetPayout,
				"clamped":                 result.Figures.Clamped,
			},
		})
	}
}

// ListEvents returns a handler listing a transaction's audit events, newest
// first.
func ListEvents(recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		transactionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error())
		}
		events, err := recorder.ListEvents(c.Context(), transactionID)
		if err != nil {
			log.Errorf("Failed to list events for transaction %s: %v", transactionID, err)
			return common.ProblemDetailsJSON(c, "Failed to list events", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Events listed", events)
	}
}

// toFinalData converts the request payload into the service's input type,
// turning main-unit amounts into money values.
func toFinalData(fd FinalDataRequest) (payoutsvc.FinalData, error) {
	currencyCode := money.USD
	if fd.Currency != "" {
		currencyCode = money.Code(fd.Currency)
	}
	salePrice, err := money.New(float64(*fd.FinalSalePrice), currencyCode)
	if err != nil {
		return payoutsvc.FinalData{}, err
	}

	var deductions commission.Deductions
	for _, d := range []struct {
		value  *FlexFloat
		target **money.Money
	}{
		{fd.FranchiseFee, &deductions.FranchiseFee},
		{fd.EOFee, &deductions.EOFee},
		{fd.TransactionFee, &deductions.TransactionFee},
	} {
		if d.value == nil {
			continue
		}
		m, err := money.New(float64(*d.value), currencyCode)
		if err != nil {
			return payoutsvc.FinalData{}, err
		}
		*d.target = m
	}

	buyerPercent := 0.0
	if fd.FinalBuyerCommissionPercent != nil {
		buyerPercent = float64(*fd.FinalBuyerCommissionPercent)
	}

	return payoutsvc.FinalData{
		BrokerAgentName:          fd.FinalBrokerAgentName,
		PropertyAddress:          fd.PropertyAddress,
		SalePrice:                salePrice,
		ListingCommissionPercent: float64(*fd.FinalListingCommissionPercent),
		BuyerCommissionPercent:   buyerPercent,
		AgentSplitPercent:        float64(*fd.FinalAgentSplitPercent),
		CoBrokerAgentName:        fd.FinalCoBrokerAgentName,
		CoBrokerageFirmName:      fd.FinalCoBrokerageFirmName,
		Deductions:               deductions,
	}, nil
}
