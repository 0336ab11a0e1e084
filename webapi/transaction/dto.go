package transaction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that accepts both JSON numbers and numeric strings.
// The approval payload's financial fields arrive in either form depending on
// the client.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("not a numeric value: %q", str)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FinalDataRequest carries the final deal terms of an approval request.
// Required numeric fields are pointers so that an absent field is rejected
// while a legitimate zero passes through to the calculator.
type FinalDataRequest struct {
	FinalBrokerAgentName          string     `json:"final_broker_agent_name" validate:"required"`
	PropertyAddress               string     `json:"property_address" validate:"required"`
	FinalSalePrice                *FlexFloat `json:"final_sale_price" validate:"required"`
	FinalListingCommissionPercent *FlexFloat `json:"final_listing_commission_percent" validate:"required"`
	FinalBuyerCommissionPercent   *FlexFloat `json:"final_buyer_commission_percent"`
	FinalAgentSplitPercent        *FlexFloat `json:"final_agent_split_percent" validate:"required"`
	FinalCoBrokerAgentName        string     `json:"final_co_broker_agent_name"`
	FinalCoBrokerageFirmName      string     `json:"final_co_brokerage_firm_name"`
	Currency                      string     `json:"currency"`
	FranchiseFee                  *FlexFloat `json:"franchise_fee"`
	EOFee                         *FlexFloat `json:"eo_fee"`
	TransactionFee                *FlexFloat `json:"transaction_fee"`
}

// ApproveRequest is the request body for approving a transaction.
type ApproveRequest struct {
	FinalData          FinalDataRequest `json:"final_data" validate:"required"`
	ChecklistResponses json.RawMessage  `json:"checklist_responses"`
}
