package utils

import (
	"fmt"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// PaymentVerification is the gateway's response for a payment lookup
type PaymentVerification struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		PaymentID string `json:"payment_id"`
		Amount    uint   `json:"amount"` // in paise
		Currency  string `json:"currency"`
		State     string `json:"state"` // captured, failed, pending
	} `json:"data"`
}

// VerifyPayment confirms with the payment gateway that the given payment was
// captured for the expected amount before activating a subscription
func VerifyPayment(paymentID string, expectedAmount uint) (*PaymentVerification, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("payment id is required")
	}

	client := resty.New()

	var result PaymentVerification
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", config.AppConfig.PaymentApiKey).
		SetHeader("x-api-secret", config.AppConfig.PaymentSecretKey).
		SetResult(&result).
		Get(config.AppConfig.PaymentApiURL + "payments/" + paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("payment gateway error: %s", resp.String())
	}

	if result.Data.State != "captured" {
		return &result, fmt.Errorf("payment not captured: %s", result.Data.State)
	}

	if result.Data.Amount != expectedAmount {
		return &result, fmt.Errorf("payment amount mismatch: expected %d, got %d", expectedAmount, result.Data.Amount)
	}

	return &result, nil
}
