package checkout

import (
	"regexp"
	"strings"

	"github.com/quickmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/types"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
	spacePattern      = regexp.MustCompile(`\s`)
)

// PaymentInfo is the raw payment form state submitted at checkout.
type PaymentInfo struct {
	Method     enums.PaymentMethod `json:"method"`
	CardNumber string              `json:"cardNumber"`
	ExpiryDate string              `json:"expiryDate"`
	CVV        string              `json:"cvv"`
	CardName   string              `json:"cardName"`
}

// ValidateShipping checks that all required address fields are present.
func ValidateShipping(address types.Address) error {
	missing := address.MissingFields()
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please fill in all required shipping fields").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}

// ValidatePayment checks the payment form. PayPal needs no card details;
// credit card requires all fields plus format checks. Card numbers may
// contain spaces, which are stripped before matching.
func ValidatePayment(info PaymentInfo) error {
	if !info.Method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please select a valid payment method")
	}
	if info.Method != enums.PaymentMethodCreditCard {
		return nil
	}

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"cardNumber", info.CardNumber},
		{"expiryDate", info.ExpiryDate},
		{"cvv", info.CVV},
		{"cardName", info.CardName},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please fill in all required payment fields").
			WithDetails(map[string]any{"missing": missing})
	}

	cardNumber := spacePattern.ReplaceAllString(info.CardNumber, "")
	if !cardNumberPattern.MatchString(cardNumber) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please enter a valid 16-digit card number")
	}
	if !expiryPattern.MatchString(info.ExpiryDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please enter expiry date in MM/YY format")
	}
	if !cvvPattern.MatchString(info.CVV) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please enter a valid 3-digit CVV")
	}
	return nil
}

// PaymentSummary is the customer-facing description stored on the order.
// Card numbers never appear in full; only the last four digits survive.
func PaymentSummary(info PaymentInfo) string {
	if info.Method == enums.PaymentMethodCreditCard {
		cardNumber := spacePattern.ReplaceAllString(info.CardNumber, "")
		last4 := cardNumber
		if len(cardNumber) > 4 {
			last4 = cardNumber[len(cardNumber)-4:]
		}
		return "Credit Card ending in " + last4
	}
	return "PayPal"
}
