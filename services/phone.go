package services

import (
	"strings"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers given without a country code.
const DefaultPhoneRegion = "NG"

// NormalizePhone parses raw and returns it as +<country code><national number>.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.Validation("Phone number is required")
	}
	if region == "" {
		region = DefaultPhoneRegion
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return "", apperrors.Validation("Invalid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
