package sanitizer

import (
	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed for numbers typed without a country code.
const DefaultRegion = "US"

// NormalizePhone formats valid numbers as E.164. Anything else, including
// extensions and partial numbers, comes back whitespace-normalized.
func NormalizePhone(phone string) string {
	phone = TrimAndNormalize(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
