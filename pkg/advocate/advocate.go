package advocate

import (
	"fmt"
	"strings"
	"time"
)

// Advocate is a candidate record returned by the matcher. The matcher never
// inspects the fields beyond building a description for embedding.
type Advocate struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	City              string    `json:"city"`
	Degree            string    `json:"degree"`
	Specialties       []string  `json:"specialties"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	PhoneNumber       string    `json:"phoneNumber"`
	CreatedAt         time.Time `json:"createdAt,omitzero"`
}

// FullName returns "First Last".
func (a Advocate) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Description renders the text that gets embedded for this advocate.
// The output depends only on the advocate's fields, in a fixed order.
func (a Advocate) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is a professional with %d years of experience.", a.FullName(), a.YearsOfExperience)
	fmt.Fprintf(&b, " They are located in %s.", a.City)
	if len(a.Specialties) > 0 {
		fmt.Fprintf(&b, " They specialize in %s.", strings.Join(a.Specialties, ", "))
	}
	fmt.Fprintf(&b, " They have a %s.", a.Degree)
	return b.String()
}

// FormatPhoneNumber formats a 10 digit number as (xxx) xxx-xxxx.
// Anything else is returned unchanged.
func FormatPhoneNumber(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
}
