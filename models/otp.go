package models

import "time"

// OtpChallenge is the stored form of an issued one-time code. The code itself
// is never stored or logged; only its bcrypt hash. Bound 1:1 to a hold —
// re-issuing replaces the previous challenge for that hold.
type OtpChallenge struct {
	HoldID    string    `json:"holdId"`
	Phone     string    `json:"phone"` // E.164
	CodeHash  string    `json:"codeHash"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
