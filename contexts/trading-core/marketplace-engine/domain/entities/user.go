package entities

import "time"

// User is one registered participant, keyed by its opaque principal.
// Reputation counters are exposed read-only; rating submission is not part
// of the delivered engine.
type User struct {
	Principal        string    `json:"principal"`
	Role             Role      `json:"role"`
	BuyerReputation  int       `json:"buyer_reputation"`
	SellerReputation int       `json:"seller_reputation"`
	RegisteredAt     time.Time `json:"registered_at"`
}
