package paystack

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateReference produces a unique, attributable transaction reference of
// the form premium_<userID>_<unixMilli>_<rand>. The suffix comes from
// crypto/rand so concurrent calls within the same millisecond still cannot
// collide.
func GenerateReference(userID string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in no state to take money
		panic(fmt.Sprintf("paystack: entropy source unavailable: %v", err))
	}
	return fmt.Sprintf("premium_%s_%d_%s", userID, time.Now().UnixMilli(), hex.EncodeToString(b))
}
