package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateClaimNumber builds a claim number of the form CLM-<timestamp6>-<random6>:
// the last six digits of the current unix-millisecond clock plus six random digits.
func GenerateClaimNumber() string {
	millis := time.Now().UnixMilli()
	return fmt.Sprintf("CLM-%06d-%06d", millis%1000000, rand.Intn(1000000))
}
