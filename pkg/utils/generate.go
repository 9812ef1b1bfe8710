package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING CODE ====================

func GenerateBookingCode() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: STD-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("STD-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== CONVERSATION ID ====================

// GenerateConversationID creates the correlation identifier echoed by the
// payment gateway. Unique per checkout attempt, not a security token.
func GenerateConversationID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
