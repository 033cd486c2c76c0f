package utils

import (
	"github.com/google/uuid"
)

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// IsValidUUID reports whether u parses as a UUID.
func IsValidUUID(u string) bool {
	if len(u) != 36 {
		return false
	}
	_, err := uuid.Parse(u)
	return err == nil
}
