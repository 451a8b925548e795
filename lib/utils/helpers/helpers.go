package helpers

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// GenerateToken returns an opaque 32 character credential
func GenerateToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
