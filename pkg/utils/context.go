package utils

import (
	"context"

	"procurement-system/pkg/contextkeys"
	apperrors "procurement-system/pkg/errors"
)

// GetUserIDFromCtx extracts the authenticated user's id placed into the
// request context by the auth middleware.
func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}
