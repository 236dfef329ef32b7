package contextkeys

type contextKey string

// UserIDKey carries the authenticated user's id, set by the auth
// middleware and read by services.
const UserIDKey contextKey = "userID"
