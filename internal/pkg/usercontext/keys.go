package usercontext

// Locals keys used by the user context middleware.
const (
	KeyUserID      = "user_id"
	KeyUsername    = "username"
	KeyIsLoggedIn  = "is_logged_in"
	KeyIsAdmin     = "is_admin"
	KeyUserContext = "user_context"
)
