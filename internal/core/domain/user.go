package domain

// User is an application account; the engine only consumes its ID as the
// "who changed this" identity on ledger writes.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	AuditFields
}
