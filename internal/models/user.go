package models

// User is a registered journal owner.
//
// PasswordHash is stored and compared verbatim, exactly like the browser
// build it replaces. This is a toy credential record for a personal
// journal, not an auth subsystem.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}
