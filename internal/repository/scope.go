package repository

import "github.com/google/uuid"

// Scope restricts owner-filtered queries to rows owned by the requesting
// principal. Admin scopes see every row.
type Scope struct {
	UserID uuid.UUID
	Admin  bool
}
