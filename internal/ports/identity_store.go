package ports

import "context"

// Port: client-local persistence of the driver display name.
type IdentityStore interface {
	// Return the stored name and whether one is present.
	DriverName(ctx context.Context) (string, bool, error)
	SetDriverName(ctx context.Context, name string) error
	ClearDriverName(ctx context.Context) error
}
