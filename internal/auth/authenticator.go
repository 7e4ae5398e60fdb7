package auth

import (
	"context"

	"github.com/nkhatri/splitkaro/internal/models"
)

// Authenticator abstracts how accounts are created and verified so the
// service layer never sees the credential format.
type Authenticator interface {
	// Register creates an account for email with the given credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that do not meet the
	// implementation's requirements before any account is touched.
	ValidateCredential(credential string) error
}
