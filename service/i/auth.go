package i

import (
	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/google/uuid"
)

// ViewerAuthenticator is an interface for authenticating a playback client
// token.
type ViewerAuthenticator interface {
	Authenticate([]byte) (uuid.UUID, error)
}

// Authenticator handles user registration and sign-in.
type Authenticator interface {
	Register(string, string) error
	SignIn(string, string) (*dmn.User, string, error)
}
