package i

import (
	"github.com/beka-birhanu/vinom-maze/identity"
)

type Authenticator interface {
	Register(string, string) error
	SignIn(string, string) (*identity.User, string, error)
}
