package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a new client. Field rules are enforced by
// the client aggregate; the command only checks the identifier.
type CreateClientCommand struct {
	clientID kernel.UUID
	fullName string
	phone    string
	email    string

	guard guard.ConstructorGuard
}

func NewCreateClientCommand(clientID kernel.UUID, fullName, phone, email string) (CreateClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return CreateClientCommand{}, err
	}

	return CreateClientCommand{
		clientID: clientID,
		fullName: fullName,
		phone:    phone,
		email:    email,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateClientCommand) FullName() string {
	return c.fullName
}

func (c CreateClientCommand) Phone() string {
	return c.phone
}

func (c CreateClientCommand) Email() string {
	return c.email
}
