// Package client models the print shop's customers. A client carries no
// behaviour beyond identification; orders reference it by id.
package client

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient or RestoreClient constructor")

// Client is a customer of the print shop.
type Client struct {
	id       kernel.UUID
	fullName string
	phone    string
	email    *string

	isConstructed bool
}

// NewClient validates and creates a client. email may be empty.
func NewClient(id kernel.UUID, fullName, phone, email string) (*Client, error) {
	c := &Client{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setFullName(fullName),
		c.setPhone(phone),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreClient rebuilds a client from persistence.
func RestoreClient(id kernel.UUID, fullName, phone string, email *string) (*Client, error) {
	var e string
	if email != nil {
		e = *email
	}
	return NewClient(id, fullName, phone, e)
}

func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

func (c *Client) ID() kernel.UUID {
	return c.id
}

func (c *Client) FullName() string {
	return c.fullName
}

func (c *Client) Phone() string {
	return c.phone
}

// Email returns nil when the client has no e-mail address.
func (c *Client) Email() *string {
	if c.email == nil {
		return nil
	}
	e := *c.email
	return &e
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errs.NewValueIsRequiredError("full name")
	}
	c.fullName = fullName
	return nil
}

func (c *Client) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Client) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		c.email = nil
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email is invalid", fmt.Errorf("%q: %w", email, err))
	}
	c.email = &email
	return nil
}
