package storefront

import (
	"errors"

	"github.com/Skotchmaster/coffee_shop/internal/session"
	"github.com/Skotchmaster/coffee_shop/pkg/apiclient"
)

var (
	ErrValidation       = errors.New("validation")
	ErrNotAuthenticated = session.ErrNotAuthenticated
	ErrForbidden        = errors.New("admin role required")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotInCart        = errors.New("product not in cart")
	ErrPasswordMismatch = errors.New("new passwords do not match")

	ErrMalformedResponse = apiclient.ErrMalformedResponse
)
