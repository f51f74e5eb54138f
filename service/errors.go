package service

import "errors"

var (
	// ErrProductNotFound indicates the product id is not in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrCartItemNotFound indicates no cart line carries the product id.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrCartEmpty is returned by checkout when there is nothing to pay for.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidVariant indicates a size or color the product does not offer.
	ErrInvalidVariant = errors.New("variant not offered for product")
	// ErrEmptyMessage indicates a blank stylist message.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrStylistBusy is returned while a stylist request is pending for the session.
	ErrStylistBusy = errors.New("stylist request already in progress")
	// ErrSceneBusy is returned while a scene visualization is pending for the session.
	ErrSceneBusy = errors.New("scene visualization already in progress")
	// ErrGeneratorUnavailable indicates no AI credentials were configured.
	ErrGeneratorUnavailable = errors.New("generative AI is not configured")
)
