package service

import "errors"

var (
	// ErrInvalidConfigID is returned when the order facts carry no config id.
	ErrInvalidConfigID = errors.New("invalid config id")

	// ErrConfigurationInactive is returned when quoting against a
	// configuration that has been deactivated.
	ErrConfigurationInactive = errors.New("configuration is inactive")

	// ErrInvalidQuoteID is returned when a quote ID is empty.
	ErrInvalidQuoteID = errors.New("invalid quote id")

	// ErrEmptyBatch is returned when a batch request contains no orders.
	ErrEmptyBatch = errors.New("batch contains no orders")
)
