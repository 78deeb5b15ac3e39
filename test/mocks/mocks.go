// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/cart.go -destination=cart_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/catalog.go -destination=catalog_mock.go -package=mocks
