package service

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	// ErrIngredientInUse blocks deletion of an ingredient that a recipe
	// still references, preserving recipe integrity.
	ErrIngredientInUse = errors.New("ingredient is referenced by a recipe")

	// ErrNotImplemented marks declared-but-unbuilt operations, returned
	// instead of partial results.
	ErrNotImplemented = errors.New("not implemented")
)
