package common

import "github.com/go-playground/validator/v10"

// Validate is the shared validator for request fields that gin binding tags do not cover.
var Validate = validator.New(validator.WithRequiredStructEnabled())
