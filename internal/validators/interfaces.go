// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for the payloads accepted by
// the server and produced by the client.
//
// Rules live in `validate` struct tags on the models and are enforced with
// go-playground/validator. Two custom tags are registered:
//   - content_type: the value is a known [models.ContentType].
//   - notblank: the string is not empty after trimming spaces.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named struct fields.
	Validate(context.Context, any, ...string) error
}
