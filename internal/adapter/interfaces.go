// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating with
// the stayvault server.
//
// The primary abstraction is [ServerAdapter], which decouples the lock agent
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrForbidden] for 403, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/stayvault/stayvault/models"
)

// ServerAdapter defines transport-agnostic communication with the stayvault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates the lock agent's service account with the server.
	// On success it stores the returned bearer token via SetToken and returns
	// the server-side user record. Returns an error if the request fails or
	// the server responds with a non-2xx status.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CurrentAccessCode fetches the access code of the reservation currently
	// held by the escrow at address. The agent's account must be in the
	// escrow's authorized reader set, otherwise [ErrForbidden] is returned.
	CurrentAccessCode(ctx context.Context, address string) (models.AccessCodeResponse, error)

	// AccessCode fetches the access code issued at the given nonce from the
	// escrow's code history. Returns [ErrNotFound] if no code was issued at
	// that nonce.
	AccessCode(ctx context.Context, address string, nonce uint64) (models.AccessCodeResponse, error)

	// IsAccessCodeActive reports whether the code issued at nonce still opens
	// the lock, i.e. it belongs to the escrow's current occupancy.
	IsAccessCodeActive(ctx context.Context, address string, nonce uint64) (bool, error)

	// MasterCode fetches the property's master access code. Restricted to the
	// vault owner and the platform controller.
	MasterCode(ctx context.Context, address string) (models.AccessCodeResponse, error)
}
