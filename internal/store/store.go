// Package store persists loosely-typed documents in named collections.
// Backends are consulted by key-equality filters only.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Collection names shared by every backend.
const (
	Components      = "components"
	QRCodes         = "qrcodes"
	Payments        = "payments"
	VerifiedUsers   = "verifiedUsers"
	Settings        = "settings"
	FullCompletion  = "completionStud"
	ThreeCompletion = "threeCompletion"
	Users           = "users"
)

// Filter matches documents whose fields equal every given value.
type Filter map[string]any

type Backend interface {
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Count(ctx context.Context, collection string) (int, error)

	// InsertIfAbsent stores doc under key unless a document with that key
	// already exists, reporting whether it inserted. An empty key gets a
	// generated one.
	InsertIfAbsent(ctx context.Context, collection, key string, doc Document) (bool, error)

	// Update merges set into the first document matching filter.
	Update(ctx context.Context, collection string, filter Filter, set Document) error

	Ping(ctx context.Context) error
	Close() error
}
