package persistence

import (
	"context"

	"storefront/domain/shared"
)

// txKey is the context key for the running multi-collection transaction
type txKey struct{}

// requestIDKey is the context key for the inbound request id
type requestIDKey struct{}

// TxFromContext returns the open transaction on collection, or nil when the
// caller is not inside a MultiCollectionTransaction that covers it.
func TxFromContext(ctx context.Context, collection string) shared.CollectionTx {
	if mt, ok := ctx.Value(txKey{}).(*MultiCollectionTransaction); ok {
		return mt.Tx(collection)
	}
	return nil
}

// TxCollectionsFromContext lists the collections of the running transaction, nil outside one.
func TxCollectionsFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if mt, ok := ctx.Value(txKey{}).(*MultiCollectionTransaction); ok {
		return mt.Collections()
	}
	return nil
}

// ContextWithTx returns a new context carrying mt
func ContextWithTx(ctx context.Context, mt *MultiCollectionTransaction) context.Context {
	return context.WithValue(ctx, txKey{}, mt)
}

// ContextWithRequestID returns a new context carrying the request id
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns "" when no request id is set
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
