// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import "errors"

var (
	// ErrVersionMismatch indicates a persisted document written by another schema version.
	ErrVersionMismatch = errors.New("profile document version mismatch")

	// ErrMalformedDocument indicates a persisted document that is not valid JSON.
	ErrMalformedDocument = errors.New("malformed profile document")

	// ErrInvalidProfile indicates a profile violating an invariant.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrWriterClosed indicates a snapshot submitted after the writer was closed.
	ErrWriterClosed = errors.New("snapshot writer closed")
)
