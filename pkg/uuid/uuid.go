// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to generate Version 7 values, which keep
PostgreSQL B-tree indexes compact because consecutive inserts land on
adjacent pages.

This is the mandatory ID type for all primary keys in the Kaminari ecosystem.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// IsValid reports whether value parses as any RFC 4122 UUID.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
