// Package util provides utility functions for the inventory system.
package util

import (
	"github.com/google/uuid"
)

// NewProductID returns a random RFC 4122 version 4 identifier for products
// added without an explicit ID.
func NewProductID() string {
	return uuid.NewString()
}

// UniqueProductID draws identifiers until taken reports one as free.
func UniqueProductID(taken func(string) bool) string {
	for {
		id := NewProductID()
		if taken == nil || !taken(id) {
			return id
		}
	}
}
