// Package repository contains data access for the marketplace tables.
// The backing store is the marketplace data API, which exposes row-level
// create/read/update/delete per table with autocommit semantics; no
// transaction spanning more than one table is available to this service.
// Repositories therefore never open a *sql.Tx across entities — callers
// that need multi-table atomicity (the booking flow) sequence single-row
// writes and compensate on partial failure.
//
// This file defines sentinel errors reused across repositories so
// handlers and services can distinguish failure cases without string
// matching.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.  It wraps
// the common case of sql.ErrNoRows so callers outside this package do
// not need to import database/sql.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write cannot proceed because of
// dependent state, such as deleting an event that a booking still
// references.
var ErrConflict = errors.New("conflict")
