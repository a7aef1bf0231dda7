// Package services contains domain services for the order-intake subsystem.
//
// DraftValidator is the validation engine for in-progress order drafts: a pure
// derivation from a draft snapshot to a structured error set. It covers local
// rules only; remote facts (serviceability, rate) are checked separately at
// submit time because they are asynchronous and not a function of the draft
// alone.
package services
