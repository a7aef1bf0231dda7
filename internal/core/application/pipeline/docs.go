// Package pipeline implements the order-intake orchestration pipeline that
// drives the create-order screen.
//
// Field edits flow into the draft store, which synchronously re-derives the
// validation error set and, for pipeline-relevant paths, arms one of two
// debounce channels: serviceability (is the pincode pair servable?) and rate
// (what does this shipment cost?). Rate calculation only runs on top of a
// successful serviceability result, and any transition of serviceability away
// from success discards the held quote.
//
// Because remote calls are debounced but not cancelled, a response started
// for older input can land after newer input exists. Each channel carries a
// monotonically increasing sequence number; a stage commits a response only
// if its sequence still equals the channel's counter, so stale data can never
// overwrite fresher state.
//
// The e-way bill and document registries are independent side channels filled
// by explicit user action, and the submission assembler combines the draft,
// the latest quote, and the resolved address metadata into one create-order
// request.
package pipeline
