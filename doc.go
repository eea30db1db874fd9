// Package gremlex is a client library for Apache TinkerPop Gremlin servers.
//
// The library has three layers:
//
// Traversal layer (package traversal):
//   - Fluent, immutable traversal builder recording steps as values
//   - Encoder compiling step sequences to Gremlin-Groovy source with
//     injection-safe quoting and anonymous-traversal handling
//
// Protocol layer (packages protocol and graphson):
//   - Request envelopes with per-submission UUID correlation ids
//   - Response assembly across 206 continuations, keep-alive control
//     frames and stale frames from abandoned requests
//   - GraphSON-v3 typed-JSON decoding into graph domain values
//
// Connection layer (package client):
//   - Long-lived workers, each owning one websocket with keep-alive
//     pings and background reconnect
//   - A fixed-size pool with optional overflow workers fronting them
//
// A minimal session:
//
//	cfg := config.DefaultConfig("gremlin.example.com")
//	c, err := client.New(cfg)
//	if err != nil { ... }
//	if err := c.Start(ctx); err != nil { ... }
//	defer c.Close()
//
//	values, err := c.Query(ctx, traversal.Root().V().HasLabel("person").Count())
//
// Queries either return decoded values or a typed error; the library never
// retries a failed query on the caller's behalf.
package gremlex
