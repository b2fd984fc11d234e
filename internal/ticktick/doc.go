// Package ticktick provides a client for the TickTick Open API.
//
// The client wraps the v1 REST endpoints for projects and tasks
// (https://api.ticktick.com/open/v1) and authenticates with an OAuth2
// access token. It converts the wire format into typed structs so that
// the rest of the application never re-checks record shapes.
//
// The special project ID "inbox" denotes the synthetic, always-present
// inbox collection; GetProjectWithData handles it transparently.
package ticktick
