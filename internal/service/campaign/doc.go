// Package campaign implements campaign correlation and engagement tracking
// for inbound events. It resolves a provider event to the outbound campaign
// it belongs to and records delivery/open/click engagement with set
// semantics.
package campaign
