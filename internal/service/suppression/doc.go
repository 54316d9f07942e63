// Package suppression implements the suppression manager.
//
// This is the single source of truth for whether an email address should
// receive mail. Entries flow in exclusively from verified hard-failure
// events (permanent bounces and spam complaints) and are checked before
// every send by the outbound subsystem.
//
// Suppressing an address is the only place in the pipeline where a
// destructive delete occurs: the subscriber record is removed alongside the
// suppression upsert. Both steps are idempotent so a redelivered event, or
// a retry after a partial failure, converges to the same state.
//
// The service layer contains pure business logic and depends on the
// repository interfaces defined in repository.go. It never imports
// net/http or the AWS SDK directly.
package suppression
