// Package dynamo implements the service repository interfaces against
// DynamoDB. The engagement sets lean on DynamoDB's native string-set ADD
// semantics: unioning recipients into delivered/opened/clicked is a single
// atomic, idempotent UpdateItem.
package dynamo
