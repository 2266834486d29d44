// Package steps ships the built-in step handlers: the web-redirect step and
// the identity-verification step. Both extract their own parameters from the
// raw instruction payload; hosts register them under the step identifiers the
// remote engine uses, and may add further handlers of their own.
package steps
