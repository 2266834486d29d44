// Package domain contains the value types shared across flowkit: process
// instances, step instructions, flow outcomes, the error taxonomy, and the
// lifecycle hook contracts. It has no behavior beyond simple accessors and
// carries no dependencies on the rest of the module.
package domain
