// Package ports defines the interfaces between the flowkit core and its
// host-provided collaborators: the UI presenter, step handlers, the process
// directory, and pending-trigger storage. Adapters for the common cases live
// under pkg/adapters; hosts are free to supply their own implementations.
package ports
