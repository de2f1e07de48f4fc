// Package driving defines the interfaces through which callers drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and any embedding application depend on these interfaces;
// core services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
