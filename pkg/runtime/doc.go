// Package runtime is the hooks runtime and mount entry point.
//
// Components are functions (or Render-able values) that run inside a Scope.
// Hook state lives in the scope's slot table, addressed purely by call
// order, which is why hooks must never run inside conditionals or loops
// whose shape changes between renders. DebugMode makes order violations
// panic at the offending call.
//
// There is no diffing: a state update re-runs the component and replaces
// its materialized subtree wholesale, while child component scopes (and
// their hook state) are reused by render position and component identity.
// All runtime work is serialized on a loop.Loop.
package runtime
