// Package dom is the in-memory document tree the renderer materializes
// virtual nodes into. It models the subset of the platform DOM the runtime
// needs: elements with attributes and listeners, text nodes, fragments for
// batched insertion, bubbling event dispatch, and an HTML serializer used by
// tooling and tests.
package dom
