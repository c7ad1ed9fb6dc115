// Package build produces the production dist/ directory: static assets
// with cache busting, the compiled app binary, and an asset manifest.
package build
