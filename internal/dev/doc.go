// Package dev implements the development server behind `veld dev`.
//
// It serves the build output over a chi router with metrics and tracing
// middleware, watches the project for changes, and pushes typed reload
// messages to connected browsers over a websocket at /_veld/reload. Served
// HTML pages get a small client script injected that reacts to those
// messages: full reloads for code changes, in-place stylesheet swaps for
// CSS, and an error overlay for build failures.
package dev
