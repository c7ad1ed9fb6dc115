// Package templates contains the project scaffolds used by `veld create`.
package templates
