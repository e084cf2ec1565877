// Package resilience provides retry with exponential backoff for
// transient failures, such as stages that fetch items from remote
// sources. The pipeline package wraps it into a stage decorator; use it
// directly for any other fallible call.
package resilience
