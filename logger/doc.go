// Package logger provides structured logging for engine components, built
// on rs/zerolog. Components log through named loggers obtained from the
// registry, so embedding applications can tune levels per component.
package logger
