// Package logging provides the logging helpers used by the phoenixgen CLI.
//
// Two kinds of output are produced:
//   - Debug logging: structured records written through slog
//   - User output: short status lines for whoever runs the command
//
// # Debug Logging
//
// Records go to the writer passed to Setup, which is stderr for the CLI:
//
//	logging.Debug("resolving device", "device", key, "renderer", name)
//	logging.Warn("preset skipped", "file", path)
//
// # User Output
//
//	logging.UserInfo("Rendering %s...", key)
//	logging.UserSuccess("Snippet written to %s", path)
//	logging.UserWarning("No TTY detected, falling back to prompts")
//	logging.UserError("Render failed: %v", err)
//
// UserInfo and UserSuccess write to Stdout, UserWarning and UserError write
// to Stderr. Both writers are package variables so commands and tests can
// redirect them.
package logging
