// Package prompt collects device configuration values interactively. The
// Collector walks a device definition section by section and asks a
// PromptDriver for each field; SurveyDriver backs it with a real terminal.
package prompt
