// Package logger prints diagnostics for shhh commands.
//
// A Logger value carries two switches that mirror the root command's
// --verbose and --debug flags. Info lines need Verbose, debug lines need
// Debug, and warnings and errors are printed to stderr unconditionally.
// Each line is tagged [info], [debug], [warn] or [error].
//
// ErrorfAndReturn prints like Errorf and hands the formatted message back as
// an error, for config subcommands that report and propagate in one step.
//
// The root command builds its Logger in PersistentPreRun. Commands wrap it
// in a spinner-aware requester.Logger, so the retry loop reports decode
// failures through it.
package logger
