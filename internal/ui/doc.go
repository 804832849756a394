// Package ui provides semantic text formatting for CLI output.
//
// Formatters render colorized text when the terminal supports it and fall
// back to plain text decorations otherwise:
//
//	ui.Code.Sprint("shhh create")   // `shhh create`
//	ui.Link.Sprint(link)            // <https://...>
//	ui.Highlight.Sprint("3 days")   // '3 days'
//	ui.Muted.Sprint("expired")      // (expired)
//
// Colors are disabled when NO_COLOR is set or fatih/color detects a
// terminal without color support.
package ui
