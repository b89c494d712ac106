// Package prompt implements the line-based question loop used by the
// interactive rip session: free-text answers with validation and defaults,
// numbered menus and yes/no confirmations.
package prompt
