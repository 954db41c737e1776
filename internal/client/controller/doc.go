// Package controller holds the popup's screen logic: a Mirror of the last
// state acknowledged by the background, the busy guard that keeps
// overlapping mutations from being sent, and the actions each screen
// offers. Renderers (tui, cli) only draw the Mirror and call the actions.
package controller
