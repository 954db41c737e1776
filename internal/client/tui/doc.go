// Package tui renders the popup as a bubbletea program. The model draws the
// controller's Mirror and turns key presses into controller actions, which
// run as commands off the update loop.
package tui
