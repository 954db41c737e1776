// Package cli renders the popup as a line-oriented prompt for terminals
// where a full-screen UI is unwanted, such as pipes.
//
// The current screen is re-printed every time the controller's Mirror
// changes. Commands:
//
//	next          continue (setup: choose password; login: sign in)
//	reset         wipe the vault (login screen)
//	regenerate    replace the secret (secret screen)
//	logout        sign out (secret screen)
//	help          list commands available on this screen
//	exit | quit   leave
//
// Passwords are read without echo when stdin is a terminal.
package cli
