// Package protocol defines the string-tagged messages exchanged between the
// popup and the background store, and their google.protobuf.Struct wire
// form.
//
// Requests carry an id; the reply to a request carries the same id, which
// is what lets the popup match an acknowledgement to the action it sent.
//
//	request:  {"id": "…", "action": "STORE_SECRET", "payload": "abc"}
//	response: {"id": "…", "action": "SET_STATE",
//	           "payload": {"secret": "abc", "initialized": true, "authenticated": false}}
package protocol
