// Package connection provides the HTTP client voteledger-cli uses to
// talk to a voteledger-server instance.
//
// The client wraps the server's JSON envelope format: successful
// responses unwrap the data field into a typed result, error
// responses surface as *APIError carrying the server's error code.
package connection
