// Package client is the transport to the remote identity and note services.
//
// # Overview
//
// The package provides:
//  1. The Client interface: SendOTP, VerifyOTP, GoogleLogin for the identity
//     service and ListNotes, CreateNote, DeleteNote for the note service.
//  2. HTTPClient, a JSON-over-HTTP implementation. Note calls carry the
//     bearer token passed by the caller; the transport never stores tokens.
//
// # Error Handling
//
// A non-2xx response becomes a *ServiceError carrying the service-reported
// message. 401 and 403 responses match ErrUnauthorized via errors.Is.
// Connection failures and timeouts match ErrUnavailable. MessageOf picks the
// text to show the user.
package client
