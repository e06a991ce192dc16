// Package client is the HTTP transport of the sharelink client.
//
// # Overview
//
// The package provides:
//  1. The Client interface the workflows depend on: Submit, FetchMetadata
//     and DownloadURL.
//  2. HTTPClient, an implementation over go-resty that speaks the backend
//     contract:
//
//	POST /api/v1/upload             multipart, a single "file" or "text" field
//	GET  /api/v1/meta/{shortId}     JSON metadata
//	GET  /api/v1/download/{shortId} raw content (only the URL is built here)
//
// # Error Handling
//
// Every failure is a *TransportError carrying the HTTP status (0 for network
// failures) and the server's message when it sent one. Responses that do not
// have the expected shape fail closed with common.ErrMalformedResponse.
// Match the cause with errors.Is: common.ErrUnavailable,
// common.ErrorNotFound, common.ErrMalformedResponse.
//
// No call is retried.
package client
