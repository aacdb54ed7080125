// Package registry implements the driven.Registry port against the
// Histograph registry HTTP API.
//
// The wire contract, reproduced exactly for compatibility:
//
//   - POST <base>/datasets with the raw dataset descriptor as JSON body;
//     201 means created, 409 means it already existed (both success)
//   - DELETE <base>/datasets/<id>; 200 means deleted
//   - PUT <base>/datasets/<id>/<pits|relations> with a multipart form
//     field "file" carrying the ndjson stream (part content-type
//     application/x-ndjson) and the X-Histograph-Force header; 200 means
//     uploaded
//
// Admin credentials travel in the URL's userinfo component, not in an
// Authorization header, and are re-derived for every request.
package registry
