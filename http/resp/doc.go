/*

The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

At its center sits the Envelope, a mutable builder collecting the outcome of
handling a request - did it succeed, what should the client hear about it,
which errors and inputs ride along - and compiling all of it into one
predictable JSON payload.

resp provides two main ways of responding to an HTTP request:
- rendering an Envelope as JSON data
- redirecting

*/
package resp
