// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts HTTP to the user and task services:
// handlers decode a request, call one service method, and map the result or
// error to a status code and JSON body.
package api
