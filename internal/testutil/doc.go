// Package testutil provides testing utilities and fake Pinterest endpoints
// for the go-pinterest module: a token endpoint, an API server speaking the
// v1 response envelope, and token generators.
package testutil
