// Package web hosts the browser-facing ecohome service: the root handler,
// middleware chain and HTTP server lifecycle. Feature behavior lives in
// modules; this package only wires stores and resolvers into them.
package web
