// Package client implements the request client for the remote API server.
//
// A Client is constructed once from raw connection options and is immutable
// afterwards. It exposes verb helpers (Get, Post, Put, Delete), a raw
// Request method, a JSON-RPC Call method, and Connect for opening a
// persistent socket. Responses are normalized into a small set of outcomes:
// a raw JSON value, an absent result (404), or a typed error.
//
//	c, err := client.New(options.URL("https://api.example.com/v1/"))
//	if err != nil {
//	    return err
//	}
//	body, err := c.Get(ctx, "accounts/42", nil)
//	if err != nil {
//	    return err
//	}
//	if body == nil {
//	    // not found
//	}
package client
