// Package client provides a Go SDK for the storefront listing API.
//
// The listing API is the read side of the storefront backend: it returns the
// full product catalog and the category list as JSON. The storefront search
// box loads both once per session and searches them in memory.
//
// # Quick Start
//
//	c := client.New(client.WithBaseURL("https://shop.example.com/api"))
//	products, err := c.ListProducts(ctx)
//	categories, err := c.ListCategories(ctx)
//
// # Envelopes
//
// Backends rarely return a bare array. Selectors are jq expressions that pick
// the item array out of the response:
//
//	c := client.New(
//	    client.WithProductsSelector(".data.items"),
//	    client.WithCategoriesSelector(".data"),
//	)
//
// A selector that evaluates to null, e.g. a misspelled key, is rejected like
// any other malformed payload. An empty catalog must be sent as [].
//
// # Validation
//
// Items are checked against a JSON Schema reflected from [Product] and
// [Category] before decoding. A payload that is not JSON, that does not contain
// an array at the selector, or whose items have the wrong shape (a missing id,
// a numeric title) is rejected with an error wrapping [ErrMalformedPayload];
// a partially decoded list is never returned.
//
// # Errors
//
// Transport failures and HTTP statuses >= 400 are reported as *[ServiceError]:
//
//	var svcErr *client.ServiceError
//	if errors.As(err, &svcErr) && svcErr.Unauthorized() {
//	    // refresh the token
//	}
package client
