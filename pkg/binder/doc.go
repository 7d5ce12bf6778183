// Package binder parses HTTP requests into typed structs.
//
// Two binders are provided: BindJSON for request bodies and BindQuery for
// URL query parameters. Both are strict by design. BindJSON rejects unknown
// body fields and trailing data; BindQuery rejects query parameters that no
// struct field declares. Strictness keeps the API surface a whitelist:
// clients sending unexpected input get a 400 instead of silent acceptance.
//
// Query fields are declared with `query` struct tags:
//
//	type ListRequest struct {
//		Page   int    `query:"page"`
//		Search string `query:"search"`
//		Sort   string `query:"sortBy"`
//	}
package binder
