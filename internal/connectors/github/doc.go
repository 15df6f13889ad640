// Package github searches public GitHub repositories as reference material.
//
// The provider runs only when a token is configured. Unauthenticated search
// is limited to 10 requests per minute, which a shared CLI would exhaust.
//
// # Authentication
//
// Personal access tokens (classic or fine-grained) are sent through an
// oauth2 static token source. No scopes are required for public search.
//
// # Rate Limiting
//
// The search API allows 30 requests per minute per token. The client applies
// two strategies:
//
//  1. Proactive throttling: a token bucket of one request every two seconds.
//
//  2. Reactive handling: X-RateLimit-Remaining and X-RateLimit-Reset are
//     tracked, and once the quota is spent requests fail fast until the reset
//     instead of sleeping past the caller's deadline.
//
// # Items
//
// Each repository becomes a reference item whose citation count is its
// stargazer count, so widely used projects score higher.
package github
