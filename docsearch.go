// Package docsearch provides substring and phrase search over documentation
// sites. It collects a site's pages, extracts structural elements, indexes
// their normalized text in a prefix tree, and serves paginated, highlighted
// snippets over long-lived websocket connections.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, ws/).
package docsearch
