// Package server serves a pre-rendered page over HTTP and re-renders it
// when watched files change.
//
// The page is rendered once up front and served from memory. A reload
// renders a fresh copy and swaps it in atomically; a failed reload keeps
// serving the previous page.
package server
