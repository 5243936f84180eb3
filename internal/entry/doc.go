// Package entry defines the index records produced by documentation parsers.
//
// Type is the closed vocabulary of symbol kinds the Dash docset format
// understands; Entry is the (name, type, path) triple written to the search
// index and, when the path carries a fragment, handed to the anchor patcher.
// Ref renders the apple_ref identifier Dash uses to build per-page tables of
// contents.
package entry
