// Package main hosts the doc2dash CLI entrypoint and command graph.
//
// The root command converts a documentation directory into a Dash docset;
// subcommands scaffold and validate configuration and report which parser
// recognizes a directory. Conversion logic lives in the internal packages,
// this package only resolves flags against configuration and wires them
// together.
package main
