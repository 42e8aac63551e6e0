// Package config implements the configuration tree that declares sampling
// domains. A Node is one of null, boolean, number, string, array or object;
// objects are looked up by exact key and remember declaration order so
// rendered documents stay stable. Parse reads JSON or YAML documents and
// Select narrows a document with a jq expression.
package config
