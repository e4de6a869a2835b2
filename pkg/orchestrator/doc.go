// Package orchestrator wires the source → transformer → form → renderer
// pipeline behind a single entry point. Sources yield descriptor documents
// (files, embedded filesystems, OpenAPI operations or in-memory values);
// transformers patch the document before a form is built from it.
package orchestrator
