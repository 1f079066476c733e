// Package vectorstore manages the per-language document collections.
//
// A Store is anything that can run a similarity search and return passages;
// the Manager maps language tags to stores and rejects tags it has no
// collection for. Callers never branch on language themselves: they ask the
// Manager and search whatever comes back.
package vectorstore
