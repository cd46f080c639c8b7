// Package catalog manages the store catalogue document set.
//
// The catalogue is a single JSON document on disk holding a list of
// registered store names plus one free-form document per store. Clients
// own the document content; the server's only structural obligation is
// normalisation, which coerces arbitrary JSON into the canonical document
// shape without ever raising an error. Unknown stores read back as empty
// default documents and are only registered by an explicit write.
//
// All writes are atomic (temp file + rename) and stamp the catalogue's
// last-sync timestamp. The store serialises access internally; callers
// never need to coordinate.
package catalog
