/*
Package database provides a record-persistence gateway over pluggable
byte-level storage backends.

A record type is declared once as a schema descriptor: an ordered table of
named attributes, a subset of which forms the identity key that addresses a
record in the store. A Model binds such a descriptor to a registered
database and exposes the record lifecycle:

	Construct  build an instance in memory, no storage access
	Create     construct and persist
	Load       exact lookup by identity key, ErrNotFound on a miss
	LoadOrCreate  load, create from the full parameter set on a miss
	Save       declarative upsert: full replace on hit, create on miss
	Delete     remove by identity key

Save deliberately replaces all non-key attributes: attributes omitted from
the parameter map are cleared on the loaded record, not left as they were.
There is no partial-patch operation.

The load-then-write sequences in LoadOrCreate and Save are not serialized by
this layer. Concurrent calls with the same key may both observe a miss and
both write; the later write wins without an error being raised to the loser.
Callers that need stronger guarantees must add mutual exclusion at the store
boundary themselves.

Databases must be registered before use:

	_ = database.Initialize(dataDir)
	_, _ = database.Register(&database.Database{
		Name:        "main",
		StorageType: "bbolt",
	})

Storage backends register themselves on import:

	import (
		_ "github.com/rowbase/rowbase/database/storage/bbolt"
	)
*/
package database
