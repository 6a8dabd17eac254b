// Package dict reads and annotates the external dictionary database.
//
// The Store wraps a SQLite connection to the dict_index table. It never
// creates, migrates, or deletes anything: the database belongs to the reader
// application, and the only mutation jlptag performs is a batched, conditional
// update of the level column inside a single transaction. Schema expectations
// are verified up front so a wrong or stale database fails before any scan
// starts.
package dict
