// Package state implements persistence for the security panel state.
//
// The Repository interface owns the authoritative alarm status, arming
// status, and sensor set. Three backends satisfy it: MemoryRepository (tests
// and throwaway runs), FileRepository (write-through JSON snapshot on disk),
// and SQLiteRepository (embedded database).
package state
