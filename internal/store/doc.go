// Package store declares the persistence contracts for users and tasks.
//
// UserStore looks up accounts by ID and username and reports username and
// email collisions as ErrUsernameExists and ErrEmailExists. Every TaskStore
// method except Create takes the owner's ID and matches on it, so a task
// owned by someone else is indistinguishable from a missing one
// (ErrTaskNotFound). Implementations live in internal/platform/postgres.
package store
