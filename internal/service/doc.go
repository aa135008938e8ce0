// Package service implements the application's use cases on top of the
// store interfaces: registering and authenticating users, and managing the
// tasks that belong to them.
//
// Services never leak a task across owners. Every task operation takes the
// authenticated owner ID and passes it down to the store, which treats a task
// owned by someone else exactly like a task that does not exist.
package service
