// Package domain defines the core business entities of the task service
// (users and their tasks) together with the validation rules that apply to
// them independently of storage or transport.
package domain
