// Package domain contains the domain models of taskboard and their rules.
//
// `domain/ENTITY.go` has the entity types and the validation of their specs.
// For example, `domain/task.go` describes `Task`.
//
// `domain/ENTITY/db` exposes the storage interface of the entity,
// and `domain/ENTITY/db/BACKEND` implements it.
//
// `domain/taskboard` bundles the storage interfaces into a single root object,
// which entrypoints instantiate from configuration.
//
// # Entities
//
// - `user`: people who create tasks and are assigned to them.
// Users must be adults, and they cannot be removed while they are referred by tasks.
//
// - `task`: a unit of work with a deadline, tags, a priority and a status.
// Status moves freely between PENDING, IN_PROGRESS, COMPLETED and CANCELLED.
package domain
