package db

import (
	kschema "github.com/taskboard/taskboard/pkg/domain/schema/db"
	ktask "github.com/taskboard/taskboard/pkg/domain/task/db"
	kuser "github.com/taskboard/taskboard/pkg/domain/user/db"
)

// Database is a storage of taskboard.
type Database interface {
	Users() kuser.UserInterface
	Tasks() ktask.TaskInterface
	Schema() kschema.SchemaInterface
	Close() error
}
