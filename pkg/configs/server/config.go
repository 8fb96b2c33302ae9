// Package server reads the configuration file of taskboardd.
//
// # Example
//
//	server:
//	  port: "8080"
//	db:
//	  driver: postgres
//	  uri: postgres://taskboard@localhost:5432/taskboard
//	  schemaRepository: /etc/taskboard/schema/postgres
//	mock:
//	  seed: true
package server

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// EnvDBURI overrides db.uri.
	EnvDBURI = "TASKBOARD_DB_URI"

	// EnvPort overrides server.port.
	EnvPort = "TASKBOARD_PORT"
)

type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
	Memory   Driver = "memory"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DBConfig struct {
	Driver Driver `yaml:"driver"`

	// connection string for postgres, or file path for sqlite.
	URI string `yaml:"uri"`

	// directory of versioned schema. postgres only.
	SchemaRepository string `yaml:"schemaRepository,omitempty"`
}

type MockConfig struct {
	// load the demo board on the memory store.
	Seed bool `yaml:"seed"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Mock   MockConfig   `yaml:"mock"`
}

// Load reads the config file at filepath, then applies environment overrides.
func Load(filepath string) (*Config, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	conf, err := Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return conf.WithEnv(os.LookupEnv)
}

// Unmarshal parses conf and fills defaults.
//
// Defaults are port "8080" and the memory driver.
func Unmarshal(conf []byte) (*Config, error) {
	out := Config{
		Server: ServerConfig{Port: "8080"},
		DB:     DBConfig{Driver: Memory},
	}
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithEnv returns a copy of c with values from lookup (os.LookupEnv, usually).
func (c Config) WithEnv(lookup func(string) (string, bool)) (*Config, error) {
	if uri, ok := lookup(EnvDBURI); ok && uri != "" {
		c.DB.URI = uri
	}
	if port, ok := lookup(EnvPort); ok && port != "" {
		c.Server.Port = port
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Config) validate() error {
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || 65535 < p {
		return fmt.Errorf("server.port: not a port number: %q", c.Server.Port)
	}
	switch c.DB.Driver {
	case Postgres, SQLite:
		if c.DB.URI == "" {
			return fmt.Errorf("db.uri: required for driver %s", c.DB.Driver)
		}
	case Memory:
	default:
		return fmt.Errorf("db.driver: unknown: %q (postgres|sqlite|memory)", c.DB.Driver)
	}
	return nil
}
