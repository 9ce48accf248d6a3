package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type StorageDriver string

const (
	SqliteStorage   StorageDriver = "sqlite"
	BoltStorage     StorageDriver = "bolt"
	PostgresStorage StorageDriver = "postgres"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Log      Log      `koanf:"log"`
	Calendar Calendar `koanf:"calendar"`
	Storage  Storage  `koanf:"storage"`
	Database Database `koanf:"db"`
	Metrics  Metrics  `koanf:"metrics"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Log struct {
	Level string `koanf:"level"`
	// File enables rotated file logging when not empty.
	File   string `koanf:"file"`
	Stdout bool   `koanf:"stdout"`
	JSON   bool   `koanf:"json"`
}

type Calendar struct {
	// Timezone is an IANA name, e.g. "Europe/Warsaw". "Local" uses the host zone.
	Timezone     string `koanf:"timezone"`
	WeekFirstDay string `koanf:"weekfirstday"`
}

type Storage struct {
	Driver StorageDriver `koanf:"driver"`
	// Path is the database file for the sqlite and bolt drivers.
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Log: Log{
			Level:  "info",
			Stdout: true,
		},
		Calendar: Calendar{
			Timezone:     "Local",
			WeekFirstDay: "sunday",
		},
		Storage: Storage{
			Driver: SqliteStorage,
			Path:   "./storage/caley.db",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "caley",
			Pass:   "",
			Name:   "caley",
			Schema: "public",
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Debugf("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CALEY_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CALEY_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
