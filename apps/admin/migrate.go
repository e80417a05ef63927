package main

import (
	"errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/storage/kv/pgkv"
)

var (
	migrateFunc = pgkv.Migrate // mockable

	errNotPostgres = errors.New("migrate requires the postgres storage engine")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.conf.Storage.Engine != core.StoragePostgres {
		return errNotPostgres
	}
	db, err := cli.openDB()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	return migrateFunc(db, args[0], args[1:]...)
}
