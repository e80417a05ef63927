package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/edutrack/core"
	logsvc "github.com/trezcool/edutrack/services/logger"
	"github.com/trezcool/edutrack/storage"
	"github.com/trezcool/edutrack/storage/kv"
	"github.com/trezcool/edutrack/storage/kv/pgkv"
)

func main() {
	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatalf("loading config: %v", err)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	validate, translator := core.NewValidator()

	// start CLI
	cli := &commandLine{
		conf:      conf,
		logger:    logger,
		out:       os.Stdout,
		openStore: func() (kv.Store, error) { return storage.Open(conf) },
		openDB:    func() (*sql.DB, error) { return pgkv.Connect(conf.Storage.DSN) },

		validate:   validate,
		translator: translator,
	}
	err = cli.run(os.Args)
	if cErr := cli.close(); cErr != nil {
		logger.Error("closing store", cErr)
	}
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
