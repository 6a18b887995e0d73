package main

import (
	"log"
	"os"

	"github.com/mbokela/shule/core"
	"github.com/mbokela/shule/storage/database"
	dummydb "github.com/mbokela/shule/storage/database/dummy"
	sqlxrepos "github.com/mbokela/shule/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	cli := commandLine{}
	if conf.Debug {
		db, err := dummydb.Open()
		errAndDie(err)
		cli.usrRepo = dummydb.NewUserRepository(db)
	} else {
		db, err := database.Open(conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(database.Ping(db))
		cli.db = db
		cli.usrRepo = sqlxrepos.NewUserRepository(db)
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
