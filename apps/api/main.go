package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/mbokela/shule/apps/api/echo"
	"github.com/mbokela/shule/core"
	"github.com/mbokela/shule/core/post"
	"github.com/mbokela/shule/core/student"
	"github.com/mbokela/shule/core/user"
	logsvc "github.com/mbokela/shule/services/logger"
	"github.com/mbokela/shule/storage/database"
	dummydb "github.com/mbokela/shule/storage/database/dummy"
	sqlxrepos "github.com/mbokela/shule/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(std, err)

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	validate, translator := core.NewValidators()
	post.RegisterValidators(validate, translator)
	student.RegisterValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	// set up DB & repos; DEV runs on the in-memory reference repos
	var (
		postRepo    post.Repository
		studentRepo student.Repository
		usrRepo     user.Repository
	)
	if conf.Debug {
		db, err := dummydb.Open()
		errAndDie(std, err)
		postRepo = dummydb.NewPostRepository(db)
		studentRepo = dummydb.NewStudentRepository(db)
		usrRepo = dummydb.NewUserRepository(db)
	} else {
		db, err := database.Open(conf)
		errAndDie(std, err)
		defer db.Close()
		errAndDie(std, database.Ping(db))
		postRepo = sqlxrepos.NewPostRepository(db)
		studentRepo = sqlxrepos.NewStudentRepository(db)
		usrRepo = sqlxrepos.NewUserRepository(db)
	}

	app := echoapi.NewServer(&echoapi.Options{
		Conf:   conf,
		Logger: logger,

		PostSvc:    post.NewService(postRepo),
		StudentSvc: student.NewService(studentRepo),
		UserSvc:    user.NewService(usrRepo, validate),

		Validate:   validate,
		Translator: translator,
	})

	go app.Start()
	std.Printf("serving on %s", conf.Server.Address())

	// block until a shutdown signal arrives, then drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-app.ShutdownSignal():
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		std.Fatalf("graceful shutdown failed: %v", err)
	}
	std.Print("bye")
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
