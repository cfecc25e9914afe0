package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"billdesk/internal/config"
)

// Schema migration runner. Wraps golang-migrate with the project's config
// so the DSN never has to be typed on the command line.
//
//	migrate [-dir db/migrations] up
//	migrate down
//	migrate steps -2
//	migrate force 3
//	migrate version

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [-dir path] <up|down|steps N|force V|version>")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	dir := flag.String("dir", "db/migrations", "directory holding the .sql migration files")
	flag.Usage = usage
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: load config: %v", err)
	}

	m, err := migrate.New("file://"+*dir, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: open source %s: %v", *dir, err)
	}
	defer m.Close()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	switch args[0] {
	case "up":
		report(m.Up(), "schema is up to date")
	case "down":
		report(m.Down(), "schema fully reverted")
	case "steps":
		n := intArg(args, "steps")
		report(m.Steps(n), fmt.Sprintf("moved %+d steps", n))
	case "force":
		v := intArg(args, "force")
		if err := m.Force(v); err != nil {
			log.Fatalf("migrate: force %d: %v", v, err)
		}
		log.Printf("version forced to %d", v)
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied yet")
			return
		}
		if err != nil {
			log.Fatalf("migrate: version: %v", err)
		}
		fmt.Printf("%d (dirty=%v)\n", v, dirty)
	default:
		usage()
	}
}

// report treats ErrNoChange as success so repeated runs stay quiet.
func report(err error, done string) {
	switch {
	case err == nil:
		log.Println(done)
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("no pending changes")
	default:
		log.Fatalf("migrate: %v", err)
	}
}

func intArg(args []string, cmd string) int {
	if len(args) < 2 {
		log.Fatalf("migrate: %s needs a numeric argument", cmd)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("migrate: %s: %q is not a number", cmd, args[1])
	}
	return n
}
