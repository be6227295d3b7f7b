package main

import (
	"bytes"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/gazette/backend"
	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/sqldb"
	"github.com/wansing/gazette/sqldb/mysql"
	"github.com/wansing/gazette/sqldb/sqlite3"
	"github.com/wansing/gazette/util"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
)

const defaultDBArg = "sqlite3:gazette.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared&_fk=1"

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
	var configPath = flag.String("config", "", "read flag values from this ini `file`, explicit flags win")
	flag.StringVar(&dbArg, "db", defaultDBArg, "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", defaultDBArg, "sql database url, see github.com/xo/dburl") // copied from above
	var initInsertUser = initFlags.String("insert-user", "", "creates a user with the given `email` and prompts for a password")
	var initSetPassword = initFlags.String("set-password", "", "prompts for a new password for the user with the given `email`")
	var initGrant = initFlags.String("grant", "", "grants the given `role` to the given user")
	var initRevoke = initFlags.String("revoke", "", "revokes the given `role` from the given user")
	var initVerify = initFlags.String("verify", "", "marks the user with the given `email` as verified")
	var initListUsers = initFlags.Bool("list-users", false, "prints all users")
	var username = initFlags.String("user", "", "specifies a user `email` for -grant and -revoke")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// config file, explicitly set flags win

	if *configPath != "" {
		config, err := util.Ini(*configPath)
		if err != nil {
			log.Printf("could not read config file: %v", err)
			return
		}
		var explicit = make(map[string]bool)
		flag.Visit(func(f *flag.Flag) {
			explicit[f.Name] = true
		})
		for key, value := range config {
			if explicit[key] {
				continue
			}
			if flag.Lookup(key) == nil {
				log.Printf("unknown config key: %s", key)
				return
			}
			if err := flag.Set(key, value); err != nil {
				log.Printf("could not apply config key %s: %v", key, err)
				return
			}
		}
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		log.Printf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		log.Printf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		log.Printf("could not ping sql database: %v", err)
		return
	}

	log.Printf("using database %s", dbURL.String())

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		log.Printf("unknown database backend: %s", dbURL.Driver)
		return
	}

	db := &core.CoreDB{}
	db.UserDB = sqldb.NewUserDB(sqlDB) // articles reference users, so this table comes first
	db.CategoryDB = sqldb.NewCategoryDB(sqlDB)
	db.ArticleDB = sqldb.NewArticleDB(sqlDB)

	if err := db.Init(sessionStore, *base); err != nil {
		log.Println(err) // log.Fatalln would not run deferred functions
		return
	}

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	// init

	if initFlags.Parsed() {
		switch {
		case *initInsertUser != "":
			insertUser(db, *initInsertUser)
		case *initSetPassword != "":
			setPassword(db, *initSetPassword)
		case *initGrant != "":
			grant(db, *username, *initGrant)
		case *initRevoke != "":
			revoke(db, *username, *initRevoke)
		case *initVerify != "":
			verify(db, *initVerify)
		case *initListUsers:
			listUsers(db)
		default:
			initFlags.Usage()
		}
		return
	}

	listen(db, *listenAddr, *base)
}

func readPassword() (string, bool) {

	fmt.Printf("password: ")
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return "", false
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return "", false
	}

	if !bytes.Equal(pass1, pass2) {
		log.Printf("passwords don't match")
		return "", false
	}

	return string(pass1), true
}

func insertUser(db *core.CoreDB, email string) {

	pass, ok := readPassword()
	if !ok {
		return
	}

	user, err := db.InsertUser(email)
	if err != nil {
		log.Printf("error creating user %s: %v", email, err)
		return
	}

	if err := db.SetPassword(user, pass); err != nil {
		log.Printf("error setting password: %v", err)
		return
	}
}

func setPassword(db *core.CoreDB, email string) {

	user, err := db.GetUserByEmail(email)
	if err != nil {
		log.Printf("error getting user %s: %v", email, err)
		return
	}

	pass, ok := readPassword()
	if !ok {
		return
	}

	if err := db.SetPassword(user, pass); err != nil {
		log.Printf("error setting password: %v", err)
		return
	}
}

func grant(db *core.CoreDB, email string, role string) {

	if email == "" {
		log.Printf("-grant requires -user")
		return
	}

	user, err := db.GetUserByEmail(email)
	if err != nil {
		log.Printf("error getting user %s: %v", email, err)
		return
	}

	if err := db.GrantRole(user, role); err != nil {
		log.Printf("error granting %s: %v", role, err)
		return
	}
}

func revoke(db *core.CoreDB, email string, role string) {

	if email == "" {
		log.Printf("-revoke requires -user")
		return
	}

	user, err := db.GetUserByEmail(email)
	if err != nil {
		log.Printf("error getting user %s: %v", email, err)
		return
	}

	if err := db.RevokeRole(user, role); err != nil {
		log.Printf("error revoking %s: %v", role, err)
		return
	}
}

func verify(db *core.CoreDB, email string) {

	user, err := db.GetUserByEmail(email)
	if err != nil {
		log.Printf("error getting user %s: %v", email, err)
		return
	}

	if err := db.SetVerified(user, true); err != nil {
		log.Printf("error verifying user: %v", err)
		return
	}
}

func listUsers(db *core.CoreDB) {
	users, err := db.GetAllUsers(1000, 0)
	if err != nil {
		log.Printf("error listing users: %v", err)
		return
	}
	for _, u := range users {
		fmt.Printf("%d\t%s\tverified: %t\troles: %s\n", u.ID(), u.Email(), u.Verified(), strings.Join(u.Roles(), ", "))
	}
}

func listen(db *core.CoreDB, addr string, base string) {

	var waitingControllers sync.WaitGroup
	var router = backend.NewRouter(db, base)

	var mux = http.NewServeMux()
	util.HandlePrefix(mux, base+"/static", http.FileServer(http.Dir("static")))
	util.HandlePrefix(
		mux,
		base,
		http.HandlerFunc(
			func(w http.ResponseWriter, req *http.Request) {
				waitingControllers.Add(1)
				defer waitingControllers.Done()
				router.ServeHTTP(w, req)
			},
		),
	)

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      db.SessionManager.LoadAndSave(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")
	httpSrv.Close()

	waitingControllers.Wait()
}
