package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/config"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/shopadmin/internal/client/services"
	"github.com/dmitrijs2005/shopadmin/internal/filex"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

type App struct {
	config *config.Config
	svc    *services.Services
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	products listState
	partners listState
}

// listState is the local UI state of a paginated list screen.
type listState struct {
	query string
	page  int
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(os.Stderr, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(ctx, c.ServerBaseURL, cookies.NewSQLiteRepository(db), log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(c, services.New(apiClient, db, log), log, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, svc *services.Services, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		svc:      svc,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		products: listState{page: 1},
		partners: listState{page: 1},
	}
}

// Run restores the previous session, starts the session watcher and blocks
// in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	var watcher sync.WaitGroup
	// Deferred in reverse: stop the watcher, wait for it, then close the DB.
	defer a.close()
	defer watcher.Wait()
	defer cancel()

	a.log.Info(ctx, "starting", "server", a.config.ServerBaseURL, "db", a.config.DBPath)
	a.println("shopadmin (type 'help' for commands)")
	a.svc.Session.Restore(ctx)
	if id, ok := a.svc.Session.Identity(); ok {
		a.printf("Welcome back, %s\n", id.Name)
	}

	watcher.Add(1)
	go func() {
		defer watcher.Done()
		a.svc.Session.Watch(ctx, a.config.SessionCheckInterval)
	}()

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) status() string {
	id, ok := a.svc.Session.Identity()
	if !ok {
		return "anonymous"
	}
	return fmt.Sprintf("%s %s", id.Email, id.Role)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn() bool {
	return a.svc.Session.IsAuthenticated()
}

func (a *App) role() models.Role {
	return a.svc.Session.Role()
}
