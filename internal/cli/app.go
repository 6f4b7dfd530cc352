// Package cli implements the menuadmin command line: the administrative
// screens of the menu platform as subcommands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/auth"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/config"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/notify"
	adminsvc "github.com/dzhngzturi/qr-menu-management-admin/internal/services/admin"
	tenantsvc "github.com/dzhngzturi/qr-menu-management-admin/internal/services/tenant"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/storage"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/tenant"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var errUsage = errors.New("usage")

// errCancelled is returned when the operator declines a confirmation.
var errCancelled = errors.New("cancelled")

// App wires the client library for one process run.
type App struct {
	cfg   *config.Config
	store storage.Store

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	notifier    notify.Notifier
	client      *api.Client
	session     *auth.Session
	resolver    *tenant.Resolver
	restaurants *adminsvc.RestaurantService
	categories  *tenantsvc.CategoryService
	dishes      *tenantsvc.DishService
	allergens   *tenantsvc.AllergenService

	yes bool
}

func New(cfg *config.Config, store storage.Store, in io.Reader, out, errOut io.Writer) *App {
	notifier := notify.NewWriter(errOut)
	resolver := tenant.NewResolver(store)
	session := auth.NewSession(store)

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := api.NewClient(api.Options{
		BaseURL:         cfg.API.BaseURL,
		HTTPClient:      &http.Client{Timeout: timeout},
		Tenants:         resolver,
		Notifier:        notifier,
		FallbackMessage: cfg.API.FallbackMessage,
	})
	session.Attach(client)

	return &App{
		cfg:         cfg,
		store:       store,
		in:          bufio.NewReader(in),
		out:         out,
		errOut:      errOut,
		notifier:    notifier,
		client:      client,
		session:     session,
		resolver:    resolver,
		restaurants: adminsvc.NewRestaurantService(client),
		categories:  tenantsvc.NewCategoryService(client),
		dishes:      tenantsvc.NewDishService(client),
		allergens:   tenantsvc.NewAllergenService(client),
	}
}

type command struct {
	name  string
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"login", "login --email EMAIL [--password PASSWORD]", (*App).login},
	{"logout", "logout", (*App).logout},
	{"whoami", "whoami", (*App).whoami},
	{"profile", "profile [--name N] [--email E] [--password P --password-confirm P]", (*App).profile},
	{"use", "use SLUG", (*App).use},
	{"restaurants", "restaurants [list | create --name N --slug S | delete ID]", (*App).restaurantsCmd},
	{"restaurant-users", "restaurant-users ID [list | attach --email E --role R [--password P] [--name N] | detach USER_ID]", (*App).restaurantUsersCmd},
	{"categories", "categories [list | create | update ID | delete ID | reorder ID,ID,... | move ID INDEX]", (*App).categoriesCmd},
	{"dishes", "dishes [list | create | update ID | delete ID]", (*App).dishesCmd},
	{"allergens", "allergens [list | create | update ID | delete ID]", (*App).allergensCmd},
}

// Run executes one command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	global := flag.NewFlagSet("menuadmin", flag.ContinueOnError)
	global.SetOutput(a.errOut)
	restaurant := global.String("restaurant", "", "restaurant slug for this run")
	global.BoolVar(&a.yes, "yes", false, "do not ask for confirmation")
	verbose := global.Bool("verbose", false, "log requests to stderr")
	global.Usage = a.usage

	if err := global.Parse(args); err != nil {
		return ExitUsage
	}
	if !*verbose {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	rest := global.Args()
	if len(rest) == 0 {
		a.usage()
		return ExitUsage
	}

	cmd, ok := lookup(rest[0])
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n", rest[0])
		a.usage()
		return ExitUsage
	}

	if *restaurant != "" {
		ctx = tenant.WithPath(ctx, tenant.AdminPath(*restaurant))
	}
	if err := a.session.Restore(ctx); err != nil {
		fmt.Fprintf(a.errOut, "error: %v\n", err)
		return ExitError
	}

	err := cmd.run(a, ctx, rest[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.errOut, "usage: menuadmin %s\n", cmd.usage)
		return ExitUsage
	case errors.Is(err, errCancelled):
		fmt.Fprintln(a.errOut, "cancelled")
		return ExitError
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		// gateway failures have already been reported by the notifier
		fmt.Fprintf(a.errOut, "error: %v\n", err)
	}
	return ExitError
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (a *App) usage() {
	fmt.Fprintln(a.errOut, "usage: menuadmin [--restaurant SLUG] [--yes] [--verbose] COMMAND [ARGS]")
	fmt.Fprintln(a.errOut, "\ncommands:")
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, "  "+c.usage)
	}
	sort.Strings(names)
	fmt.Fprintln(a.errOut, strings.Join(names, "\n"))
}

// confirm asks a yes/no question on the input unless --yes was given.
func (a *App) confirm(question string) error {
	if a.yes {
		return nil
	}
	fmt.Fprintf(a.errOut, "%s [y/N]: ", question)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return errCancelled
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return nil
	}
	return errCancelled
}

// readLine prompts for one line of input.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// requireTenant gates tenant-scoped commands: a session and a resolvable
// restaurant.
func (a *App) requireTenant(ctx context.Context) (string, error) {
	if err := auth.RequireSession(a.session); err != nil {
		return "", err
	}
	slug, ok := a.resolver.Resolve(ctx)
	if !ok {
		return "", errors.New("no restaurant selected; run `menuadmin use SLUG` or pass --restaurant")
	}
	return slug, nil
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func newFlags(name string, errOut io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	return fs
}

// parseFlags parses fs and maps flag errors to usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// splitID takes the leading positional id off args.
func splitID(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("invalid id %q", args[0])
	}
	return id, args[1:], nil
}

func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
