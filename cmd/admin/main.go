// Command admin manages users and reference data from the shell.
//
//	admin create-user -username anna -password secret [-inactive]
//	admin set-active -username anna -active=false
//	admin seed -file reference.yaml
//	admin delete-criterion -internal-name season
//	admin delete-place -id 12
//	admin route-details -uuid <uuid> -file details.json   (-file - reads stdin, no file clears)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/app"
	"github.com/yungbote/routesettings-backend/internal/platform/gateway"
)

var errUsage = errors.New("usage: admin <create-user|set-active|seed|delete-criterion|delete-place|route-details> [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type command func(ctx context.Context, a *app.App, args []string, stdin io.Reader, out io.Writer) error

var commands = map[string]command{
	"create-user":      createUser,
	"set-active":       setActive,
	"seed":             seed,
	"delete-criterion": deleteCriterion,
	"delete-place":     deletePlace,
	"route-details":    routeDetails,
}

func run(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	// Admin commands never dispatch builds.
	if os.Getenv("GATEWAY_MODE") == "" {
		_ = os.Setenv("GATEWAY_MODE", gateway.ModeNoop)
	}
	a, err := app.Core(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return cmd(ctx, a, args[1:], stdin, out)
}

func newFlags(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func createUser(ctx context.Context, a *app.App, args []string, _ io.Reader, out io.Writer) error {
	fs := newFlags("create-user", out)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "password (defaults to $ADMIN_PASSWORD)")
	inactive := fs.Bool("inactive", false, "create the account disabled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("create-user: -username and -password are required: %w", errUsage)
	}
	u, err := a.Services.Auth.CreateUser(ctx, *username, *password, !*inactive)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %s (%s) active=%t\n", u.Username, u.ID, u.IsActive)
	return nil
}

func setActive(ctx context.Context, a *app.App, args []string, _ io.Reader, out io.Writer) error {
	fs := newFlags("set-active", out)
	username := fs.String("username", "", "login name")
	active := fs.Bool("active", true, "enable or disable the account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("set-active: -username is required: %w", errUsage)
	}
	if err := a.Services.Auth.SetActive(ctx, *username, *active); err != nil {
		return err
	}
	fmt.Fprintf(out, "user %s active=%t\n", *username, *active)
	return nil
}

func seed(ctx context.Context, a *app.App, args []string, stdin io.Reader, out io.Writer) error {
	fs := newFlags("seed", out)
	path := fs.String("file", "", "YAML reference data file, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, closeFn, err := openInput(*path, stdin)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("seed: -file is required: %w", errUsage)
	}
	defer closeFn()

	file, err := a.Services.Seed.Parse(r)
	if err != nil {
		return err
	}
	res, err := a.Services.Seed.Apply(ctx, file)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "criteria upserted: %d, places created: %d, places skipped: %d\n", res.Criteria, res.PlacesCreated, res.PlacesSkipped)
	return nil
}

func deleteCriterion(ctx context.Context, a *app.App, args []string, _ io.Reader, out io.Writer) error {
	fs := newFlags("delete-criterion", out)
	name := fs.String("internal-name", "", "criterion internal_name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("delete-criterion: -internal-name is required: %w", errUsage)
	}
	if err := a.Services.Criterion.Delete(ctx, *name); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted criterion %s\n", *name)
	return nil
}

func deletePlace(ctx context.Context, a *app.App, args []string, _ io.Reader, out io.Writer) error {
	fs := newFlags("delete-place", out)
	id := fs.Uint("id", 0, "place id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("delete-place: -id is required: %w", errUsage)
	}
	if err := a.Services.Place.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted place %d\n", *id)
	return nil
}

func routeDetails(ctx context.Context, a *app.App, args []string, stdin io.Reader, out io.Writer) error {
	fs := newFlags("route-details", out)
	rawID := fs.String("uuid", "", "route uuid")
	path := fs.String("file", "", "JSON details document, - for stdin; omit to clear")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return fmt.Errorf("route-details: bad -uuid %q: %w", *rawID, errUsage)
	}
	var details []byte
	r, closeFn, err := openInput(*path, stdin)
	if err != nil {
		return err
	}
	if r != nil {
		defer closeFn()
		if details, err = io.ReadAll(r); err != nil {
			return fmt.Errorf("read details: %w", err)
		}
	}
	if err := a.Services.Route.ImportDetails(ctx, id, details); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(string(details))
	fmt.Fprintf(out, "route %s draft=%t\n", id, trimmed == "" || trimmed == "null")
	return nil
}

// openInput returns a nil reader when path is empty.
func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	switch path {
	case "":
		return nil, func() {}, nil
	case "-":
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
