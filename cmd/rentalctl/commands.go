package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/client/backend"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/session"
)

var (
	errNotLoggedIn = errors.New("not logged in, run: rentalctl login -u <username>")
	errAdminOnly   = errors.New("this command requires an administrator")
)

// Backend — операции бэкенда, которые нужны командам помимо сессии.
type Backend interface {
	ListPlatforms(ctx context.Context) (*backend.Catalogue, error)
	AddCustomPlatform(ctx context.Context, name string) (bool, error)
	ListRentals(ctx context.Context, userID string) ([]*models.Rental, error)
	GetRental(ctx context.Context, id string) (*models.Rental, error)
	CreateRental(ctx context.Context, req models.DummyRental) (*models.Rental, error)
	UpdateRental(ctx context.Context, id string, req models.DummyRental) (*models.Rental, error)
	DeleteRental(ctx context.Context, id string) error
	ReplaceCredentials(ctx context.Context, id string, req models.DummyReplacement) (*models.Rental, error)
	ListReplacements(ctx context.Context, id string) ([]models.Replacement, error)
}

type cli struct {
	manager *session.Manager
	backend Backend
	clock   subscription.Clock
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		c.manager.Logout(ctx)
		fmt.Fprintln(c.stdout, "Logged out")
		return nil
	case "status":
		return c.status()
	case "users":
		return c.users(ctx, rest)
	case "platforms":
		return c.platforms(ctx, rest)
	case "rentals":
		return c.rentals(ctx, rest)
	default:
		fmt.Fprint(c.stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) requireLogin() (models.Session, error) {
	sess, _, ok := c.manager.Current()
	if !ok {
		return models.Session{}, errNotLoggedIn
	}
	return sess, nil
}

func (c *cli) requireAdmin() (models.Session, error) {
	sess, err := c.requireLogin()
	if err != nil {
		return sess, err
	}
	if sess.Role != models.RoleAdmin {
		return sess, errAdminOnly
	}
	return sess, nil
}

func (c *cli) promptPassword(label string) (string, error) {
	fmt.Fprint(c.stdout, label)
	p, err := readPassword(c.stdin)
	fmt.Fprintln(c.stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return p, nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.newFlagSet("login")
	username := fs.String("u", "", "Username")
	passwordFlag := fs.String("p", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		fs.PrintDefaults()
		return errors.New("missing required flag: -u")
	}

	pass := *passwordFlag
	if pass == "" {
		var err error
		if pass, err = c.promptPassword("Password: "); err != nil {
			return err
		}
	}

	sess, err := c.manager.Login(ctx, *username, pass)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Logged in as %s (%s)\n", sess.Username, sess.Role)
	if st, ok := c.manager.SubscriptionStatus(); ok && st.State != models.SubscriptionActive {
		fmt.Fprintf(c.stdout, "Subscription: %s\n", st.Message)
	}
	return nil
}

func (c *cli) status() error {
	sess, trust, ok := c.manager.Current()
	if !ok {
		fmt.Fprintln(c.stdout, "Not logged in")
		return nil
	}
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "User:\t%s\n", sess.Username)
	fmt.Fprintf(w, "Name:\t%s\n", sess.FullName)
	fmt.Fprintf(w, "Role:\t%s\n", sess.Role)
	fmt.Fprintf(w, "Currency:\t%s\n", sess.Currency)
	fmt.Fprintf(w, "Session:\t%s\n", trust)
	if st, ok := c.manager.SubscriptionStatus(); ok {
		fmt.Fprintf(w, "Subscription:\t%s (%s)\n", st.Message, st.State)
	}
	return w.Flush()
}

// userFlags описывает общие флаги users create и users update.
type userFlags struct {
	fs       *flag.FlagSet
	username *string
	password *string
	fullName *string
	role     *string
	currency *string
	start    *string
	months   *int
}

func (c *cli) newUserFlags(name string) *userFlags {
	fs := c.newFlagSet(name)
	return &userFlags{
		fs:       fs,
		username: fs.String("u", "", "Username"),
		password: fs.String("p", "", "Password"),
		fullName: fs.String("name", "", "Full name"),
		role:     fs.String("role", "", "Role: admin or user"),
		currency: fs.String("currency", "", "Currency symbol"),
		start:    fs.String("start", "", "Subscription start date (YYYY-MM-DD)"),
		months:   fs.Int("months", 0, "Subscription duration in months"),
	}
}

func (f *userFlags) startDate() (*time.Time, error) {
	if *f.start == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *f.start)
	if err != nil {
		return nil, fmt.Errorf("invalid -start %q: expected YYYY-MM-DD", *f.start)
	}
	return &t, nil
}

func (f *userFlags) validRole() error {
	switch *f.role {
	case "", models.RoleAdmin, models.RoleUser:
		return nil
	default:
		return fmt.Errorf("invalid -role %q: expected admin or user", *f.role)
	}
}

func (c *cli) users(ctx context.Context, args []string) error {
	sess, err := c.requireAdmin()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: rentalctl users list | create | update <id> | delete <id>")
	}

	switch args[0] {
	case "list":
		users, err := c.manager.ListUsers(ctx)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tSUBSCRIPTION")
		for _, u := range users {
			st := subscription.Status(u.SubscriptionEndDate, now)
			if u.IsAdmin() {
				st.Message = "not required"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.FullName, u.Role, st.Message)
		}
		return w.Flush()

	case "create":
		f := c.newUserFlags("users create")
		if err := f.fs.Parse(args[1:]); err != nil {
			return err
		}
		if *f.username == "" {
			f.fs.PrintDefaults()
			return errors.New("missing required flag: -u")
		}
		if err := f.validRole(); err != nil {
			return err
		}
		start, err := f.startDate()
		if err != nil {
			return err
		}
		pass := *f.password
		if pass == "" {
			if pass, err = c.promptPassword("Password for new user: "); err != nil {
				return err
			}
		}
		if strings.TrimSpace(pass) == "" {
			return errors.New("password cannot be empty")
		}
		u, err := c.manager.CreateUser(ctx, session.NewUser{
			Username:                   *f.username,
			Password:                   pass,
			FullName:                   *f.fullName,
			Role:                       *f.role,
			Currency:                   *f.currency,
			SubscriptionStartDate:      start,
			SubscriptionDurationMonths: *f.months,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "User %s created with ID %s\n", u.Username, u.ID)
		return nil

	case "update":
		if len(args) < 2 {
			return errors.New("usage: rentalctl users update <id> [flags]")
		}
		f := c.newUserFlags("users update")
		if err := f.fs.Parse(args[2:]); err != nil {
			return err
		}
		if err := f.validRole(); err != nil {
			return err
		}
		start, err := f.startDate()
		if err != nil {
			return err
		}
		u, err := c.manager.UpdateUser(ctx, args[1], session.UserUpdate{
			Username:                   *f.username,
			Password:                   *f.password,
			FullName:                   *f.fullName,
			Role:                       *f.role,
			Currency:                   *f.currency,
			SubscriptionStartDate:      start,
			SubscriptionDurationMonths: *f.months,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "User %s updated\n", u.Username)
		return nil

	case "delete":
		if len(args) < 2 {
			return errors.New("usage: rentalctl users delete <id>")
		}
		if err := c.manager.RemoveUser(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "User %s deleted by %s\n", args[1], sess.Username)
		return nil

	default:
		return fmt.Errorf("unknown users command %q", args[0])
	}
}

func (c *cli) platforms(ctx context.Context, args []string) error {
	if _, err := c.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: rentalctl platforms list | add <name>")
	}

	switch args[0] {
	case "list":
		cat, err := c.backend.ListPlatforms(ctx)
		if err != nil {
			return err
		}
		for _, name := range cat.All {
			fmt.Fprintln(c.stdout, name)
		}
		return nil
	case "add":
		if len(args) < 2 {
			return errors.New("usage: rentalctl platforms add <name>")
		}
		name := strings.Join(args[1:], " ")
		added, err := c.backend.AddCustomPlatform(ctx, name)
		if err != nil {
			return err
		}
		if !added {
			fmt.Fprintf(c.stdout, "Platform %q already exists\n", strings.TrimSpace(name))
			return nil
		}
		fmt.Fprintf(c.stdout, "Platform %q added\n", strings.TrimSpace(name))
		return nil
	default:
		return fmt.Errorf("unknown platforms command %q", args[0])
	}
}
