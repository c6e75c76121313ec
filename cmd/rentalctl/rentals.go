package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/client/backend"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

// rentalFlags описывает флаги rentals create и rentals update.
type rentalFlags struct {
	fs       *flag.FlagSet
	user     *string
	platform *string
	customer *string
	kind     *string
	profile  *string
	email    *string
	password *string
	price    *float64
	months   *int
	start    *string
	notes    *string
}

func (c *cli) newRentalFlags(name, defaultStart string) *rentalFlags {
	fs := c.newFlagSet(name)
	return &rentalFlags{
		fs:       fs,
		user:     fs.String("user", "", "Owner user ID (admin only)"),
		platform: fs.String("platform", "", "Streaming platform"),
		customer: fs.String("customer", "", "Customer name"),
		kind:     fs.String("type", models.AccountTypeFull, "Account type: full or profile"),
		profile:  fs.String("profile", "", "Profile name for profile rentals"),
		email:    fs.String("email", "", "Account email"),
		password: fs.String("password", "", "Account password"),
		price:    fs.Float64("price", 0, "Price"),
		months:   fs.Int("months", 1, "Duration in months"),
		start:    fs.String("start", defaultStart, "Start date (YYYY-MM-DD)"),
		notes:    fs.String("notes", "", "Notes"),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// request собирает тело запроса из флагов.
func (f *rentalFlags) request() models.DummyRental {
	return models.DummyRental{
		UserID:          *f.user,
		Platform:        *f.platform,
		CustomerName:    *f.customer,
		AccountType:     *f.kind,
		ProfileName:     optional(*f.profile),
		AccountEmail:    *f.email,
		AccountPassword: *f.password,
		Price:           *f.price,
		Duration:        *f.months,
		StartDate:       *f.start,
		Notes:           optional(*f.notes),
	}
}

// overlay переносит на запрос только явно заданные флаги.
func (f *rentalFlags) overlay(req *models.DummyRental) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "platform":
			req.Platform = *f.platform
		case "customer":
			req.CustomerName = *f.customer
		case "type":
			req.AccountType = *f.kind
		case "profile":
			req.ProfileName = optional(*f.profile)
		case "email":
			req.AccountEmail = *f.email
		case "password":
			req.AccountPassword = *f.password
		case "price":
			req.Price = *f.price
		case "months":
			req.Duration = *f.months
		case "start":
			req.StartDate = *f.start
		case "notes":
			req.Notes = optional(*f.notes)
		}
	})
}

func requestFromRental(r *models.Rental) models.DummyRental {
	return models.DummyRental{
		UserID:          r.UserID,
		Platform:        r.Platform,
		CustomerName:    r.CustomerName,
		AccountType:     r.AccountType,
		ProfileName:     r.ProfileName,
		AccountEmail:    r.AccountEmail,
		AccountPassword: r.AccountPassword,
		Price:           r.Price,
		Duration:        r.Duration,
		StartDate:       r.StartDate.Format(time.DateOnly),
		Notes:           r.Notes,
	}
}

func (c *cli) rentals(ctx context.Context, args []string) error {
	sess, err := c.requireLogin()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: rentalctl rentals list | create | show | update | delete | replace | history")
	}
	admin := sess.Role == models.RoleAdmin

	// Обычный пользователь видит только свои аренды.
	owned := func(id string) (*models.Rental, error) {
		r, err := c.backend.GetRental(ctx, id)
		if err != nil {
			return nil, err
		}
		if !admin && r.UserID != sess.UserID {
			return nil, backend.ErrNotFound
		}
		return r, nil
	}
	needID := func(cmd string) (string, error) {
		if len(args) < 2 {
			return "", fmt.Errorf("usage: rentalctl rentals %s <id>", cmd)
		}
		return args[1], nil
	}

	switch args[0] {
	case "list":
		owner := sess.UserID
		if admin {
			owner = ""
		}
		list, err := c.backend.ListRentals(ctx, owner)
		if err != nil {
			return err
		}
		return c.printRentals(list)

	case "create":
		f := c.newRentalFlags("rentals create", c.clock.Now().Format(time.DateOnly))
		if err := f.fs.Parse(args[1:]); err != nil {
			return err
		}
		req := f.request()
		if !admin || req.UserID == "" {
			req.UserID = sess.UserID
		}
		if req.Platform == "" || req.CustomerName == "" || req.AccountEmail == "" || req.AccountPassword == "" {
			f.fs.PrintDefaults()
			return errors.New("flags -platform, -customer, -email and -password are required")
		}
		r, err := c.backend.CreateRental(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Rental %s created, expires %s\n", r.RentalID, r.ExpirationDate.Format(time.DateOnly))
		return nil

	case "show":
		id, err := needID("show")
		if err != nil {
			return err
		}
		r, err := owned(id)
		if err != nil {
			return err
		}
		return c.printRental(r)

	case "update":
		id, err := needID("update")
		if err != nil {
			return err
		}
		f := c.newRentalFlags("rentals update", "")
		if err := f.fs.Parse(args[2:]); err != nil {
			return err
		}
		r, err := owned(id)
		if err != nil {
			return err
		}
		req := requestFromRental(r)
		f.overlay(&req)
		updated, err := c.backend.UpdateRental(ctx, id, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Rental %s updated, expires %s\n", updated.RentalID,
			updated.ExpirationDate.Format(time.DateOnly))
		return nil

	case "delete":
		id, err := needID("delete")
		if err != nil {
			return err
		}
		r, err := owned(id)
		if err != nil {
			return err
		}
		if err := c.backend.DeleteRental(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Rental %s deleted\n", r.RentalID)
		return nil

	case "replace":
		id, err := needID("replace")
		if err != nil {
			return err
		}
		fs := c.newFlagSet("rentals replace")
		email := fs.String("email", "", "New account email")
		pass := fs.String("password", "", "New account password")
		reason := fs.String("reason", "", "Replacement reason")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" || *pass == "" {
			fs.PrintDefaults()
			return errors.New("flags -email and -password are required")
		}
		if _, err := owned(id); err != nil {
			return err
		}
		r, err := c.backend.ReplaceCredentials(ctx, id, models.DummyReplacement{
			NewEmail:    *email,
			NewPassword: *pass,
			Reason:      optional(strings.TrimSpace(*reason)),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Credentials of %s replaced (%d replacements total)\n", r.RentalID, len(r.Replacements))
		return nil

	case "history":
		id, err := needID("history")
		if err != nil {
			return err
		}
		if _, err := owned(id); err != nil {
			return err
		}
		history, err := c.backend.ListReplacements(ctx, id)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintln(c.stdout, "No replacements")
			return nil
		}
		w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tOLD EMAIL\tNEW EMAIL\tREASON")
		for _, rep := range history {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rep.ReplacedAt.Format(time.DateTime), rep.OldEmail,
				rep.NewEmail, deref(rep.Reason))
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown rentals command %q", args[0])
	}
}

func (c *cli) printRentals(list []*models.Rental) error {
	if len(list) == 0 {
		fmt.Fprintln(c.stdout, "No rentals")
		return nil
	}
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tPLATFORM\tCUSTOMER\tTYPE\tEXPIRES")
	for _, r := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.RentalID, r.Platform, r.CustomerName,
			r.AccountType, r.ExpirationDate.Format(time.DateOnly))
	}
	return w.Flush()
}

func (c *cli) printRental(r *models.Rental) error {
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Number:\t%s\n", r.RentalID)
	fmt.Fprintf(w, "Platform:\t%s\n", r.Platform)
	fmt.Fprintf(w, "Customer:\t%s\n", r.CustomerName)
	fmt.Fprintf(w, "Type:\t%s\n", r.AccountType)
	if r.ProfileName != nil {
		fmt.Fprintf(w, "Profile:\t%s\n", *r.ProfileName)
	}
	fmt.Fprintf(w, "Email:\t%s\n", r.AccountEmail)
	fmt.Fprintf(w, "Password:\t%s\n", r.AccountPassword)
	fmt.Fprintf(w, "Price:\t%.2f\n", r.Price)
	fmt.Fprintf(w, "Period:\t%s .. %s (%d mo)\n", r.StartDate.Format(time.DateOnly),
		r.ExpirationDate.Format(time.DateOnly), r.Duration)
	if r.Notes != nil {
		fmt.Fprintf(w, "Notes:\t%s\n", *r.Notes)
	}
	if len(r.Replacements) > 0 {
		fmt.Fprintf(w, "Replacements:\t%d\n", len(r.Replacements))
	}
	return w.Flush()
}
