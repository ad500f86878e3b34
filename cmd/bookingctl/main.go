// bookingctl is a terminal console for the booking API: the business
// dashboard's session and state layer driven from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
	"github.com/mawa3id/booking-client/internal/core/store"
	"github.com/mawa3id/booking-client/internal/infrastructure/api"
	"github.com/mawa3id/booking-client/internal/infrastructure/tokenstore"
	"github.com/mawa3id/booking-client/internal/pkg/config"
	"github.com/mawa3id/booking-client/pkg/logger"
)

const requestTimeout = 15 * time.Second

var buildVersion = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "version" || cmd == "--version" || cmd == "-v" {
		fmt.Printf("bookingctl %s\n", buildVersion)
		return
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	app, err := buildApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "register":
		err = app.commandRegister(args)
	case "login":
		err = app.commandLogin(args)
	case "logout":
		err = app.commandLogout(args)
	case "profile":
		err = app.commandProfile(args)
	case "services":
		err = app.commandServices(args)
	case "availability":
		err = app.commandAvailability(args)
	case "appointments":
		err = app.commandAppointments(args)
	case "analytics":
		err = app.commandAnalytics(args)
	case "book":
		err = app.commandBook(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	api     ports.BookingAPI
	session *store.SessionStore
	state   *store.AppStore
}

// buildApp wires config, token storage, the gateway and both stores.
func buildApp() (*app, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	var tokens ports.TokenStorage
	switch cfg.Tokens.Backend {
	case "redis":
		rds, err := tokenstore.NewRedis(context.Background(), tokenstore.RedisConfig{
			Addr:  cfg.Tokens.RedisAddr,
			DB:    cfg.Tokens.RedisDB,
			Scope: cfg.Tokens.Scope,
		})
		if err != nil {
			return nil, err
		}
		tokens = rds
	default:
		file, err := tokenstore.NewFile(cfg.Tokens.File)
		if err != nil {
			return nil, err
		}
		tokens = file
	}

	client, err := api.New(cfg.APIBaseURL, tokens,
		api.WithLogger(logger.Component("gateway")),
		api.WithSessionExpiredHandler(func() {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		api:     client,
		session: store.NewSessionStore(client, tokens, logger.Component("session")),
		state:   store.NewAppStore(client, log.With().Str("component", "state").Logger()),
	}, nil
}

func (a *app) commandRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Business name")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	fs.Parse(args)

	if *name == "" || *email == "" || *phone == "" {
		return errors.New("--name, --email and --phone are required")
	}
	secret, err := resolvePassword(*password)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	session, err := a.session.Register(ctx, ports.RegisterInput{
		BusinessName: *name,
		Email:        *email,
		Phone:        *phone,
		Password:     secret,
	})
	if err != nil {
		return sessionErr(a.session, err)
	}
	fmt.Printf("registered %s (%s)\n", session.User.BusinessName, session.User.ID)
	return nil
}

func (a *app) commandLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	fs.Parse(args)

	if *email == "" {
		return errors.New("--email is required")
	}
	secret, err := resolvePassword(*password)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	session, err := a.session.Login(ctx, ports.LoginInput{Email: *email, Password: secret})
	if err != nil {
		return sessionErr(a.session, err)
	}
	fmt.Printf("logged in as %s\n", session.User.BusinessName)
	return nil
}

func (a *app) commandLogout(_ []string) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) commandProfile(args []string) error {
	if len(args) > 0 && args[0] == "update" {
		return a.commandProfileUpdate(args[1:])
	}

	if !a.session.IsAuthenticated() {
		return errors.New("not logged in")
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	user, err := a.session.FetchProfile(ctx)
	if err != nil {
		return sessionErr(a.session, err)
	}
	fmt.Printf("id:       %s\n", user.ID)
	fmt.Printf("business: %s\n", user.BusinessName)
	fmt.Printf("email:    %s\n", user.Email)
	fmt.Printf("phone:    %s\n", user.Phone)
	return nil
}

func (a *app) commandProfileUpdate(args []string) error {
	fs := flag.NewFlagSet("profile update", flag.ExitOnError)
	name := fs.String("name", "", "Business name")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	fs.Parse(args)

	if *name == "" || *email == "" || *phone == "" {
		return errors.New("--name, --email and --phone are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	user, err := a.session.UpdateProfile(ctx, ports.ProfileUpdate{
		BusinessName: *name,
		Email:        *email,
		Phone:        *phone,
	})
	if err != nil {
		return sessionErr(a.session, err)
	}
	fmt.Printf("profile updated: %s\n", user.BusinessName)
	return nil
}

func (a *app) commandServices(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch sub {
	case "list":
		if err := a.state.FetchServices(ctx); err != nil {
			return stateErr(a.state, err)
		}
		for _, svc := range a.state.Services() {
			fmt.Printf("%s\t%s\t%d min\t%.2f\n", svc.ID, svc.Name, svc.DurationMinutes, svc.Price)
		}
		return nil
	case "create":
		fs := flag.NewFlagSet("services create", flag.ExitOnError)
		name := fs.String("name", "", "Service name")
		duration := fs.Int("duration", 30, "Duration in minutes")
		price := fs.Float64("price", 0, "Price")
		fs.Parse(args)
		svc, err := a.state.CreateService(ctx, ports.ServiceInput{
			Name: *name, DurationMinutes: *duration, Price: *price,
		})
		if err != nil {
			return stateErr(a.state, err)
		}
		fmt.Printf("created service %s\n", svc.ID)
		return nil
	case "update":
		fs := flag.NewFlagSet("services update", flag.ExitOnError)
		id := fs.String("id", "", "Service id")
		name := fs.String("name", "", "Service name")
		duration := fs.Int("duration", 30, "Duration in minutes")
		price := fs.Float64("price", 0, "Price")
		fs.Parse(args)
		if *id == "" {
			return errors.New("--id is required")
		}
		svc, err := a.state.UpdateService(ctx, *id, ports.ServiceInput{
			Name: *name, DurationMinutes: *duration, Price: *price,
		})
		if err != nil {
			return stateErr(a.state, err)
		}
		fmt.Printf("updated service %s\n", svc.ID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("services delete", flag.ExitOnError)
		id := fs.String("id", "", "Service id")
		fs.Parse(args)
		if *id == "" {
			return errors.New("--id is required")
		}
		if err := a.state.DeleteService(ctx, *id); err != nil {
			return stateErr(a.state, err)
		}
		fmt.Println("service deleted")
		return nil
	}
	return fmt.Errorf("unknown services subcommand: %s", sub)
}

func (a *app) commandAvailability(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch sub {
	case "list":
		if err := a.state.FetchAvailability(ctx); err != nil {
			return stateErr(a.state, err)
		}
		for _, slot := range a.state.Availability() {
			fmt.Printf("%s\t%s\t%s-%s\n", slot.ID, time.Weekday(slot.DayOfWeek), slot.StartTime, slot.EndTime)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("availability add", flag.ExitOnError)
		day := fs.Int("day", 1, "Day of week (0=Sunday .. 6)")
		from := fs.String("from", "09:00", "Start time (HH:MM)")
		to := fs.String("to", "17:00", "End time (HH:MM)")
		fs.Parse(args)
		start, err := parseClock(*from)
		if err != nil {
			return err
		}
		end, err := parseClock(*to)
		if err != nil {
			return err
		}
		slot, createErr := a.state.CreateAvailability(ctx, ports.AvailabilityInput{
			DayOfWeek: *day, StartTime: start, EndTime: end,
		})
		if createErr != nil {
			return stateErr(a.state, createErr)
		}
		fmt.Printf("added availability %s\n", slot.ID)
		return nil
	case "remove":
		fs := flag.NewFlagSet("availability remove", flag.ExitOnError)
		id := fs.String("id", "", "Slot id")
		fs.Parse(args)
		if *id == "" {
			return errors.New("--id is required")
		}
		if err := a.state.DeleteAvailability(ctx, *id); err != nil {
			return stateErr(a.state, err)
		}
		fmt.Println("availability removed")
		return nil
	}
	return fmt.Errorf("unknown availability subcommand: %s", sub)
}

func (a *app) commandAppointments(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch sub {
	case "list":
		if err := a.state.FetchAppointments(ctx); err != nil {
			return stateErr(a.state, err)
		}
		printAppointments(a.state.Appointments())
		return nil
	case "range":
		fs := flag.NewFlagSet("appointments range", flag.ExitOnError)
		from := fs.String("from", "", "Start date (YYYY-MM-DD)")
		to := fs.String("to", "", "End date (YYYY-MM-DD)")
		fs.Parse(args)
		start, err := parseDate(*from)
		if err != nil {
			return err
		}
		end, err := parseDate(*to)
		if err != nil {
			return err
		}
		// range reads bypass the cache: a date-window view, not the
		// synchronized appointment list
		appts, err := a.api.ListAppointmentsByDateRange(ctx, start, end)
		if err != nil {
			return err
		}
		printAppointments(appts)
		return nil
	case "create":
		fs := flag.NewFlagSet("appointments create", flag.ExitOnError)
		serviceID := fs.String("service", "", "Service id")
		name := fs.String("customer", "", "Customer name")
		phone := fs.String("phone", "", "Customer phone")
		date := fs.String("date", "", "Date (YYYY-MM-DD)")
		at := fs.String("at", "", "Start time (HH:MM)")
		fs.Parse(args)
		day, err := parseDate(*date)
		if err != nil {
			return err
		}
		start, err := parseClock(*at)
		if err != nil {
			return err
		}
		appt, createErr := a.state.CreateAppointment(ctx, domain.AppointmentRequest{
			ServiceID:       *serviceID,
			CustomerName:    *name,
			CustomerPhone:   *phone,
			AppointmentDate: day,
			StartTime:       start,
		})
		if createErr != nil {
			return stateErr(a.state, createErr)
		}
		fmt.Printf("created appointment %s (%s)\n", appt.ID, appt.Status)
		return nil
	case "status":
		fs := flag.NewFlagSet("appointments status", flag.ExitOnError)
		id := fs.String("id", "", "Appointment id")
		status := fs.String("set", "", "New status (PENDING, CONFIRMED, CANCELLED, NO_SHOW)")
		fs.Parse(args)
		if *id == "" || *status == "" {
			return errors.New("--id and --set are required")
		}
		if _, err := a.state.UpdateAppointmentStatus(ctx, *id, *status); err != nil {
			return stateErr(a.state, err)
		}
		fmt.Printf("appointment %s -> %s\n", *id, *status)
		return nil
	case "delete":
		fs := flag.NewFlagSet("appointments delete", flag.ExitOnError)
		id := fs.String("id", "", "Appointment id")
		fs.Parse(args)
		if *id == "" {
			return errors.New("--id is required")
		}
		if err := a.state.DeleteAppointment(ctx, *id); err != nil {
			return stateErr(a.state, err)
		}
		fmt.Println("appointment deleted")
		return nil
	}
	return fmt.Errorf("unknown appointments subcommand: %s", sub)
}

func (a *app) commandAnalytics(_ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := a.state.FetchAnalytics(ctx); err != nil {
		return stateErr(a.state, err)
	}
	snap := a.state.Analytics()
	fmt.Printf("appointments: %d total, %d confirmed, %d pending, %d cancelled, %d no-show\n",
		snap.TotalAppointments, snap.ConfirmedAppointments, snap.PendingAppointments,
		snap.CancelledAppointments, snap.NoShowAppointments)
	fmt.Printf("rates:        %.1f%% confirmed, %.1f%% cancelled, %.1f%% no-show\n",
		snap.ConfirmationRate, snap.CancellationRate, snap.NoShowRate)
	fmt.Printf("revenue:      %.2f earned, %.2f lost, %.2f saved\n",
		snap.TotalRevenue, snap.RevenueLost, snap.RevenueSaved)
	return nil
}

// commandBook drives the public, unauthenticated booking flow.
func (a *app) commandBook(args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	business := fs.String("business", "", "Business id")
	serviceID := fs.String("service", "", "Service id (omit to list offerings)")
	name := fs.String("customer", "", "Customer name")
	phone := fs.String("phone", "", "Customer phone")
	date := fs.String("date", "", "Date (YYYY-MM-DD)")
	at := fs.String("at", "", "Start time (HH:MM)")
	fs.Parse(args)

	if *business == "" {
		return errors.New("--business is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	profile, err := a.api.GetBookingProfile(ctx, *business)
	if err != nil {
		return err
	}
	if *serviceID == "" {
		fmt.Printf("%s (%s)\n", profile.BusinessName, profile.Phone)
		for _, svc := range profile.Services {
			fmt.Printf("  %s\t%s\t%d min\t%.2f\n", svc.ID, svc.Name, svc.DurationMinutes, svc.Price)
		}
		return nil
	}

	day, err := parseDate(*date)
	if err != nil {
		return err
	}
	start, err := parseClock(*at)
	if err != nil {
		return err
	}
	appt, err := a.api.CreatePublicAppointment(ctx, *business, domain.AppointmentRequest{
		ServiceID:       *serviceID,
		CustomerName:    *name,
		CustomerPhone:   *phone,
		AppointmentDate: day,
		StartTime:       start,
	})
	if err != nil {
		return err
	}
	fmt.Printf("booked appointment %s, confirmation token %s\n", appt.ID, appt.ConfirmationToken)
	return nil
}

func printAppointments(appts []domain.Appointment) {
	for _, appt := range appts {
		fmt.Printf("%s\t%s\t%s %s\t%s\t%s\n",
			appt.ID, appt.CustomerName, appt.AppointmentDate, appt.StartTime, appt.Status, appt.CustomerPhone)
	}
}

func resolvePassword(flagValue string) (string, error) {
	secret := strings.TrimSpace(flagValue)
	if secret != "" {
		return secret, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Print("\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func parseClock(s string) (domain.Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return domain.Clock{}, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return domain.Clock{Time: t}, nil
}

func parseDate(s string) (domain.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return domain.Date{Time: t}, nil
}

// sessionErr prefers the store's recorded message over the raw error chain.
func sessionErr(s *store.SessionStore, err error) error {
	if msg := s.Err(); msg != "" {
		return errors.New(msg)
	}
	return err
}

func stateErr(s *store.AppStore, err error) error {
	if msg := s.Err(); msg != "" {
		return errors.New(msg)
	}
	return err
}

func printUsage() {
	fmt.Println(`bookingctl - booking dashboard console

Usage:
  bookingctl register --name NAME --email EMAIL --phone PHONE
  bookingctl login --email EMAIL
  bookingctl logout
  bookingctl profile [update --name NAME --email EMAIL --phone PHONE]
  bookingctl services [list|create|update|delete] [flags]
  bookingctl availability [list|add|remove] [flags]
  bookingctl appointments [list|range|create|status|delete] [flags]
  bookingctl analytics
  bookingctl book --business ID [--service ID --customer NAME --phone PHONE --date DATE --at TIME]
  bookingctl version

Environment:
  API_BASE_URL   API base URL (default http://localhost:8088/api)
  TOKEN_STORE    file (default) or redis
  TOKEN_FILE     credential file path (default ~/.mawa3id/credentials.json)`)
}
