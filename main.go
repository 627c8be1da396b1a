package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/harrisonrobin/taskdeck/pkg/api"
	"github.com/harrisonrobin/taskdeck/pkg/auth"
	"github.com/harrisonrobin/taskdeck/pkg/colors"
	"github.com/harrisonrobin/taskdeck/pkg/config"
	"github.com/harrisonrobin/taskdeck/pkg/google"
	"github.com/harrisonrobin/taskdeck/pkg/index"
	"github.com/harrisonrobin/taskdeck/pkg/logging"
	"github.com/harrisonrobin/taskdeck/pkg/model"
	"github.com/harrisonrobin/taskdeck/pkg/overdue"
	"github.com/harrisonrobin/taskdeck/pkg/server"
	"github.com/harrisonrobin/taskdeck/pkg/store"
)

func main() {
	serve := flag.Bool("serve", false, "Run the local development API over the in-memory store")
	doAuth := flag.Bool("auth", false, "Authenticate with Google Calendar")
	setCalendar := flag.String("set-calendar", "", "Set the default Google Calendar name")
	calendarName := flag.String("calendar", "", "Google Calendar name to export to (overrides config)")
	setToken := flag.String("set-token", "", "Store the task service session token (\"-\" clears it)")
	doSync := flag.Bool("sync", false, "Export tasks from the task service to Google Calendar")
	list := flag.Bool("list", false, "List tasks from the task service")
	today := flag.Bool("today", false, "With -list, only today's tasks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Options{SystemName: "taskdeck", File: cfg.LogFile, Level: cfg.LogLevel})
	log := logging.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *setCalendar != "":
		cfg.Calendar = *setCalendar
		if err := config.Save(cfg); err != nil {
			log.Fatalf("Event ID: CONFIG_SAVE_ERROR, Description: %v", err)
		}
		fmt.Printf("Default calendar set to: %s\n", *setCalendar)

	case *setToken != "":
		sessions, err := auth.DefaultSessionStore()
		if err != nil {
			log.Fatalf("Event ID: SESSION_STORE_ERROR, Description: %v", err)
		}
		token := *setToken
		if token == "-" {
			token = ""
		}
		if err := sessions.Set(token); err != nil {
			log.Fatalf("Event ID: SESSION_SAVE_ERROR, Description: %v", err)
		}
		fmt.Println("Session token updated.")

	case *doAuth:
		if err := auth.ResetGoogleToken(); err != nil {
			log.Fatalf("Event ID: OAUTH_RESET_ERROR, Description: %v", err)
		}
		if _, err := auth.CalendarService(ctx); err != nil {
			log.Fatalf("Event ID: OAUTH_FAILED, Description: Authentication failed: %v", err)
		}
		fmt.Println("Authentication successful!")

	case *serve:
		srv := server.New(store.New())
		if err := srv.Run(ctx, ":"+cfg.ServerPort); err != nil {
			log.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: %v", err)
		}

	case *list:
		client, err := newAPIClient(cfg)
		if err != nil {
			log.Fatalf("Event ID: API_CLIENT_ERROR, Description: %v", err)
		}
		var tasks []model.Task
		if *today {
			tasks, err = client.TodayTasks(ctx)
		} else {
			tasks, err = client.ListTasks(ctx)
		}
		if err != nil {
			log.Fatalf("Event ID: TASK_LIST_ERROR, Description: %v", err)
		}
		printTasks(tasks)

	case *doSync:
		selected := cfg.Calendar
		if *calendarName != "" {
			selected = *calendarName
		}
		if err := runSync(ctx, cfg, selected); err != nil {
			log.Fatalf("Event ID: SYNC_ERROR, Description: %v", err)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func newAPIClient(cfg *config.Config) (*api.Client, error) {
	sessions, err := auth.DefaultSessionStore()
	if err != nil {
		return nil, err
	}
	return api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithTokenSource(sessions),
	), nil
}

func runSync(ctx context.Context, cfg *config.Config, calendarName string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}
	tasks, err := client.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("fetch tasks: %w", err)
	}

	exp := &google.Exporter{}
	if exp.Index, err = index.NewEventIndex(filepath.Join(dir, index.FileName)); err != nil {
		logging.Logger.Warnf("Event ID: INDEX_LOAD_FAILED, Description: %v", err)
	}
	if exp.Colors, err = colors.NewColorCache(filepath.Join(dir, colors.FileName)); err != nil {
		logging.Logger.Warnf("Event ID: COLOR_CACHE_LOAD_FAILED, Description: %v", err)
	}
	if exp.Overdue, err = overdue.NewTable(filepath.Join(dir, overdue.FileName)); err != nil {
		logging.Logger.Warnf("Event ID: OVERDUE_TABLE_LOAD_FAILED, Description: %v", err)
	}

	cal, err := google.NewClient(ctx, calendarName, exp.Index)
	if err != nil {
		return fmt.Errorf("connect to Google Calendar: %w", err)
	}
	exp.Calendar = cal

	rep, err := exp.Export(tasks)
	logging.Logger.Infof("Event ID: SYNC_DONE, Description: %s", rep)
	fmt.Println(rep)
	return err
}

func printTasks(tasks []model.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tSTART\tEND\tASSIGNEE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Status, t.Priority, orDash(t.Start.String()), orDash(t.End.String()), t.Assignee, t.Title)
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
