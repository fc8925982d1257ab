package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jinji/attendance-sync/internal/calendar"
	"jinji/attendance-sync/internal/client"
	"jinji/attendance-sync/internal/config"
	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/logger"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/retry"
	"jinji/attendance-sync/internal/session"

	"go.uber.org/zap"
)

type options struct {
	month  string
	day    string
	start  string
	end    string
	leave  int
	salary bool
	review string
}

func main() {
	configPath := flag.String("config", "config/local.yaml", "Path to configuration file")
	var opts options
	flag.StringVar(&opts.month, "month", "", "Month to show as YYYYMM (default current month)")
	flag.StringVar(&opts.day, "day", "", "Day to open as YYYY-MM-DD")
	flag.StringVar(&opts.start, "start", "", "Clock-in time HH:MM for -day")
	flag.StringVar(&opts.end, "end", "", "Clock-out time HH:MM for -day")
	flag.IntVar(&opts.leave, "leave", -1, "Leave code 1-8 for -day, 0 to switch back to a worked day")
	flag.BoolVar(&opts.salary, "salary", false, "Print the salary statement for the month")
	flag.StringVar(&opts.review, "review", "", "Submit a self review comment for the month")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, log.Logger); err != nil {
		log.Error("Agent failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger) error {
	apiClient := client.NewAPIClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		cfg.Backend.UnavailableMarker,
		log,
	)
	retrier := retry.New(retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   time.Duration(cfg.Retry.BaseDelay) * time.Millisecond,
	}, log.Named("retry"))

	month := dateutil.MonthOf(time.Now())
	if opts.month != "" {
		m, err := dateutil.ParseMonth(opts.month)
		if err != nil {
			return err
		}
		month = m
	}

	login, err := retry.Do(ctx, retrier, "login", func(ctx context.Context) (*models.LoginResponse, error) {
		return apiClient.Login(ctx, cfg.Auth.EmployeeID, cfg.Auth.Password)
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	cred := models.Credential{EmployeeID: login.EmployeeID, Token: login.Token}
	log.Info("Logged in", zap.Int("employee_id", login.EmployeeID), zap.String("name", login.Name))

	screen := session.NewAttendanceScreen(apiClient, retrier, cred, log)
	defer screen.Leave()

	if err := screen.Month.SelectMonth(ctx, month); err != nil {
		log.Warn("Month shown without records", zap.Error(err))
	}
	if err := printMonth(screen.Month.Snapshot()); err != nil {
		return err
	}

	if opts.day != "" {
		if err := editDay(ctx, screen, opts); err != nil {
			return err
		}
	}

	if opts.salary {
		st, err := retry.Do(ctx, retrier, "fetch_salary", func(ctx context.Context) (*models.SalaryStatement, error) {
			return apiClient.FetchSalary(ctx, cred, month.Key())
		})
		if err != nil {
			return fmt.Errorf("salary: %w", err)
		}
		printSalary(st)
	}

	if opts.review != "" {
		review := models.PerformanceReview{EmployeeID: cred.EmployeeID, Month: month.Key(), SubordinateInput: opts.review}
		if err := retry.Exec(ctx, retrier, "submit_performance", func(ctx context.Context) error {
			_, err := apiClient.SubmitPerformance(ctx, cred, review)
			return err
		}); err != nil {
			return fmt.Errorf("review: %w", err)
		}
		fmt.Printf("Review for %s submitted\n", month)
	}
	return nil
}

func editDay(ctx context.Context, screen *session.AttendanceScreen, opts options) error {
	day, ok := screen.Month.Day(opts.day)
	if !ok {
		return fmt.Errorf("%s is not in the displayed month", opts.day)
	}
	if err := screen.Day.SelectDay(ctx, day); err != nil {
		return fmt.Errorf("select %s: %w", opts.day, err)
	}

	edited := false
	if opts.leave >= 0 {
		if err := screen.Day.SetLeaveType(models.LeaveType(opts.leave)); err != nil {
			return err
		}
		edited = true
	}
	if opts.start != "" || opts.end != "" {
		if opts.leave < 0 {
			if err := screen.Day.SetLeaveType(models.LeaveNone); err != nil {
				return err
			}
		}
		if opts.start != "" {
			if err := screen.Day.SetStartTime(opts.start); err != nil {
				return err
			}
		}
		if opts.end != "" {
			if err := screen.Day.SetEndTime(opts.end); err != nil {
				return err
			}
		}
		edited = true
	}

	if edited {
		if err := screen.Day.Submit(ctx); err != nil {
			return fmt.Errorf("submit %s: %w", opts.day, err)
		}
		if err := printMonth(screen.Month.Snapshot()); err != nil {
			return err
		}
	}
	printSelection(screen.Day.Snapshot())
	return nil
}

func printMonth(snap session.MonthSnapshot) error {
	fmt.Printf("\n%s\n", snap.Month)
	if snap.Message != "" {
		fmt.Printf("(%s)\n", snap.Message)
	}
	return calendar.Render(os.Stdout, snap.Days)
}

func printSelection(sel session.Selection) {
	fmt.Printf("\n%s [%s]\n", sel.Date, sel.State)
	if sel.Record != nil {
		switch e := sel.Record.Entry().(type) {
		case models.Worked:
			fmt.Printf("  worked %s - %s\n", e.Start, e.End)
		case models.OnLeave:
			fmt.Printf("  leave: %s\n", e.Type)
		default:
			fmt.Println("  no record")
		}
	}
	if sel.Message != "" {
		fmt.Printf("  %s\n", sel.Message)
	}
}

func printSalary(st *models.SalaryStatement) {
	fmt.Printf("\nSalary %s\n", st.Month)
	fmt.Printf("  basic salary        %10d\n", st.Salary.BasicSalary)
	fmt.Printf("  overtime allowance  %10d\n", st.Salary.OvertimeAllowance)
	fmt.Printf("  total deductions    %10d\n", st.TotalDeductions)
	fmt.Printf("  take home           %10d\n", st.TakeHome)
}
