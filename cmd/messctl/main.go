// messctl 是 mess-booking API 的命令列工具：
//
//	messctl -server http://localhost:8080 -token TOKEN <command> [args]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"mess-booking/internal/api"
	"mess-booking/internal/client"
	"mess-booking/internal/model"
)

var exitFunc = os.Exit

const usage = `commands:
  login EMAIL PASSWORD          取得令牌
  menu                          本週菜單
  menu-today                    今天的菜單
  book DATE [meal=on|off ...]   訂餐 (例如 book 2025-03-05 lunch=off)
  toggle MEAL                   切換今天的某一餐
  my-bookings                   我的訂餐紀錄
  today                         今天所有人的訂餐 (管理員)
  counts                        今天各餐人數 (管理員)
  bookings-on DATE              某天所有人的訂餐 (管理員)
  my-bills                      我的帳單
  bills                         所有帳單 (管理員)
  generate USER_ID MONTH YEAR   產生帳單 (管理員)
  generate-all MONTH YEAR       為所有人產生帳單 (管理員)
  pay BILL_ID                   設為已付款 (管理員)
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "messctl:", err)
		exitFunc(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("messctl", flag.ContinueOnError)
	fs.SetOutput(out)
	server := fs.String("server", envOr("MESS_SERVER", "http://localhost:8080"), "API base URL")
	token := fs.String("token", os.Getenv("MESS_TOKEN"), "bearer token")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")
	fs.Usage = func() {
		fmt.Fprintln(out, "usage: messctl [flags] <command> [args]")
		fs.PrintDefaults()
		fmt.Fprint(out, usage)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	c := client.New(client.Config{BaseURL: *server, Timeout: *timeout})
	s := client.Session{Token: *token}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "login":
		if err := need(rest, 2); err != nil {
			return err
		}
		sess, err := c.Login(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sess.Token)
		return nil
	case "menu":
		entries, err := c.WeeklyMenu(ctx)
		if err != nil {
			return err
		}
		printMenu(out, entries)
		return nil
	case "menu-today":
		entry, found, err := c.TodayMenu(ctx)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintln(out, "no menu for today")
			return nil
		}
		printMenu(out, []model.MenuEntry{*entry})
		return nil
	case "book":
		if len(rest) == 0 {
			return errors.New("book: missing DATE")
		}
		req, err := bookingRequest(rest[0], rest[1:])
		if err != nil {
			return err
		}
		b, err := c.Book(ctx, s, req)
		if err != nil {
			return err
		}
		printBookings(out, []api.BookingResponse{*b})
		return nil
	case "toggle":
		if err := need(rest, 1); err != nil {
			return err
		}
		meal, err := client.ParseMeal(rest[0])
		if err != nil {
			return err
		}
		b, err := c.ToggleMeal(ctx, s, meal)
		if err != nil {
			return err
		}
		printBookings(out, []api.BookingResponse{*b})
		return nil
	case "my-bookings":
		list, err := c.MyBookings(ctx, s)
		if err != nil {
			return err
		}
		printBookings(out, list)
		return nil
	case "today":
		list, err := c.TodayBookings(ctx, s)
		if err != nil {
			return err
		}
		printBookings(out, list)
		return nil
	case "counts":
		counts, err := c.TodayCounts(ctx, s)
		if err != nil {
			return err
		}
		printCounts(out, counts)
		return nil
	case "bookings-on":
		if err := need(rest, 1); err != nil {
			return err
		}
		list, err := c.BookingsOn(ctx, s, rest[0])
		if err != nil {
			return err
		}
		printBookings(out, list)
		return nil
	case "my-bills":
		list, err := c.MyBills(ctx, s)
		if err != nil {
			return err
		}
		printBills(out, list)
		return nil
	case "bills":
		list, err := c.AllBills(ctx, s)
		if err != nil {
			return err
		}
		printBillsWithUser(out, list)
		return nil
	case "generate":
		nums, err := ints(rest, 3)
		if err != nil {
			return err
		}
		bill, err := c.GenerateBill(ctx, s, nums[0], nums[1], nums[2])
		if err != nil {
			return err
		}
		printBills(out, []model.Bill{*bill})
		return nil
	case "generate-all":
		nums, err := ints(rest, 2)
		if err != nil {
			return err
		}
		res, err := c.GenerateAllBills(ctx, s, nums[0], nums[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "generated=%d skipped=%d failed=%d\n", res.Generated, res.Skipped, res.Failed)
		return nil
	case "pay":
		nums, err := ints(rest, 1)
		if err != nil {
			return err
		}
		bill, err := c.MarkPaid(ctx, s, nums[0])
		if err != nil {
			return err
		}
		printBills(out, []model.Bill{*bill})
		return nil
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func need(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func ints(args []string, n int) ([]int, error) {
	if err := need(args, n); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

// bookingRequest 解析 meal=on|off 參數；未指定的餐別交給伺服器決定
func bookingRequest(date string, flags []string) (api.BookingRequest, error) {
	req := api.BookingRequest{Date: date}
	for _, f := range flags {
		name, val, ok := strings.Cut(f, "=")
		if !ok {
			return req, fmt.Errorf("invalid meal flag %q: want meal=on|off", f)
		}
		on, err := parseOnOff(val)
		if err != nil {
			return req, err
		}
		switch name {
		case "breakfast":
			req.Breakfast = &on
		case "lunch":
			req.Lunch = &on
		case "dinner":
			req.Dinner = &on
		default:
			return req, fmt.Errorf("unknown meal %q", name)
		}
	}
	return req, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q: want on or off", s)
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func printMenu(out io.Writer, entries []model.MenuEntry) {
	w := table(out)
	fmt.Fprintln(w, "DAY\tBREAKFAST\tLUNCH\tDINNER")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Day, e.Breakfast, e.Lunch, e.Dinner)
	}
	w.Flush()
}

func printBookings(out io.Writer, list []api.BookingResponse) {
	w := table(out)
	fmt.Fprintln(w, "DATE\tUSER\tBREAKFAST\tLUNCH\tDINNER")
	for _, b := range list {
		user := strconv.Itoa(b.UserID)
		if b.User != nil {
			user = b.User.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Date, user, mark(b.Breakfast), mark(b.Lunch), mark(b.Dinner))
	}
	w.Flush()
}

func printCounts(out io.Writer, c *api.MealCountResponse) {
	w := table(out)
	fmt.Fprintln(w, "DATE\tBREAKFAST\tLUNCH\tDINNER\tBOOKINGS")
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", c.Date, c.BreakfastCount, c.LunchCount, c.DinnerCount, c.TotalBookings)
	w.Flush()
}

func billRow(b model.Bill) string {
	return fmt.Sprintf("%d\t%04d-%02d\t%d\t%d\t%d\t%d\t%s",
		b.ID, b.Year, b.Month, b.BreakfastCount, b.LunchCount, b.DinnerCount, b.TotalAmount, mark(b.IsPaid))
}

func printBills(out io.Writer, list []model.Bill) {
	w := table(out)
	fmt.Fprintln(w, "ID\tMONTH\tBREAKFAST\tLUNCH\tDINNER\tTOTAL\tPAID")
	for _, b := range list {
		fmt.Fprintln(w, billRow(b))
	}
	w.Flush()
}

func printBillsWithUser(out io.Writer, list []model.BillWithUser) {
	w := table(out)
	fmt.Fprintln(w, "ID\tMONTH\tBREAKFAST\tLUNCH\tDINNER\tTOTAL\tPAID\tUSER")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\n", billRow(b.Bill), b.UserName)
	}
	w.Flush()
}
