// portalctl — консольная утилита поверх SDK Portal API: просмотр
// каталога и контента, отслеживание заявок, операции back-office.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mstechy/gorex360/portal-module/pkg/portalclient"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	// .env подхватывается при наличии, его отсутствие не ошибка
	_ = godotenv.Load()

	baseURL := flag.String("base-url", envOr("PORTALCTL_BASE_URL", defaultBaseURL), "адрес Portal API")
	timeout := flag.Duration("timeout", 30*time.Second, "таймаут выполнения команды")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	client := portalclient.New(*baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, client, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "portalctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *portalclient.Client, command string, args []string) error {
	switch command {
	case "services":
		return cmdServices(ctx, client)
	case "service":
		return cmdService(ctx, client, args)
	case "slides":
		return cmdSlides(ctx, client, args)
	case "posts":
		return cmdPosts(ctx, client, args)
	case "track":
		return cmdTrack(ctx, client, args)
	case "applications":
		return cmdApplications(ctx, client, args)
	case "transactions":
		return cmdTransactions(ctx, client, args)
	case "set-price":
		return cmdSetPrice(ctx, client, args)
	case "advance":
		return cmdAdvance(ctx, client, args)
	default:
		usage()
		return fmt.Errorf("неизвестная команда %q", command)
	}
}

// cmdServices выводит каталог услуг.
func cmdServices(ctx context.Context, client *portalclient.Client) error {
	services, err := client.Services(ctx)
	if err != nil {
		return err
	}
	return printJSON(services)
}

// cmdService выводит одну услугу по слагу.
func cmdService(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("service", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("использование: portalctl service <id>")
	}
	svc, err := client.Service(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	return printJSON(svc)
}

// cmdSlides выводит слайды маркетинговой секции.
func cmdSlides(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("slides", flag.ExitOnError)
	section := fs.String("section", "", "фильтр по секции")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list, err := client.Slides(ctx, *section)
	if err != nil {
		return err
	}
	return printJSON(list)
}

// cmdPosts выводит страницу публикаций.
func cmdPosts(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("posts", flag.ExitOnError)
	category := fs.String("category", "", "фильтр по категории")
	q := fs.String("q", "", "поисковая строка")
	limit := fs.Int("limit", 0, "размер страницы")
	offset := fs.Int("offset", 0, "смещение")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list, err := client.Posts(ctx, portalclient.PostsQuery{
		Category: *category,
		Q:        *q,
		Limit:    *limit,
		Offset:   *offset,
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

// cmdTrack отслеживает заявки по email или платёжному референсу.
func cmdTrack(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	email := fs.String("email", "", "email директора")
	reference := fs.String("reference", "", "платёжный референс")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*email == "") == (*reference == "") {
		return fmt.Errorf("укажите ровно один из флагов -email или -reference")
	}
	result, err := client.Track(ctx, *email, *reference)
	if err != nil {
		return err
	}
	return printJSON(result)
}

// cmdApplications выводит страницу реестра заявок. Требует входа.
func cmdApplications(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("applications", flag.ExitOnError)
	status := fs.String("status", "", "фильтр по статусу")
	limit := fs.Int("limit", 0, "размер страницы")
	offset := fs.Int("offset", 0, "смещение")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := signIn(ctx, client); err != nil {
		return err
	}
	list, err := client.Applications(ctx, *status, *limit, *offset)
	if err != nil {
		return err
	}
	return printJSON(list)
}

// cmdTransactions выводит страницу журнала платежей. Требует входа.
func cmdTransactions(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ExitOnError)
	limit := fs.Int("limit", 0, "размер страницы")
	offset := fs.Int("offset", 0, "смещение")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := signIn(ctx, client); err != nil {
		return err
	}
	list, err := client.Transactions(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	return printJSON(list)
}

// cmdSetPrice обновляет ценовые поля услуги. Требует входа.
func cmdSetPrice(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("set-price", flag.ExitOnError)
	price := fs.String("price", "", "новая отображаемая цена, например ₦55,000")
	original := fs.String("original-price", "", "зачёркнутая цена (опционально)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *price == "" {
		return fmt.Errorf("использование: portalctl set-price -price <цена> [-original-price <цена>] <id>")
	}
	if err := signIn(ctx, client); err != nil {
		return err
	}
	var originalPrice *string
	if *original != "" {
		originalPrice = original
	}
	svc, err := client.UpdateServicePricing(ctx, fs.Arg(0), *price, originalPrice)
	if err != nil {
		return err
	}
	return printJSON(svc)
}

// cmdAdvance продвигает статус заявки. Требует входа.
func cmdAdvance(ctx context.Context, client *portalclient.Client, args []string) error {
	fs := flag.NewFlagSet("advance", flag.ExitOnError)
	status := fs.String("status", "", "новый статус (pending, processing, completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *status == "" {
		return fmt.Errorf("использование: portalctl advance -status <статус> <id>")
	}
	if err := signIn(ctx, client); err != nil {
		return err
	}
	app, err := client.AdvanceApplicationStatus(ctx, fs.Arg(0), *status)
	if err != nil {
		return err
	}
	return printJSON(app)
}

// signIn выполняет вход по учётным данным из окружения.
func signIn(ctx context.Context, client *portalclient.Client) error {
	email := os.Getenv("PORTALCTL_EMAIL")
	password := os.Getenv("PORTALCTL_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("команда требует входа: задайте PORTALCTL_EMAIL и PORTALCTL_PASSWORD")
	}
	if _, err := client.SignIn(ctx, email, password); err != nil {
		return fmt.Errorf("вход не выполнен: %w", err)
	}
	return nil
}

// printJSON выводит значение в stdout с отступами.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// envOr возвращает значение переменной окружения или значение по умолчанию.
func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func usage() {
	fmt.Fprintf(os.Stderr, `portalctl — утилита Portal API

Использование:
  portalctl [флаги] <команда> [флаги команды] [аргументы]

Команды:
  services        каталог услуг
  service <id>    услуга по слагу
  slides          слайды (-section)
  posts           публикации (-category, -q, -limit, -offset)
  track           отслеживание заявок (-email | -reference)
  applications    реестр заявок (-status, -limit, -offset), требует входа
  transactions    журнал платежей (-limit, -offset), требует входа
  set-price <id>  обновление цены (-price, -original-price), требует входа
  advance <id>    смена статуса заявки (-status), требует входа

Флаги:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Окружение:
  PORTALCTL_BASE_URL   адрес Portal API (по умолчанию %s)
  PORTALCTL_EMAIL      email для команд back-office
  PORTALCTL_PASSWORD   пароль для команд back-office
`, defaultBaseURL)
}
