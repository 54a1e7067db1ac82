// Command kakeibo is a terminal client for the Kakeibo API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"kakeibo/internal/client"
	"kakeibo/internal/config"
	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/ledger"
	"kakeibo/internal/logger"
	"kakeibo/internal/models"
)

const usage = `usage: kakeibo <command> [flags]

commands:
  list        list purchases (-year, -month, -category)
  show ID     show one purchase
  add         record a purchase (-name, -amount, -category, -date, -description)
  edit ID     change fields of a purchase (same flags as add)
  delete ID   delete a purchase
  preview     fetch every purchase and filter locally (-year, -month, -category)
  categories  list suggested categories
`

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Args[2:], os.Stdout); err != nil {
		var appErr *apperrors.AppError
		var apiErr *client.APIError
		switch {
		case errors.As(err, &appErr) && len(appErr.Fields) > 0:
			client.RenderFieldErrors(os.Stderr, appErr.Fields)
		case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
			client.RenderFieldErrors(os.Stderr, apiErr.Fields)
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	api := client.New(cfg.APIURL, &http.Client{Timeout: cfg.RequestTimeout})

	switch command {
	case "list":
		return list(ctx, api, args, out)
	case "preview":
		return preview(ctx, api, args, out)
	case "show":
		id, err := singleID(command, args)
		if err != nil {
			return err
		}
		p, err := api.GetPurchase(ctx, id)
		if err != nil {
			return err
		}
		return client.RenderPurchase(out, *p)
	case "add":
		return add(ctx, api, args, out)
	case "edit":
		return edit(ctx, api, args, out)
	case "delete":
		id, err := singleID(command, args)
		if err != nil {
			return err
		}
		if err := api.DeletePurchase(ctx, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "deleted %s\n", id)
		return err
	case "categories":
		categories, err := api.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Fprintln(out, c)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

type filterFlags struct {
	year, month, category string
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.year, "year", "", "calendar year, e.g. 2024")
	fs.StringVar(&f.month, "month", "", "month 1-12; needs -year")
	fs.StringVar(&f.category, "category", "", "exact category")
}

func (f filterFlags) filter() ledger.Filter {
	return ledger.ParseFilter(f.year, f.month, f.category)
}

func list(ctx context.Context, api *client.Client, args []string, out io.Writer) error {
	var ff filterFlags
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	ff.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Send the resolved filter so both sides agree on what was ignored.
	q := client.Query{Category: ff.category}
	if f := ff.filter(); f.Year != nil {
		q.Year = *f.Year
		if f.Month != nil {
			q.Month = *f.Month
		}
	}

	res, err := api.ListPurchases(ctx, q)
	if err != nil {
		return err
	}
	return client.RenderResult(out, *res)
}

func preview(ctx context.Context, api *client.Client, args []string, out io.Writer) error {
	var ff filterFlags
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	ff.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := api.ListPurchases(ctx, client.Query{})
	if err != nil {
		return err
	}
	return client.RenderResult(out, ledger.Apply(all.Purchases, ff.filter()))
}

// formFlags registers the purchase fields on fs and returns an Input whose
// fields are set only for flags given on the command line.
func formFlags(fs *flag.FlagSet, defaultDate string) func() client.Input {
	values := map[string]*string{
		"name":        fs.String("name", "", "what was bought"),
		"amount":      fs.String("amount", "", "amount in yen, e.g. 1500 or 1,500"),
		"category":    fs.String("category", "", "category, e.g. 食費"),
		"date":        fs.String("date", defaultDate, "purchase date YYYY-MM-DD"),
		"description": fs.String("description", "", "optional note"),
	}

	return func() client.Input {
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		pick := func(name string) *string {
			if set[name] {
				return values[name]
			}
			return nil
		}
		return client.Input{
			Name:        pick("name"),
			Amount:      pick("amount"),
			Category:    pick("category"),
			Date:        pick("date"),
			Description: pick("description"),
		}
	}
}

func add(ctx context.Context, api *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	today := models.Today().String()
	input := formFlags(fs, today)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := input()
	if in.Date == nil {
		in.Date = &today
	}
	form, err := in.Apply(client.Form{})
	if err != nil {
		return err
	}

	p, err := api.CreatePurchase(ctx, form)
	if err != nil {
		return err
	}
	return client.RenderPurchase(out, *p)
}

func edit(ctx context.Context, api *client.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: kakeibo edit ID [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	input := formFlags(fs, "")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	current, err := api.GetPurchase(ctx, id)
	if err != nil {
		return err
	}
	form, err := input().Apply(client.FormFrom(*current))
	if err != nil {
		return err
	}

	p, err := api.UpdatePurchase(ctx, id, form)
	if err != nil {
		return err
	}
	return client.RenderPurchase(out, *p)
}

func singleID(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: kakeibo %s ID", command)
	}
	return args[0], nil
}
