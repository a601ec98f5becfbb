package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/trackspring/client/pkg/form"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"github.com/trackspring/client/pkg/state"
	"github.com/trackspring/client/pkg/types"
)

// baseCurrency is the currency amounts are stored in.
const baseCurrency = "USD"

func list(ctx context.Context, e *env, args []string) error {
	q := state.DefaultQuery()

	sortFields := make([]string, 0, len(models.SortFields))
	for _, f := range models.SortFields {
		sortFields = append(sortFields, string(f))
	}

	fs := e.flags("list")
	page := fs.Int("page", 1, "Page number")
	fs.IntVar(&q.Size, "size", q.Size, "Transactions per page")
	sortBy := fs.String("sort", string(q.SortBy), "Sort by "+strings.Join(sortFields, ", "))
	sortDir := fs.String("dir", string(q.SortDir), "Sort direction, asc or desc")
	typ := fs.String("type", "", "Only show INCOME or EXPENSE")
	fs.StringVar(&q.Category, "category", "", "Only show this category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q.Page = *page - 1
	q.SortBy = models.SortField(*sortBy)
	q.SortDir = models.SortDirection(strings.ToLower(*sortDir))

	if *typ != "" {
		t, err := models.ParseTransactionType(*typ)
		if err != nil {
			return err
		}
		q.Type = t
	}

	p, err := e.transactions.Load(ctx, q)
	if err != nil {
		return err
	}

	printTransactions(e.stdout, p.Content)
	fmt.Fprintf(e.stdout, "Page %d of %d, %d transactions\n", p.Number+1, max(p.TotalPages, 1), p.TotalElements)
	return nil
}

func recent(ctx context.Context, e *env, _ []string) error {
	ts, err := e.transactions.LoadRecent(ctx)
	if err != nil {
		return err
	}

	printTransactions(e.stdout, ts)
	return nil
}

func printTransactions(w io.Writer, ts []models.Transaction) {
	if len(ts) == 0 {
		fmt.Fprintln(w, "No transactions found")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tTYPE\tAMOUNT")
	for _, t := range ts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			service.FormatDate(t.TransactionDate),
			t.Description,
			service.CategoryDisplayName(&models.Category{Name: t.Category}),
			t.Type.Label(),
			service.FormatAmount(t.Signed()),
		)
	}
	tw.Flush()
}

// draftFlags registers one flag per field of a transaction draft.
func draftFlags(fs *flag.FlagSet) {
	fs.String("description", "", "Description")
	fs.String("amount", "", "Amount, e.g. 4.50")
	fs.String("type", "", "INCOME or EXPENSE")
	fs.String("date", "", "Date, e.g. 2024-05-12 or 2024-05-12T08:15")
	fs.String("category", "", "Category")
	fs.String("notes", "", "Notes")
	fs.String("currency", "", "Currency of the amount, converted to "+baseCurrency)
}

// applyFlags copies the flags that were set on the command line into d and
// reports if the currency was among them.
func applyFlags(fs *flag.FlagSet, d *form.Draft) (currencySet bool) {
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "description":
			d.Description = v
		case "amount":
			d.Amount = v
		case "type":
			d.Type = v
		case "date":
			d.TransactionDate = v
		case "category":
			d.Category = v
		case "notes":
			d.Notes = v
		case "currency":
			d.Currency = v
			currencySet = true
		}
	})
	return currencySet
}

// convertDraft converts the amount of d into the base currency.
func (e *env) convertDraft(ctx context.Context, d *form.Draft) error {
	from := strings.ToUpper(strings.TrimSpace(d.Currency))
	if from == "" || from == baseCurrency {
		d.Currency = baseCurrency
		return nil
	}

	c, err := e.converter.Convert(ctx, d.Amount, from, baseCurrency)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Converted %s\n", describeConversion(c))
	*d, _ = e.converter.Apply(*d)
	return nil
}

func add(ctx context.Context, e *env, args []string) error {
	fs := e.flags("add")
	draftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	d := form.Draft{
		Type:            string(models.Expense),
		TransactionDate: types.NewTimestamp(e.now().Truncate(time.Second)).String(),
	}
	applyFlags(fs, &d)

	if err := e.convertDraft(ctx, &d); err != nil {
		return err
	}

	req, err := form.Validate(d, e.now())
	if err != nil {
		return err
	}

	t, err := e.transactions.Create(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Created transaction %d: %s %s\n", t.ID, t.Description, service.FormatAmount(t.Signed()))
	return nil
}

func edit(ctx context.Context, e *env, args []string) error {
	fs := e.flags("edit")
	id := fs.Int64("id", 0, "ID of the transaction")
	draftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("%w: -id is required", ErrUsage)
	}

	existing, err := e.services.Transactions.Get(ctx, *id)
	if err != nil {
		return err
	}

	d := form.DraftOf(existing)
	if applyFlags(fs, &d) {
		if err := e.convertDraft(ctx, &d); err != nil {
			return err
		}
	}

	req, err := form.Validate(d, e.now())
	if err != nil {
		return err
	}

	t, err := e.transactions.Update(ctx, *id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Updated transaction %d: %s %s\n", t.ID, t.Description, service.FormatAmount(t.Signed()))
	return nil
}

func remove(ctx context.Context, e *env, args []string) error {
	fs := e.flags("delete")
	id := fs.Int64("id", 0, "ID of the transaction")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("%w: -id is required", ErrUsage)
	}

	if err := e.transactions.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Deleted transaction %d\n", *id)
	return nil
}

func summary(ctx context.Context, e *env, _ []string) error {
	s, err := e.transactions.LoadSummary(ctx)
	if err != nil {
		return err
	}

	tw := newTable(e.stdout)
	fmt.Fprintf(tw, "Income\t%s\t%d transactions\n", service.FormatAmount(s.TotalIncome), s.IncomeCount)
	fmt.Fprintf(tw, "Expenses\t%s\t%d transactions\n", service.FormatAmount(s.TotalExpenses), s.ExpenseCount)
	fmt.Fprintf(tw, "Net worth\t%s\t\n", service.FormatAmount(s.NetWorth))
	return tw.Flush()
}

func analytics(ctx context.Context, e *env, args []string) error {
	fs := e.flags("analytics")
	months := fs.Int("months", 12, "Number of months to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	byCategory, err := e.services.Transactions.CategorySummary(ctx)
	if err != nil {
		return err
	}

	trends, err := e.services.Transactions.MonthlyTrends(ctx, *months)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, "By category")
	tw := newTable(e.stdout)
	fmt.Fprintln(tw, "CATEGORY\tTRANSACTIONS\tINCOME\tEXPENSES")
	for _, c := range byCategory {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", c.Category, c.TransactionCount, service.FormatAmount(c.IncomeAmount), service.FormatAmount(c.ExpenseAmount))
	}
	tw.Flush()

	fmt.Fprintln(e.stdout)
	fmt.Fprintln(e.stdout, "By month")
	tw = newTable(e.stdout)
	fmt.Fprintln(tw, "MONTH\tTRANSACTIONS\tINCOME\tEXPENSES\tNET")
	for _, t := range trends {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			time.Time(t.Month).Format("Jan 2006"),
			t.TransactionCount,
			service.FormatAmount(t.Income),
			service.FormatAmount(t.Expenses),
			service.FormatAmount(t.Net()),
		)
	}
	return tw.Flush()
}
