package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/client/services"
)

func (a *App) AddIncome(ctx context.Context) error {
	source, err := getSimpleText(a.reader, "Source", a.out)
	if err != nil {
		return err
	}
	amount, err := GetAmount(a.reader, "Amount", a.out)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	date, err := GetDate(a.reader, "Date", a.out, a.now())
	if err != nil {
		a.report(ctx, err)
		return err
	}
	icon, err := getSimpleText(a.reader, "Icon (optional)", a.out)
	if err != nil {
		return err
	}

	inc, err := a.txService.AddIncome(ctx, models.NewIncome{Icon: icon, Source: source, Amount: amount, Date: date})
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Added income", inc.ID)
	return nil
}

func (a *App) AddExpense(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	amount, err := GetAmount(a.reader, "Amount", a.out)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	date, err := GetDate(a.reader, "Date", a.out, a.now())
	if err != nil {
		a.report(ctx, err)
		return err
	}
	icon, err := getSimpleText(a.reader, "Icon (optional)", a.out)
	if err != nil {
		return err
	}

	exp, err := a.txService.AddExpense(ctx, models.NewExpense{Icon: icon, Category: category, Amount: amount, Date: date})
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Added expense", exp.ID)
	return nil
}

func (a *App) Incomes(ctx context.Context) error {
	list, err := a.txService.Incomes(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if len(list) == 0 {
		a.println("No income yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSOURCE\tAMOUNT")
	for _, i := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", i.ID, i.Date.Format(dateLayout), i.Source, i.Amount)
	}
	return tw.Flush()
}

func (a *App) Expenses(ctx context.Context) error {
	list, err := a.txService.Expenses(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if len(list) == 0 {
		a.println("No expenses yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", e.ID, e.Date.Format(dateLayout), e.Category, e.Amount)
	}
	return tw.Flush()
}

// Delete expects "<income|expense> <id>"; missing parts are prompted for.
func (a *App) Delete(ctx context.Context, args []string) error {
	kind, id, err := a.kindAndID(args)
	if err != nil {
		return err
	}
	if err := a.txService.Delete(ctx, kind, id); err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Deleted", kind, id)
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.txService.Dashboard(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Balance\t%.2f\n", d.TotalBalance)
	fmt.Fprintf(tw, "Total income\t%.2f\n", d.TotalIncome)
	fmt.Fprintf(tw, "Total expense\t%.2f\n", d.TotalExpense)
	fmt.Fprintf(tw, "Income, last 60 days\t%.2f\n", d.Last60DaysIncome.Total)
	fmt.Fprintf(tw, "Expenses, last 30 days\t%.2f\n", d.Last30DaysExpenses.Total)
	if len(d.RecentTransactions) > 0 {
		fmt.Fprintln(tw, "\nRecent:")
		for _, t := range d.RecentTransactions {
			sign := "+"
			if t.Type == services.KindExpense {
				sign = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s%.2f\n", t.Date.Format(dateLayout), t.Label(), sign, t.Amount)
		}
	}
	return tw.Flush()
}

// Export expects "<income|expense>" and writes the CSV locally.
func (a *App) Export(ctx context.Context, args []string) error {
	kind, err := a.kind(args)
	if err != nil {
		return err
	}
	path, err := a.txService.Export(ctx, kind)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Saved", path)
	return nil
}

func (a *App) kind(args []string) (string, error) {
	var kind string
	if len(args) > 0 {
		kind = args[0]
	} else {
		var err error
		if kind, err = getSimpleText(a.reader, "Kind (income or expense)", a.out); err != nil {
			return "", err
		}
	}
	if kind != services.KindIncome && kind != services.KindExpense {
		a.println("Unknown kind:", kind)
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	return kind, nil
}

func (a *App) kindAndID(args []string) (string, string, error) {
	kind, err := a.kind(args)
	if err != nil {
		return "", "", err
	}
	if len(args) > 1 {
		return kind, args[1], nil
	}
	id, err := getSimpleText(a.reader, "ID", a.out)
	if err != nil {
		return "", "", err
	}
	return kind, id, nil
}
