package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/trackspring/client/pkg/form"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
)

// categories runs the action given as first argument, "list" by default.
func categories(ctx context.Context, e *env, args []string) error {
	action := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}

	switch action {
	case "list":
		return listCategories(ctx, e, args)
	case "add":
		return addCategory(ctx, e, args)
	case "edit":
		return editCategory(ctx, e, args)
	case "delete":
		return deleteCategory(ctx, e, args)
	case "stats":
		return categoryStatistics(ctx, e)
	case "cleanup":
		return cleanupCategories(ctx, e)
	}

	return fmt.Errorf("%w: unknown action %q, use list, add, edit, delete, stats or cleanup", ErrUsage, action)
}

func listCategories(ctx context.Context, e *env, args []string) error {
	fs := e.flags("categories list")
	own := fs.Bool("user", false, "Only show your own categories")
	defaults := fs.Bool("default", false, "Only show the default categories")
	counts := fs.Bool("counts", false, "Show the number of transactions per category")
	match := fs.String("match", "", "Only show categories matching a pattern, e.g. 'food*'")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := e.services.Categories

	var (
		cs  []models.Category
		err error
	)
	switch {
	case *own:
		cs, err = s.User(ctx)
	case *defaults:
		cs, err = s.Default(ctx)
	case *counts:
		cs, err = s.WithCounts(ctx)
	default:
		cs, err = s.All(ctx)
	}
	if err != nil {
		return err
	}

	if *match != "" {
		cs = service.MatchCategories(cs, *match)
	}

	if len(cs) == 0 {
		fmt.Fprintln(e.stdout, "No categories found")
		return nil
	}

	tw := newTable(e.stdout)
	header := "ID\tNAME\tCOLOR\tKIND"
	if *counts {
		header += "\tTRANSACTIONS"
	}
	fmt.Fprintln(tw, header)

	for _, c := range cs {
		kind := "custom"
		if c.IsDefault {
			kind = "default"
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s", c.ID, service.CategoryDisplayName(&c), service.CategoryColor(&c), kind)
		if *counts {
			fmt.Fprintf(tw, "\t%d", c.TransactionCount)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func addCategory(ctx context.Context, e *env, args []string) error {
	fs := e.flags("categories add")
	var d form.CategoryDraft
	fs.StringVar(&d.Name, "name", "", "Name")
	fs.StringVar(&d.Description, "description", "", "Description")
	fs.StringVar(&d.Color, "color", "", "Color as #RRGGBB")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := d.Validate()
	if err != nil {
		return err
	}

	c, err := e.services.Categories.Create(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Created category %d: %s\n", c.ID, c.Name)
	return nil
}

func editCategory(ctx context.Context, e *env, args []string) error {
	fs := e.flags("categories edit")
	id := fs.Int64("id", 0, "ID of the category")
	name := fs.String("name", "", "New name")
	description := fs.String("description", "", "New description")
	color := fs.String("color", "", "New color as #RRGGBB")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("%w: -id is required", ErrUsage)
	}

	c, err := e.services.Categories.Get(ctx, *id)
	if err != nil {
		return err
	}

	d := form.CategoryDraft{Name: c.Name, Description: c.Description, Color: c.Color}
	if *name != "" {
		d.Name = *name
	}
	if *description != "" {
		d.Description = *description
	}
	if *color != "" {
		d.Color = *color
	}

	req, err := d.Validate()
	if err != nil {
		return err
	}

	c, err = e.services.Categories.Update(ctx, *id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Updated category %d: %s\n", c.ID, c.Name)
	return nil
}

func deleteCategory(ctx context.Context, e *env, args []string) error {
	fs := e.flags("categories delete")
	id := fs.Int64("id", 0, "ID of the category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("%w: -id is required", ErrUsage)
	}

	if err := e.services.Categories.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "Deleted category %d\n", *id)
	return nil
}

func categoryStatistics(ctx context.Context, e *env) error {
	st, err := e.services.Categories.Statistics(ctx)
	if err != nil {
		return err
	}

	tw := newTable(e.stdout)
	fmt.Fprintf(tw, "Total\t%d\n", st.TotalCategories)
	fmt.Fprintf(tw, "Default\t%d\n", st.DefaultCategories)
	fmt.Fprintf(tw, "Custom\t%d\n", st.UserCategories)
	fmt.Fprintf(tw, "In use\t%d\n", st.CategoriesInUse)
	fmt.Fprintf(tw, "Unused\t%d\n", st.UnusedCategories)
	return tw.Flush()
}

func cleanupCategories(ctx context.Context, e *env) error {
	r, err := e.services.Categories.Cleanup(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, r.Message)
	return nil
}
