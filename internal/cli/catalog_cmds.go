package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/media"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/money"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/notify"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/reorder"
)

var deleteTexts = notify.Texts{Loading: "Изтривам...", Success: "Изтрито", Error: "Грешка при изтриване"}

// optionalBool is a flag that records whether it was set at all.
type optionalBool struct {
	set   bool
	value bool
}

func (o *optionalBool) String() string {
	if o == nil || !o.set {
		return ""
	}
	return strconv.FormatBool(o.value)
}

func (o *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.set, o.value = true, v
	return nil
}

func (o *optionalBool) IsBoolFlag() bool { return true }

func (o *optionalBool) ptr() *bool {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// imageFlags are the upload options shared by category and dish forms.
type imageFlags struct {
	path       string
	previewOut string
}

func (f *imageFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.path, "image", "", "image file to upload")
	fs.StringVar(&f.previewOut, "preview-out", "", "write a JPEG preview of --image here")
}

// load validates the picked image and writes the preview if asked to.
func (f *imageFlags) load(a *App) (*tenantmodel.Image, error) {
	if f.path == "" {
		if f.previewOut != "" {
			return nil, errors.New("--preview-out needs --image")
		}
		return nil, nil
	}
	img, err := media.Open(f.path)
	if err != nil {
		return nil, err
	}
	if f.previewOut != "" {
		p, err := media.Preview(f.path, a.cfg.Media.PreviewMaxSize)
		if err != nil {
			return nil, err
		}
		if err := p.Save(f.previewOut); err != nil {
			return nil, err
		}
		fmt.Fprintf(a.out, "preview %dx%d (from %dx%d %s) written to %s\n",
			p.Width, p.Height, p.OriginalWidth, p.OriginalHeight, p.Format, f.previewOut)
	}
	return img, nil
}

// isSet reports whether the flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func stringPtr(fs *flag.FlagSet, name, value string) *string {
	if !isSet(fs, name) {
		return nil
	}
	return &value
}

func printPage(a *App, meta shared.PageMeta) {
	fmt.Fprintln(a.out, pagerLine(meta))
}

// pagerLine renders "page 2/3 (31 total): 1 [2] 3".
func pagerLine(meta shared.PageMeta) string {
	pages := meta.Pages()
	marks := make([]string, len(pages))
	for i, p := range pages {
		if p == meta.CurrentPage {
			marks[i] = fmt.Sprintf("[%d]", p)
		} else {
			marks[i] = strconv.Itoa(p)
		}
	}
	return fmt.Sprintf("page %d/%d (%d total): %s", meta.CurrentPage, meta.LastPage, meta.Total, strings.Join(marks, " "))
}

// ===== Categories =====

func (a *App) categoriesCmd(ctx context.Context, args []string) error {
	if _, err := a.requireTenant(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		fs := newFlags("categories list", a.errOut)
		var q tenantmodel.CategoryQuery
		var active optionalBool
		fs.IntVar(&q.Page, "page", 1, "page number")
		fs.StringVar(&q.Sort, "sort", "", "sort order")
		fs.Var(&active, "active", "only active categories")
		all := fs.Bool("all", false, "fetch every category in one page")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		q.OnlyActive = active.ptr()
		if *all {
			q.PerPage = -1
		}
		page, err := a.categories.List(ctx, q)
		if err != nil {
			return err
		}
		printCategories(a, page.Items)
		printPage(a, page.Meta)
		return nil

	case "create", "update":
		var id int
		if sub == "update" {
			var err error
			if id, args, err = splitID(args); err != nil {
				return err
			}
		}
		fs := newFlags("categories "+sub, a.errOut)
		name := fs.String("name", "", "category name")
		var active optionalBool
		fs.Var(&active, "active", "visible on the public menu")
		var image imageFlags
		image.register(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}

		img, err := image.load(a)
		if err != nil {
			return err
		}
		in := tenantmodel.CategoryInput{Name: stringPtr(fs, "name", *name), IsActive: active.ptr(), Image: img}

		var cat *tenantmodel.Category
		if sub == "create" {
			cat, err = a.categories.Create(ctx, in)
		} else {
			cat, err = a.categories.Update(ctx, id, in)
		}
		if err != nil {
			return err
		}
		if sub == "create" {
			a.notifier.Success("Категорията е създадена")
		} else {
			a.notifier.Success("Категорията е обновена")
		}
		if cat != nil {
			printCategories(a, []tenantmodel.Category{*cat})
		}
		return nil

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := a.confirm(fmt.Sprintf("Delete category %d? This cannot be undone.", id)); err != nil {
			return err
		}
		return notify.Promise(a.notifier, notify.Texts{
			Loading: "Изтривам...",
			Success: "Категорията е изтрита",
			Error:   "Грешка при изтриване",
		}, func() error {
			return a.categories.Delete(ctx, id)
		})

	case "reorder":
		if len(args) != 1 {
			return errUsage
		}
		ids, err := parseIDList(args[0])
		if err != nil {
			return err
		}
		return notify.Promise(a.notifier, reorderTexts, func() error {
			return a.categories.Reorder(ctx, ids)
		})

	case "move":
		return a.moveCategory(ctx, args)
	}
	return errUsage
}

var reorderTexts = notify.Texts{
	Loading: "Записвам подредбата…",
	Success: "Редът е записан",
	Error:   "Грешка при запис на реда",
}

// moveCategory moves one category to a new index of the full list: the
// new order is printed at once, then the commit outcome.
func (a *App) moveCategory(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}

	page, err := a.categories.List(ctx, tenantmodel.CategoryQuery{PerPage: -1})
	if err != nil {
		return err
	}

	commit := func(ctx context.Context, ids []int) error {
		return notify.Promise(a.notifier, reorderTexts, func() error {
			return a.categories.Reorder(ctx, ids)
		})
	}
	editor := reorder.New[tenantmodel.Category](commit, nil)
	editor.Load(page.Items)

	pending, ok := editor.MoveTo(ctx, id, index)
	if !ok {
		fmt.Fprintln(a.out, "order unchanged")
		return nil
	}
	fmt.Fprintln(a.out, "new order:")
	printCategories(a, editor.Items())

	if err := pending.Wait(); err != nil {
		fmt.Fprintln(a.out, "restored order:")
		printCategories(a, editor.Items())
		return err
	}
	return nil
}

func printCategories(a *App, rows []tenantmodel.Category) {
	w := a.table()
	fmt.Fprintln(w, "ID\tPOS\tNAME\tACTIVE\tDISHES")
	for _, c := range rows {
		dishes := "-"
		if c.DishesCount != nil {
			dishes = strconv.Itoa(*c.DishesCount)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", c.ID, c.Position, c.Name, yesNo(c.IsActive), dishes)
	}
	w.Flush()
}

func parseIDList(s string) ([]int, error) {
	var ids []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate id %d", id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// ===== Dishes =====

func (a *App) dishesCmd(ctx context.Context, args []string) error {
	if _, err := a.requireTenant(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		fs := newFlags("dishes list", a.errOut)
		var q tenantmodel.DishQuery
		var active optionalBool
		fs.IntVar(&q.Page, "page", 1, "page number")
		fs.IntVar(&q.CategoryID, "category", 0, "only dishes of this category")
		fs.StringVar(&q.Search, "search", "", "search term")
		fs.StringVar(&q.Sort, "sort", "", "sort order")
		fs.Var(&active, "active", "only active dishes")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		q.OnlyActive = active.ptr()
		page, err := a.dishes.List(ctx, q)
		if err != nil {
			return err
		}
		a.printDishes(page.Items)
		printPage(a, page.Meta)
		return nil

	case "create", "update":
		var id int
		if sub == "update" {
			var err error
			if id, args, err = splitID(args); err != nil {
				return err
			}
		}
		fs := newFlags("dishes "+sub, a.errOut)
		name := fs.String("name", "", "dish name")
		price := fs.Float64("price", 0, "price in BGN")
		category := fs.Int("category", 0, "category id")
		description := fs.String("description", "", "description")
		var active optionalBool
		fs.Var(&active, "active", "visible on the public menu")
		var image imageFlags
		image.register(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}

		img, err := image.load(a)
		if err != nil {
			return err
		}
		in := tenantmodel.DishInput{
			Name:        stringPtr(fs, "name", *name),
			Description: stringPtr(fs, "description", *description),
			IsActive:    active.ptr(),
			Image:       img,
		}
		if isSet(fs, "price") {
			in.Price = price
		}
		if isSet(fs, "category") {
			in.CategoryID = category
		}

		texts := notify.Texts{Loading: "Създавам ястие...", Success: "Ястието е създадено", Error: "Грешка при запис"}
		if sub == "update" {
			texts = notify.Texts{Loading: "Записвам промените...", Success: "Ястието е обновено", Error: "Грешка при запис"}
		}
		var dish *tenantmodel.Dish
		err = notify.Promise(a.notifier, texts, func() error {
			var err error
			if sub == "create" {
				dish, err = a.dishes.Create(ctx, in)
			} else {
				dish, err = a.dishes.Update(ctx, id, in)
			}
			return err
		})
		if err != nil {
			return err
		}
		if dish != nil {
			a.printDishes([]tenantmodel.Dish{*dish})
		}
		return nil

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := a.confirm(fmt.Sprintf("Delete dish %d? This cannot be undone.", id)); err != nil {
			return err
		}
		return notify.Promise(a.notifier, deleteTexts, func() error {
			return a.dishes.Delete(ctx, id)
		})
	}
	return errUsage
}

func (a *App) printDishes(rows []tenantmodel.Dish) {
	prices := money.Converter{Rate: a.cfg.Money.EURRate}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBGN\tEUR\tACTIVE")
	for _, d := range rows {
		category := "-"
		if d.Category != nil && d.Category.Name != "" {
			category = d.Category.Name
		} else if key := d.CategoryKey(); key != 0 {
			category = strconv.Itoa(key)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, category,
			money.FormatBGN(d.Price), money.FormatEUR(prices.ToEUR(d.Price)), yesNo(d.IsActive))
	}
	w.Flush()
}

// ===== Allergens =====

func (a *App) allergensCmd(ctx context.Context, args []string) error {
	if _, err := a.requireTenant(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		fs := newFlags("allergens list", a.errOut)
		var q tenantmodel.AllergenQuery
		var active optionalBool
		fs.IntVar(&q.Page, "page", 1, "page number")
		fs.StringVar(&q.Search, "search", "", "search term")
		fs.Var(&active, "active", "only active allergens")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		q.OnlyActive = active.ptr()
		page, err := a.allergens.List(ctx, q)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tCODE\tNAME\tACTIVE")
		for _, al := range page.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", al.ID, al.Code, al.Name, yesNo(al.IsActive))
		}
		w.Flush()
		printPage(a, page.Meta)
		return nil

	case "create", "update":
		var id int
		if sub == "update" {
			var err error
			if id, args, err = splitID(args); err != nil {
				return err
			}
		}
		fs := newFlags("allergens "+sub, a.errOut)
		var in tenantmodel.AllergenInput
		fs.StringVar(&in.Code, "code", "", "allergen code")
		fs.StringVar(&in.Name, "name", "", "allergen name")
		fs.BoolVar(&in.IsActive, "active", true, "active")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		texts := notify.Texts{Loading: "Създавам...", Success: "Готово", Error: "Грешка"}
		if sub == "update" {
			texts.Loading = "Запис..."
		}
		return notify.Promise(a.notifier, texts, func() error {
			var err error
			if sub == "create" {
				_, err = a.allergens.Create(ctx, in)
			} else {
				_, err = a.allergens.Update(ctx, id, in)
			}
			return err
		})

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := a.confirm(fmt.Sprintf("Delete allergen %d?", id)); err != nil {
			return err
		}
		return notify.Promise(a.notifier, notify.Texts{Loading: "Триене...", Success: "Изтрито", Error: "Грешка"}, func() error {
			return a.allergens.Delete(ctx, id)
		})
	}
	return errUsage
}
